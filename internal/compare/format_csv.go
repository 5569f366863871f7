package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Goal Year",
		"Years To Goal",
		"Final Capital",
		"Total Returns",
		"Depletion Year",
		"Goal Year Diff",
		"Final Capital Diff",
		"Final Capital % Change",
		"Total Returns Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for _, alt := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&alt, "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		formatOptionalInt(result.GoalYear),
		formatOptionalInt(result.YearsToGoal),
		result.FinalCapital.StringFixed(2),
		result.TotalReturns.StringFixed(2),
		formatOptionalInt(result.DepletionYear),
		formatOptionalInt(result.GoalYearDiff),
		result.FinalCapitalDiff.StringFixed(2),
		result.FinalCapitalPctDiff.StringFixed(2),
		result.TotalReturnsDiff.StringFixed(2),
	}
}

func formatOptionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
