package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/shopspring/decimal"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBaseStyle   = tableCellStyle.Italic(true)
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder
	cur := compSet.Currency

	sb.WriteString("RETIREMENT SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	all := compSet.All()
	rows := make([][]string, 0, len(all))
	for i, r := range all {
		rows = append(rows, tf.formatRow(&r, cur, i == 0 && compSet.BaseResult != nil))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Scenario", "Goal year", "Years to goal", "Final capital", "Total returns", "Depleted").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeaderStyle
			}
			style := tableCellStyle
			if row == 0 && compSet.BaseResult != nil {
				style = tableBaseStyle
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	sb.WriteString(t.String() + "\n")

	// Comparison details (deltas from base)
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			if alt.GoalYearDiff != nil {
				sb.WriteString(fmt.Sprintf("  Goal year:       %s\n", formatYearDelta(*alt.GoalYearDiff)))
			} else {
				sb.WriteString(fmt.Sprintf("  Goal year:       %s\n", output.FormatYear(alt.GoalYear)))
			}
			sb.WriteString(fmt.Sprintf("  Final capital:   %s%s (%s%%)\n",
				tf.deltaSymbol(alt.FinalCapitalDiff),
				output.FormatMoneyWhole(alt.FinalCapitalDiff, cur),
				alt.FinalCapitalPctDiff.StringFixed(1)))
			if !alt.TotalReturnsDiff.IsZero() {
				sb.WriteString(fmt.Sprintf("  Total returns:   %s%s\n",
					tf.deltaSymbol(alt.TotalReturnsDiff),
					output.FormatMoneyWhole(alt.TotalReturnsDiff, cur)))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single scenario row
func (tf *TableFormatter) formatRow(result *ComparisonResult, currency string, isBase bool) []string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	yearsToGoal := "-"
	if result.YearsToGoal != nil {
		yearsToGoal = fmt.Sprintf("%d", *result.YearsToGoal)
	}
	depleted := "no"
	if result.DepletionYear != nil {
		depleted = fmt.Sprintf("%d", *result.DepletionYear)
	}

	return []string{
		tf.truncate(name, 32),
		output.FormatYear(result.GoalYear),
		yearsToGoal,
		output.FormatMoneyWhole(result.FinalCapital, currency),
		output.FormatMoneyWhole(result.TotalReturns, currency),
		depleted,
	}
}

// deltaSymbol returns a + prefix for positive deltas; negative amounts carry their own sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

func formatYearDelta(diff int) string {
	switch {
	case diff < 0:
		return fmt.Sprintf("%d years earlier", -diff)
	case diff > 0:
		return fmt.Sprintf("%d years later", diff)
	default:
		return "unchanged"
	}
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s (goal %s)", compSet.BaseScenarioName, output.FormatYear(compSet.BaseResult.GoalYear)))

	for _, alt := range compSet.AlternativeResults {
		sb.WriteString(" | ")
		change := "goal " + output.FormatYear(alt.GoalYear)
		if alt.GoalYearDiff != nil && *alt.GoalYearDiff != 0 {
			change = fmt.Sprintf("goal %+d years", *alt.GoalYearDiff)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
