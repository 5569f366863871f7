package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityFormatter defines a formatter for sensitivity analysis
type SensitivityFormatter interface {
	FormatSensitivityAnalysis(analysis any) (string, error)
	Name() string
}

// SensitivityConsoleFormatter formats sensitivity analysis output for console
type SensitivityConsoleFormatter struct {
	Currency string
}

func (scf SensitivityConsoleFormatter) Name() string { return "console" }

func (scf SensitivityConsoleFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var buf bytes.Buffer

	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		return scf.formatAnalysis(&buf, a)
	case *domain.SensitivityMatrix:
		return scf.formatMatrixAnalysis(&buf, a)
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
}

func (scf SensitivityConsoleFormatter) currency() string {
	if scf.Currency == "" {
		return domain.DefaultCurrency
	}
	return scf.Currency
}

func (scf SensitivityConsoleFormatter) formatAnalysis(buf *bytes.Buffer, analysis *domain.ParameterSensitivityAnalysis) (string, error) {
	if len(analysis.Parameters) == 0 || len(analysis.Results) == 0 {
		return "", fmt.Errorf("no parameters or results in analysis")
	}
	cur := scf.currency()

	fmt.Fprintln(buf, "SENSITIVITY ANALYSIS")
	fmt.Fprintln(buf, "=================================================================")
	fmt.Fprintf(buf, "Base case: goal %s, final capital %s\n",
		FormatYear(analysis.Base.GoalYear), FormatMoney(analysis.Base.FinalCapital, cur))
	fmt.Fprintln(buf)

	for _, param := range analysis.Parameters {
		fmt.Fprintf(buf, "%s\n", strings.ToUpper(strings.ReplaceAll(param.Name, "_", " ")))
		fmt.Fprintf(buf, "Base: %s  Range: %s to %s (%d steps)\n",
			formatParamValue(param, param.BaseValue, cur),
			formatParamValue(param, param.MinValue, cur),
			formatParamValue(param, param.MaxValue, cur),
			param.Steps)
		if param.Description != "" {
			fmt.Fprintf(buf, "Description: %s\n", param.Description)
		}
		fmt.Fprintf(buf, "%-16s %-10s %-10s %-18s %-12s %-10s\n",
			"Value", "Goal year", "Change", "Final capital", "Change %", "Depleted")
		fmt.Fprintln(buf, strings.Repeat("-", 80))

		for _, result := range analysis.Results {
			value, ok := result.ParameterValues[param.Name]
			if !ok || len(result.ParameterValues) != 1 {
				continue
			}
			valueStr := formatParamValue(param, value, cur)
			if value.Equal(param.BaseValue) {
				valueStr += " (base)"
			}
			m := result.KeyMetrics
			fmt.Fprintf(buf, "%-16s %-10s %-10s %-18s %-12s %-10s\n",
				valueStr,
				FormatYear(m.GoalYear),
				formatYearChange(m.GoalYearChange),
				FormatMoney(m.FinalCapital, cur),
				FormatPercentage(m.FinalCapitalChangePct),
				formatDepletion(m.DepletionYear))
		}
		fmt.Fprintln(buf)
	}

	if len(analysis.Summary.SensitivityScores) > 0 {
		fmt.Fprintln(buf, "SENSITIVITY SCORES:")
		for _, name := range sortedScoreNames(analysis.Summary.SensitivityScores) {
			marker := ""
			if name == analysis.Summary.MostSensitiveParameter {
				marker = "  <- most sensitive"
			}
			fmt.Fprintf(buf, "  %-26s %s%s\n", name, analysis.Summary.SensitivityScores[name].StringFixed(2), marker)
		}
		fmt.Fprintln(buf)
	}

	fmt.Fprintf(buf, "RISK LEVEL: %s\n", analysis.Summary.RiskLevel)
	fmt.Fprintln(buf)

	fmt.Fprintln(buf, "RECOMMENDATIONS:")
	for _, rec := range analysis.Summary.Recommendations {
		fmt.Fprintf(buf, "  • %s\n", rec)
	}

	return buf.String(), nil
}

func (scf SensitivityConsoleFormatter) formatMatrixAnalysis(buf *bytes.Buffer, matrix *domain.SensitivityMatrix) (string, error) {
	if len(matrix.MatrixResults) == 0 || len(matrix.MatrixResults[0]) == 0 {
		return "", fmt.Errorf("empty sensitivity matrix")
	}
	cur := scf.currency()
	p1, p2 := matrix.Parameter1, matrix.Parameter2

	fmt.Fprintln(buf, "SENSITIVITY MATRIX ANALYSIS")
	fmt.Fprintln(buf, "=================================================================")
	fmt.Fprintf(buf, "Rows:    %s (%s to %s)\n", p1.Name, formatParamValue(p1, p1.MinValue, cur), formatParamValue(p1, p1.MaxValue, cur))
	fmt.Fprintf(buf, "Columns: %s (%s to %s)\n", p2.Name, formatParamValue(p2, p2.MinValue, cur), formatParamValue(p2, p2.MaxValue, cur))
	fmt.Fprintln(buf, "Cells:   year the goal is first reached")
	fmt.Fprintln(buf)

	fmt.Fprintf(buf, "%-14s", "")
	for _, result := range matrix.MatrixResults[0] {
		fmt.Fprintf(buf, " %-10s", formatParamValue(p2, result.ParameterValues[p2.Name], cur))
	}
	fmt.Fprintln(buf)
	fmt.Fprintln(buf, strings.Repeat("-", 14+11*len(matrix.MatrixResults[0])))

	for i := range matrix.MatrixResults {
		fmt.Fprintf(buf, "%-14s", formatParamValue(p1, matrix.MatrixResults[i][0].ParameterValues[p1.Name], cur))
		for _, result := range matrix.MatrixResults[i] {
			fmt.Fprintf(buf, " %-10s", FormatYear(result.KeyMetrics.GoalYear))
		}
		fmt.Fprintln(buf)
	}

	return buf.String(), nil
}

// SensitivityCSVFormatter formats sensitivity analysis output as CSV
type SensitivityCSVFormatter struct{}

func (scf SensitivityCSVFormatter) Name() string { return "csv" }

var sensitivityCSVHeader = []string{
	"scenario", "parameters", "goal_year", "goal_year_change",
	"final_capital", "final_capital_change", "final_capital_change_pct", "depletion_year",
}

func (scf SensitivityCSVFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	var results []domain.SensitivityResult
	switch a := analysis.(type) {
	case *domain.ParameterSensitivityAnalysis:
		results = a.Results
	case *domain.SensitivityMatrix:
		for _, row := range a.MatrixResults {
			results = append(results, row...)
		}
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(sensitivityCSVHeader); err != nil {
		return "", err
	}
	for _, result := range results {
		params := make([]string, 0, len(result.ParameterValues))
		for _, name := range sortedScoreNames(result.ParameterValues) {
			params = append(params, name+"="+result.ParameterValues[name].String())
		}
		m := result.KeyMetrics
		record := []string{
			result.ScenarioName,
			strings.Join(params, ";"),
			optionalInt(m.GoalYear),
			optionalInt(m.GoalYearChange),
			m.FinalCapital.StringFixed(2),
			m.FinalCapitalChange.StringFixed(2),
			m.FinalCapitalChangePct.StringFixed(2),
			optionalInt(m.DepletionYear),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SensitivityJSONFormatter formats sensitivity analysis output as JSON
type SensitivityJSONFormatter struct{}

func (sjf SensitivityJSONFormatter) Name() string { return "json" }

func (sjf SensitivityJSONFormatter) FormatSensitivityAnalysis(analysis any) (string, error) {
	switch analysis.(type) {
	case *domain.ParameterSensitivityAnalysis, *domain.SensitivityMatrix:
	default:
		return "", fmt.Errorf("unsupported analysis type: %T", analysis)
	}
	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}

// NewSensitivityFormatter creates a sensitivity formatter based on the format name
func NewSensitivityFormatter(format, currency string) SensitivityFormatter {
	switch NormalizeFormatName(format) {
	case "csv":
		return SensitivityCSVFormatter{}
	case "json":
		return SensitivityJSONFormatter{}
	default:
		return SensitivityConsoleFormatter{Currency: currency}
	}
}

func formatParamValue(p domain.SensitivityParameter, v decimal.Decimal, currency string) string {
	switch p.Unit {
	case "percent":
		return v.StringFixed(1) + "%"
	case "amount":
		return FormatMoneyWhole(v, currency)
	case "factor":
		return "x" + v.StringFixed(2)
	default:
		return v.String()
	}
}

func formatYearChange(change *int) string {
	if change == nil {
		return "n/a"
	}
	return fmt.Sprintf("%+d", *change)
}

func formatDepletion(year *int) string {
	if year == nil {
		return "-"
	}
	return strconv.Itoa(*year)
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func sortedScoreNames(m map[string]decimal.Decimal) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
