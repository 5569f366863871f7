package output

import (
	"encoding/csv"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sweepResult(param string, value string, goal *int, change *int, final string) domain.SensitivityResult {
	return domain.SensitivityResult{
		ParameterValues: map[string]decimal.Decimal{param: d(value)},
		ScenarioName:    "sweep_" + param + "_" + value,
		KeyMetrics: domain.SensitivityMetrics{
			GoalYear:              goal,
			GoalYearChange:        change,
			FinalCapital:          d(final),
			FinalCapitalChange:    d(final).Sub(d("100000")),
			FinalCapitalChangePct: d(final).Sub(d("100000")).Div(d("1000")),
		},
	}
}

func testSensitivityAnalysis() *domain.ParameterSensitivityAnalysis {
	param := domain.AvgYearlyReturnsParam
	param.Steps = 3
	return &domain.ParameterSensitivityAnalysis{
		Parameters: []domain.SensitivityParameter{param},
		Base: domain.ProjectionSummary{
			GoalYear:     domain.IntPtr(2040),
			FinalCapital: d("100000"),
		},
		Results: []domain.SensitivityResult{
			sweepResult(param.Name, "2", nil, nil, "50000"),
			sweepResult(param.Name, "6", domain.IntPtr(2040), domain.IntPtr(0), "100000"),
			sweepResult(param.Name, "10", domain.IntPtr(2035), domain.IntPtr(-5), "180000"),
		},
		Summary: domain.SensitivitySummary{
			MostSensitiveParameter: param.Name,
			SensitivityScores:      map[string]decimal.Decimal{param.Name: d("1.2")},
			Recommendations:        []string{"Monitor key parameters regularly"},
			RiskLevel:              domain.RiskMedium,
		},
		AnalysisType: "single",
	}
}

func testSensitivityMatrix() *domain.SensitivityMatrix {
	p1 := domain.AvgYearlyReturnsParam
	p2 := domain.SpendingScaleParam
	cell := func(r, s string, goal *int) domain.SensitivityResult {
		return domain.SensitivityResult{
			ParameterValues: map[string]decimal.Decimal{p1.Name: d(r), p2.Name: d(s)},
			ScenarioName:    "sweep_" + p1.Name + "_" + r + "_" + p2.Name + "_" + s,
			KeyMetrics:      domain.SensitivityMetrics{GoalYear: goal},
		}
	}
	return &domain.SensitivityMatrix{
		Parameter1: p1,
		Parameter2: p2,
		MatrixResults: [][]domain.SensitivityResult{
			{cell("2", "0.8", domain.IntPtr(2045)), cell("2", "1.2", nil)},
			{cell("10", "0.8", domain.IntPtr(2031)), cell("10", "1.2", domain.IntPtr(2036))},
		},
	}
}

func TestSensitivityConsoleFormatter(t *testing.T) {
	out, err := SensitivityConsoleFormatter{Currency: "CAD"}.FormatSensitivityAnalysis(testSensitivityAnalysis())
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY ANALYSIS")
	assert.Contains(t, out, "Base case: goal 2040, final capital $100,000.00")
	assert.Contains(t, out, "AVG YEARLY RETURNS")
	assert.Contains(t, out, "6.0% (base)")
	assert.Contains(t, out, "-5")
	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "avg_yearly_returns")
	assert.Contains(t, out, "<- most sensitive")
	assert.Contains(t, out, "RISK LEVEL: MEDIUM")
	assert.Contains(t, out, "Monitor key parameters regularly")
}

func TestSensitivityConsoleFormatterMatrix(t *testing.T) {
	out, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(testSensitivityMatrix())
	require.NoError(t, err)

	assert.Contains(t, out, "SENSITIVITY MATRIX ANALYSIS")
	assert.Contains(t, out, "Rows:    avg_yearly_returns (2.0% to 10.0%)")
	assert.Contains(t, out, "Columns: spending_scale (x0.80 to x1.20)")
	assert.Contains(t, out, "2045")
	assert.Contains(t, out, "never")

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.SensitivityMatrix{})
	assert.Error(t, err)
}

func TestSensitivityConsoleFormatterErrors(t *testing.T) {
	_, err := SensitivityConsoleFormatter{}.FormatSensitivityAnalysis("nope")
	assert.Error(t, err)

	_, err = SensitivityConsoleFormatter{}.FormatSensitivityAnalysis(&domain.ParameterSensitivityAnalysis{})
	assert.Error(t, err)
}

func TestSensitivityCSVFormatter(t *testing.T) {
	out, err := SensitivityCSVFormatter{}.FormatSensitivityAnalysis(testSensitivityAnalysis())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, sensitivityCSVHeader, records[0])
	assert.Equal(t, []string{"sweep_avg_yearly_returns_2", "avg_yearly_returns=2", "", "", "50000.00", "-50000.00", "-50.00", ""}, records[1])
	assert.Equal(t, "-5", records[3][3])

	out, err = SensitivityCSVFormatter{}.FormatSensitivityAnalysis(testSensitivityMatrix())
	require.NoError(t, err)
	records, err = csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "avg_yearly_returns=2;spending_scale=0.8", records[1][1])
}

func TestSensitivityJSONFormatter(t *testing.T) {
	out, err := SensitivityJSONFormatter{}.FormatSensitivityAnalysis(testSensitivityAnalysis())
	require.NoError(t, err)

	var decoded domain.ParameterSensitivityAnalysis
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Results, 3)
	assert.Equal(t, domain.RiskMedium, decoded.Summary.RiskLevel)

	_, err = SensitivityJSONFormatter{}.FormatSensitivityAnalysis(42)
	assert.Error(t, err)
}

func TestNewSensitivityFormatter(t *testing.T) {
	assert.Equal(t, "csv", NewSensitivityFormatter("csv", "").Name())
	assert.Equal(t, "json", NewSensitivityFormatter("json-pretty", "").Name())
	assert.Equal(t, "console", NewSensitivityFormatter("table", "").Name())

	f, ok := NewSensitivityFormatter("whatever", "USD").(SensitivityConsoleFormatter)
	require.True(t, ok)
	assert.Equal(t, "USD", f.Currency)
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "$1,234.57", FormatMoney(d("1234.567"), "CAD"))
	assert.Equal(t, "$1,235", FormatMoneyWhole(d("1234.5"), "CAD"))
	assert.Equal(t, "-$3,000", FormatMoneyWhole(d("-3000"), "CAD"))
	assert.Equal(t, "1234.57 XYZ", FormatMoney(d("1234.567"), "XYZ"))
	assert.Equal(t, "12.50%", FormatPercentage(d("12.5")))
	assert.Equal(t, "", FormatAge(nil))
	assert.Equal(t, "42", FormatAge(domain.IntPtr(42)))
	assert.Equal(t, "never", FormatYear(nil))
}
