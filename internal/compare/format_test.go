package compare

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

func testComparisonSet() *ComparisonSet {
	mc := NewMetricsCalculator()
	base := mc.CalculateMetrics("Base Plan", &domain.ProjectionSummary{
		GoalYear:     domain.IntPtr(2035),
		YearsToGoal:  domain.IntPtr(10),
		FinalCapital: decimal.NewFromInt(1000000),
		TotalReturns: decimal.NewFromInt(400000),
	})
	early := mc.CalculateComparison(mc.CalculateMetrics("Frugal", &domain.ProjectionSummary{
		GoalYear:     domain.IntPtr(2032),
		YearsToGoal:  domain.IntPtr(7),
		FinalCapital: decimal.NewFromInt(1200000),
		TotalReturns: decimal.NewFromInt(450000),
	}), base)
	early.Description = "Cut every spending by 15%"
	broke := mc.CalculateComparison(mc.CalculateMetrics("Fat", &domain.ProjectionSummary{
		FinalCapital:  decimal.NewFromInt(-50000),
		TotalReturns:  decimal.NewFromInt(100000),
		DepletionYear: domain.IntPtr(2050),
	}), base)

	set := &ComparisonSet{
		BaseScenarioName:   "Base Plan",
		BaseResult:         &base,
		AlternativeResults: []ComparisonResult{early, broke},
		ConfigPath:         "/path/to/plan.yaml",
		Currency:           "CAD",
	}
	set.Recommendations = GenerateRecommendations(set)
	return set
}

func TestCalculateComparison(t *testing.T) {
	set := testComparisonSet()

	early := set.AlternativeResults[0]
	assert.Equal(t, -3, *early.GoalYearDiff)
	assert.True(t, early.FinalCapitalDiff.Equal(decimal.NewFromInt(200000)))
	assert.True(t, early.FinalCapitalPctDiff.Equal(decimal.NewFromInt(20)))
	assert.True(t, early.TotalReturnsDiff.Equal(decimal.NewFromInt(50000)))

	broke := set.AlternativeResults[1]
	assert.Nil(t, broke.GoalYearDiff)
	assert.True(t, broke.FinalCapitalPctDiff.Equal(decimal.NewFromInt(-105)))
}

func TestGenerateRecommendations(t *testing.T) {
	set := testComparisonSet()

	assert.Equal(t, []string{
		"Earliest goal: Frugal reaches the goal in 2032, 3 years before the base scenario",
		"Highest final capital: Frugal ends with $1,200,000, $200,000 more than the base scenario",
		"Depletion risk: Fat runs out of capital in 2050",
	}, set.Recommendations)

	set.BaseResult.GoalYear = nil
	recs := GenerateRecommendations(set)
	assert.Equal(t, "Earliest goal: Frugal reaches the goal in 2032; the base scenario never does", recs[0])

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: set.BaseResult}))
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(testComparisonSet())

	assert.Contains(t, out, "RETIREMENT SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: Base Plan")
	assert.Contains(t, out, "Configuration: /path/to/plan.yaml")
	assert.Contains(t, out, "Base Plan (base)")
	assert.Contains(t, out, "$1,000,000")
	assert.Contains(t, out, "never")
	assert.Contains(t, out, "2050")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "Goal year:       3 years earlier")
	assert.Contains(t, out, "Final capital:   +$200,000 (20.0%)")
	assert.Contains(t, out, "Final capital:   -$1,050,000 (-105.0%)")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "• Depletion risk: Fat runs out of capital in 2050")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(testComparisonSet())
	assert.Equal(t, "Base: Base Plan (goal 2035) | Frugal: goal -3 years | Fat: goal never", out)
}

func TestTableFormatter_Truncate(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "unchanged", formatYearDelta(0))
	assert.Equal(t, "2 years later", formatYearDelta(2))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(testComparisonSet())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, "Scenario", records[0][0])
	assert.Equal(t, []string{"Base Plan", "base", "2035", "10", "1000000.00", "400000.00", "", "", "0.00", "0.00", "0.00"}, records[1])
	assert.Equal(t, []string{"Frugal", "alternative", "2032", "7", "1200000.00", "450000.00", "", "-3", "200000.00", "20.00", "50000.00"}, records[2])
	assert.Equal(t, "2050", records[3][6])
}

func TestJSONFormatter_Format(t *testing.T) {
	set := testComparisonSet()

	compact, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, compact, "\n")

	pretty, err := (&JSONFormatter{Pretty: true}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  \"baseScenarioName\": \"Base Plan\"")

	var decoded ComparisonSet
	require.NoError(t, json.Unmarshal([]byte(pretty), &decoded))
	require.Len(t, decoded.AlternativeResults, 2)
	assert.Equal(t, -3, *decoded.AlternativeResults[0].GoalYearDiff)
	assert.Len(t, decoded.Recommendations, 3)
}
