package compare

import (
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string                    `json:"scenarioName"`
	Description  string                    `json:"description,omitempty"`
	Summary      *domain.ProjectionSummary `json:"summary"`

	// Key Metrics
	GoalYear      *int            `json:"goalYear,omitempty"`
	YearsToGoal   *int            `json:"yearsToGoal,omitempty"`
	FinalCapital  decimal.Decimal `json:"finalCapital"`
	TotalReturns  decimal.Decimal `json:"totalReturns"`
	DepletionYear *int            `json:"depletionYear,omitempty"`

	// Comparison to Base
	GoalYearDiff        *int            `json:"goalYearDiff,omitempty"` // nil unless both reach the goal
	FinalCapitalDiff    decimal.Decimal `json:"finalCapitalDiff"`
	FinalCapitalPctDiff decimal.Decimal `json:"finalCapitalPctDiff"`
	TotalReturnsDiff    decimal.Decimal `json:"totalReturnsDiff"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath,omitempty"`
	Currency           string             `json:"currency"`
}

// All returns the base result followed by the alternatives
func (cs *ComparisonSet) All() []ComparisonResult {
	out := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		out = append(out, *cs.BaseResult)
	}
	return append(out, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from projection summaries
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all comparison metrics for a projection summary
func (mc *MetricsCalculator) CalculateMetrics(name string, summary *domain.ProjectionSummary) ComparisonResult {
	return ComparisonResult{
		ScenarioName:  name,
		Summary:       summary,
		GoalYear:      summary.GoalYear,
		YearsToGoal:   summary.YearsToGoal,
		FinalCapital:  summary.FinalCapital,
		TotalReturns:  summary.TotalReturns,
		DepletionYear: summary.DepletionYear,
	}
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.FinalCapitalDiff = scenario.FinalCapital.Sub(base.FinalCapital)
	if !base.FinalCapital.IsZero() {
		scenario.FinalCapitalPctDiff = scenario.FinalCapitalDiff.
			Div(base.FinalCapital.Abs()).
			Mul(decimal.NewFromInt(100))
	}
	scenario.TotalReturnsDiff = scenario.TotalReturns.Sub(base.TotalReturns)

	if scenario.GoalYear != nil && base.GoalYear != nil {
		scenario.GoalYearDiff = domain.IntPtr(*scenario.GoalYear - *base.GoalYear)
	}

	return scenario
}

// goalsEarlier reports whether a reaches the goal before b; reaching it at all beats never
func goalsEarlier(a, b *ComparisonResult) bool {
	switch {
	case a.GoalYear == nil:
		return false
	case b.GoalYear == nil:
		return true
	default:
		return *a.GoalYear < *b.GoalYear
	}
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult
	currency := compSet.Currency

	// Earliest goal
	earliest := base
	for i := range compSet.AlternativeResults {
		if goalsEarlier(&compSet.AlternativeResults[i], earliest) {
			earliest = &compSet.AlternativeResults[i]
		}
	}
	if earliest != base {
		if base.GoalYear != nil {
			recommendations = append(recommendations, fmt.Sprintf(
				"Earliest goal: %s reaches the goal in %d, %d years before the base scenario",
				earliest.ScenarioName, *earliest.GoalYear, *base.GoalYear-*earliest.GoalYear))
		} else {
			recommendations = append(recommendations, fmt.Sprintf(
				"Earliest goal: %s reaches the goal in %d; the base scenario never does",
				earliest.ScenarioName, *earliest.GoalYear))
		}
	}

	// Highest final capital
	richest := base
	for i := range compSet.AlternativeResults {
		if compSet.AlternativeResults[i].FinalCapital.GreaterThan(richest.FinalCapital) {
			richest = &compSet.AlternativeResults[i]
		}
	}
	if richest != base {
		recommendations = append(recommendations, fmt.Sprintf(
			"Highest final capital: %s ends with %s, %s more than the base scenario",
			richest.ScenarioName,
			output.FormatMoneyWhole(richest.FinalCapital, currency),
			output.FormatMoneyWhole(richest.FinalCapital.Sub(base.FinalCapital), currency)))
	}

	// Depletion warnings
	for _, r := range compSet.All() {
		if r.DepletionYear != nil {
			recommendations = append(recommendations, fmt.Sprintf(
				"Depletion risk: %s runs out of capital in %d", r.ScenarioName, *r.DepletionYear))
		}
	}

	return recommendations
}
