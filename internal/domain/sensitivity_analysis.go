package domain

import (
	"github.com/shopspring/decimal"
)

// Sensitivity parameter names
const (
	ParamAvgYearlyReturns       = "avg_yearly_returns"
	ParamWithdrawalRate         = "withdrawal_rate"
	ParamRetirementIncomeTarget = "retirement_income_target"
	ParamInitialCapital         = "initial_capital"
	ParamSpendingScale          = "spending_scale"
)

// Risk levels
const (
	RiskLow      = "LOW"
	RiskMedium   = "MEDIUM"
	RiskHigh     = "HIGH"
	RiskCritical = "CRITICAL"
)

// SensitivityParameter represents a parameter to sweep in sensitivity analysis
type SensitivityParameter struct {
	Name        string          `yaml:"name" json:"name"`
	MinValue    decimal.Decimal `yaml:"min_value" json:"minValue"`
	MaxValue    decimal.Decimal `yaml:"max_value" json:"maxValue"`
	Steps       int             `yaml:"steps" json:"steps"`
	BaseValue   decimal.Decimal `yaml:"base_value" json:"baseValue"`
	Unit        string          `yaml:"unit" json:"unit"` // "percent", "amount" or "factor"
	Description string          `yaml:"description" json:"description"`
}

// ParameterSensitivityAnalysis represents a complete parameter sensitivity analysis
type ParameterSensitivityAnalysis struct {
	Parameters   []SensitivityParameter `json:"parameters"`
	Base         ProjectionSummary      `json:"base"`
	Results      []SensitivityResult    `json:"results"`
	Summary      SensitivitySummary     `json:"summary"`
	AnalysisType string                 `json:"analysisType"` // "single", "multi"
}

// SensitivityResult is the outcome of one point of a parameter sweep
type SensitivityResult struct {
	ParameterValues map[string]decimal.Decimal `json:"parameterValues"`
	ScenarioName    string                     `json:"scenarioName"`
	Summary         ProjectionSummary          `json:"summary"`
	KeyMetrics      SensitivityMetrics         `json:"keyMetrics"`
}

// SensitivityMetrics compares one sweep point against the base projection
type SensitivityMetrics struct {
	GoalYear              *int            `json:"goalYear,omitempty"`
	GoalYearChange        *int            `json:"goalYearChange,omitempty"` // nil when either side never reaches the goal
	FinalCapital          decimal.Decimal `json:"finalCapital"`
	FinalCapitalChange    decimal.Decimal `json:"finalCapitalChange"`
	FinalCapitalChangePct decimal.Decimal `json:"finalCapitalChangePct"`
	DepletionYear         *int            `json:"depletionYear,omitempty"`
}

// SensitivitySummary provides overall analysis summary
type SensitivitySummary struct {
	MostSensitiveParameter string                     `json:"mostSensitiveParameter"`
	SensitivityScores      map[string]decimal.Decimal `json:"sensitivityScores"`
	Recommendations        []string                   `json:"recommendations"`
	RiskLevel              string                     `json:"riskLevel"`
}

// SensitivityMatrix represents a 2D parameter sweep
type SensitivityMatrix struct {
	Parameter1    SensitivityParameter  `json:"parameter1"`
	Parameter2    SensitivityParameter  `json:"parameter2"`
	MatrixResults [][]SensitivityResult `json:"matrixResults"`
}

// Common sensitivity parameters
var (
	AvgYearlyReturnsParam = SensitivityParameter{
		Name:        ParamAvgYearlyReturns,
		MinValue:    decimal.NewFromInt(2),
		MaxValue:    decimal.NewFromInt(10),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(6),
		Unit:        "percent",
		Description: "Average yearly return on invested capital",
	}

	WithdrawalRateParam = SensitivityParameter{
		Name:        ParamWithdrawalRate,
		MinValue:    decimal.NewFromInt(3),
		MaxValue:    decimal.NewFromInt(5),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(4),
		Unit:        "percent",
		Description: "Share of capital withdrawn each year once retired",
	}

	SpendingScaleParam = SensitivityParameter{
		Name:        ParamSpendingScale,
		MinValue:    decimal.RequireFromString("0.8"),
		MaxValue:    decimal.RequireFromString("1.2"),
		Steps:       5,
		BaseValue:   decimal.NewFromInt(1),
		Unit:        "factor",
		Description: "Multiplier applied to every spending",
	}
)

// GetCommonParameters returns a list of common sensitivity parameters
func GetCommonParameters() []SensitivityParameter {
	return []SensitivityParameter{
		AvgYearlyReturnsParam,
		WithdrawalRateParam,
		SpendingScaleParam,
	}
}

// DetermineRiskLevel determines the risk level based on sensitivity scores
func (ss *SensitivitySummary) DetermineRiskLevel() string {
	maxScore := decimal.Zero
	for _, score := range ss.SensitivityScores {
		if score.GreaterThan(maxScore) {
			maxScore = score
		}
	}

	switch {
	case maxScore.LessThan(decimal.NewFromInt(1)):
		return RiskLow
	case maxScore.LessThan(decimal.NewFromInt(3)):
		return RiskMedium
	case maxScore.LessThan(decimal.NewFromInt(6)):
		return RiskHigh
	default:
		return RiskCritical
	}
}

// GenerateRecommendations generates recommendations based on sensitivity analysis
func (ss *SensitivitySummary) GenerateRecommendations() []string {
	recommendations := []string{}

	switch ss.DetermineRiskLevel() {
	case RiskLow:
		recommendations = append(recommendations, "Plan is robust to parameter changes")
	case RiskMedium:
		recommendations = append(recommendations, "Monitor key parameters regularly")
	case RiskHigh:
		recommendations = append(recommendations, "Plan is sensitive to parameter changes")
		recommendations = append(recommendations, "Review assumptions annually")
	case RiskCritical:
		recommendations = append(recommendations, "Plan is highly sensitive to parameter changes")
		recommendations = append(recommendations, "Consider more conservative assumptions")
	}

	switch ss.MostSensitiveParameter {
	case ParamAvgYearlyReturns:
		recommendations = append(recommendations, "Stress test with lower market returns")
	case ParamWithdrawalRate:
		recommendations = append(recommendations, "Consider a lower safe withdrawal rate")
	case ParamSpendingScale:
		recommendations = append(recommendations, "Spending discipline has the largest effect")
	case ParamRetirementIncomeTarget:
		recommendations = append(recommendations, "Revisit the retirement income target")
	case ParamInitialCapital:
		recommendations = append(recommendations, "Early savings drive the outcome")
	}

	return recommendations
}
