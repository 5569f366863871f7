package calculation

import (
	"context"
	"fmt"
	"sort"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SensitivityAnalyzer performs parameter sweep analysis
type SensitivityAnalyzer struct {
	engine  *ProjectionEngine
	Horizon int
}

// NewSensitivityAnalyzer creates a new sensitivity analyzer projecting RowsToShow years
func NewSensitivityAnalyzer() *SensitivityAnalyzer {
	return &SensitivityAnalyzer{
		engine:  NewProjectionEngine(),
		Horizon: RowsToShow,
	}
}

// SetLogger sets the logger of the underlying engine
func (sa *SensitivityAnalyzer) SetLogger(l Logger) {
	sa.engine.SetLogger(l)
}

// AnalyzeSingleParameter sweeps one parameter and compares every point with the unmodified configuration
func (sa *SensitivityAnalyzer) AnalyzeSingleParameter(
	ctx context.Context,
	config *domain.Configuration,
	parameter domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	base, err := sa.engine.Project(ctx, config, sa.Horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to project base configuration: %w", err)
	}
	if parameter.BaseValue.IsZero() {
		if current, err := ParameterValue(config, parameter.Name); err == nil {
			parameter.BaseValue = current
		}
	}

	results := make([]domain.SensitivityResult, 0, parameter.Steps)
	for _, value := range generateParameterValues(parameter) {
		result, err := sa.runPoint(ctx, config, &base.Summary, map[string]decimal.Decimal{parameter.Name: value})
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}

	return &domain.ParameterSensitivityAnalysis{
		Parameters:   []domain.SensitivityParameter{parameter},
		Base:         base.Summary,
		Results:      results,
		Summary:      calculateSensitivitySummary(results, []domain.SensitivityParameter{parameter}),
		AnalysisType: "single",
	}, nil
}

// AnalyzeMultipleParameters sweeps each parameter independently
func (sa *SensitivityAnalyzer) AnalyzeMultipleParameters(
	ctx context.Context,
	config *domain.Configuration,
	parameters []domain.SensitivityParameter,
) (*domain.ParameterSensitivityAnalysis, error) {
	var (
		base       domain.ProjectionSummary
		allResults []domain.SensitivityResult
		allParams  []domain.SensitivityParameter
	)
	for _, param := range parameters {
		analysis, err := sa.AnalyzeSingleParameter(ctx, config, param)
		if err != nil {
			return nil, fmt.Errorf("failed to analyze parameter %s: %w", param.Name, err)
		}
		base = analysis.Base
		allResults = append(allResults, analysis.Results...)
		allParams = append(allParams, analysis.Parameters...)
	}

	return &domain.ParameterSensitivityAnalysis{
		Parameters:   allParams,
		Base:         base,
		Results:      allResults,
		Summary:      calculateSensitivitySummary(allResults, allParams),
		AnalysisType: "multi",
	}, nil
}

// AnalyzeParameterMatrix sweeps two parameters over every combination of their values
func (sa *SensitivityAnalyzer) AnalyzeParameterMatrix(
	ctx context.Context,
	config *domain.Configuration,
	param1, param2 domain.SensitivityParameter,
) (*domain.SensitivityMatrix, error) {
	base, err := sa.engine.Project(ctx, config, sa.Horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to project base configuration: %w", err)
	}

	values1 := generateParameterValues(param1)
	values2 := generateParameterValues(param2)
	matrix := make([][]domain.SensitivityResult, len(values1))
	for i, v1 := range values1 {
		matrix[i] = make([]domain.SensitivityResult, len(values2))
		for j, v2 := range values2 {
			result, err := sa.runPoint(ctx, config, &base.Summary, map[string]decimal.Decimal{
				param1.Name: v1,
				param2.Name: v2,
			})
			if err != nil {
				return nil, err
			}
			matrix[i][j] = *result
		}
	}

	return &domain.SensitivityMatrix{
		Parameter1:    param1,
		Parameter2:    param2,
		MatrixResults: matrix,
	}, nil
}

func (sa *SensitivityAnalyzer) runPoint(
	ctx context.Context,
	config *domain.Configuration,
	base *domain.ProjectionSummary,
	values map[string]decimal.Decimal,
) (*domain.SensitivityResult, error) {
	modified := config
	name := "sweep"
	for _, param := range sortedKeys(values) {
		var err error
		modified, err = ApplyParameter(modified, param, values[param])
		if err != nil {
			return nil, err
		}
		name += fmt.Sprintf("_%s_%s", param, values[param].String())
	}

	projection, err := sa.engine.Project(ctx, modified, sa.Horizon)
	if err != nil {
		return nil, fmt.Errorf("failed to project %s: %w", name, err)
	}

	return &domain.SensitivityResult{
		ParameterValues: values,
		ScenarioName:    name,
		Summary:         projection.Summary,
		KeyMetrics:      compareSummaries(base, &projection.Summary),
	}, nil
}

// ApplyParameter returns a copy of config with the named parameter set to value.
// spending_scale multiplies every spending by value.
func ApplyParameter(config *domain.Configuration, name string, value decimal.Decimal) (*domain.Configuration, error) {
	modified := config.DeepCopy()
	switch name {
	case domain.ParamAvgYearlyReturns:
		modified.AvgYearlyReturns = value
	case domain.ParamWithdrawalRate:
		modified.WithdrawalRate = value
	case domain.ParamRetirementIncomeTarget:
		modified.RetirementIncomeTarget = value
	case domain.ParamInitialCapital:
		modified.InitialCapital = value
	case domain.ParamSpendingScale:
		modified.ScaleCashFlows(domain.ListSpendings, value)
	default:
		return nil, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
	return modified, nil
}

// ParameterValue returns the current value of the named parameter in config
func ParameterValue(config *domain.Configuration, name string) (decimal.Decimal, error) {
	switch name {
	case domain.ParamAvgYearlyReturns:
		return config.AvgYearlyReturns, nil
	case domain.ParamWithdrawalRate:
		return config.WithdrawalRate, nil
	case domain.ParamRetirementIncomeTarget:
		return config.RetirementIncomeTarget, nil
	case domain.ParamInitialCapital:
		return config.InitialCapital, nil
	case domain.ParamSpendingScale:
		return decimal.NewFromInt(1), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown sensitivity parameter %q", name)
	}
}

// generateParameterValues generates evenly spaced values from MinValue to MaxValue
func generateParameterValues(param domain.SensitivityParameter) []decimal.Decimal {
	if param.Steps <= 1 {
		return []decimal.Decimal{param.BaseValue}
	}

	stepSize := param.MaxValue.Sub(param.MinValue).Div(decimal.NewFromInt(int64(param.Steps - 1)))
	values := make([]decimal.Decimal, 0, param.Steps)
	for i := 0; i < param.Steps; i++ {
		values = append(values, param.MinValue.Add(stepSize.Mul(decimal.NewFromInt(int64(i)))))
	}
	return values
}

func compareSummaries(base, summary *domain.ProjectionSummary) domain.SensitivityMetrics {
	metrics := domain.SensitivityMetrics{
		GoalYear:           summary.GoalYear,
		FinalCapital:       summary.FinalCapital,
		FinalCapitalChange: summary.FinalCapital.Sub(base.FinalCapital),
		DepletionYear:      summary.DepletionYear,
	}
	if base.GoalYear != nil && summary.GoalYear != nil {
		metrics.GoalYearChange = domain.IntPtr(*summary.GoalYear - *base.GoalYear)
	}
	if !base.FinalCapital.IsZero() {
		metrics.FinalCapitalChangePct = metrics.FinalCapitalChange.Div(base.FinalCapital.Abs()).Mul(hundred)
	}
	return metrics
}

// calculateSensitivitySummary scores each parameter by the largest ratio of
// final capital change to parameter change, both in percent.
func calculateSensitivitySummary(results []domain.SensitivityResult, parameters []domain.SensitivityParameter) domain.SensitivitySummary {
	scores := make(map[string]decimal.Decimal)
	maxScore := decimal.Zero
	mostSensitive := ""

	for _, param := range parameters {
		if param.BaseValue.IsZero() {
			continue
		}
		score := decimal.Zero
		for _, result := range results {
			value, ok := result.ParameterValues[param.Name]
			if !ok || len(result.ParameterValues) != 1 {
				continue
			}
			paramChangePct := value.Sub(param.BaseValue).Div(param.BaseValue).Mul(hundred)
			if paramChangePct.IsZero() {
				continue
			}
			s := result.KeyMetrics.FinalCapitalChangePct.Abs().Div(paramChangePct.Abs())
			if s.GreaterThan(score) {
				score = s
			}
		}
		scores[param.Name] = score.Round(4)
		if mostSensitive == "" || score.GreaterThan(maxScore) {
			maxScore = score
			mostSensitive = param.Name
		}
	}

	summary := domain.SensitivitySummary{
		MostSensitiveParameter: mostSensitive,
		SensitivityScores:      scores,
	}
	summary.RiskLevel = summary.DetermineRiskLevel()
	summary.Recommendations = summary.GenerateRecommendations()
	return summary
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
