package calculation

import (
	"context"
	"testing"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyParameter(t *testing.T) {
	cfg := scenarioConfig()

	tests := []struct {
		name  string
		value string
		check func(t *testing.T, c *domain.Configuration)
	}{
		{domain.ParamAvgYearlyReturns, "7", func(t *testing.T, c *domain.Configuration) { assertDecimal(t, "7", c.AvgYearlyReturns) }},
		{domain.ParamWithdrawalRate, "3.5", func(t *testing.T, c *domain.Configuration) { assertDecimal(t, "3.5", c.WithdrawalRate) }},
		{domain.ParamRetirementIncomeTarget, "100", func(t *testing.T, c *domain.Configuration) { assertDecimal(t, "100", c.RetirementIncomeTarget) }},
		{domain.ParamInitialCapital, "1", func(t *testing.T, c *domain.Configuration) { assertDecimal(t, "1", c.InitialCapital) }},
		{domain.ParamSpendingScale, "0.5", func(t *testing.T, c *domain.Configuration) { assertDecimal(t, "1500", c.Spendings[0].Amount) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			modified, err := ApplyParameter(cfg, tt.name, dec(tt.value))
			require.NoError(t, err)
			tt.check(t, modified)
		})
	}

	// The source configuration is untouched.
	assert.Equal(t, scenarioConfig(), cfg)

	_, err := ApplyParameter(cfg, "inflation", dec("1"))
	assert.Error(t, err)
}

func TestParameterValue(t *testing.T) {
	cfg := scenarioConfig()

	v, err := ParameterValue(cfg, domain.ParamWithdrawalRate)
	require.NoError(t, err)
	assertDecimal(t, "4", v)

	v, err = ParameterValue(cfg, domain.ParamSpendingScale)
	require.NoError(t, err)
	assertDecimal(t, "1", v)

	_, err = ParameterValue(cfg, "nope")
	assert.Error(t, err)
}

func TestGenerateParameterValues(t *testing.T) {
	values := generateParameterValues(domain.AvgYearlyReturnsParam)
	require.Len(t, values, 5)
	for i, expected := range []string{"2", "4", "6", "8", "10"} {
		assertDecimal(t, expected, values[i])
	}

	single := generateParameterValues(domain.SensitivityParameter{Steps: 1, BaseValue: decimal.NewFromInt(3)})
	require.Len(t, single, 1)
	assertDecimal(t, "3", single[0])
}

func TestAnalyzeSingleParameter(t *testing.T) {
	analyzer := NewSensitivityAnalyzer()
	analyzer.Horizon = 3

	param := domain.SensitivityParameter{
		Name:      domain.ParamInitialCapital,
		MinValue:  dec("0"),
		MaxValue:  dec("20000"),
		Steps:     3,
		BaseValue: dec("10000"),
	}

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), scenarioConfig(), param)
	require.NoError(t, err)
	require.Len(t, analysis.Results, 3)
	assert.Equal(t, "single", analysis.AnalysisType)
	assertDecimal(t, "18196.5", analysis.Base.FinalCapital)

	// Same capital as the base: no change.
	mid := analysis.Results[1]
	assertDecimal(t, "10000", mid.ParameterValues[domain.ParamInitialCapital])
	assertDecimal(t, "0", mid.KeyMetrics.FinalCapitalChange)

	// 10000 more capital compounds at 5% for three years.
	high := analysis.Results[2]
	assertDecimal(t, "11576.25", high.KeyMetrics.FinalCapitalChange)

	assert.Equal(t, domain.ParamInitialCapital, analysis.Summary.MostSensitiveParameter)
	assert.Contains(t, analysis.Summary.SensitivityScores, domain.ParamInitialCapital)
	assert.NotEmpty(t, analysis.Summary.RiskLevel)
	assert.NotEmpty(t, analysis.Summary.Recommendations)
}

func TestAnalyzeSingleParameter_GoalYearChange(t *testing.T) {
	cfg := &domain.Configuration{
		StartingYear:           2020,
		InitialCapital:         dec("100000"),
		AvgYearlyReturns:       dec("0"),
		WithdrawalRate:         dec("4"),
		RetirementIncomeTarget: dec("4400"),
		Incomes:                []domain.CashFlow{yearly("salary", "5000")},
	}
	analyzer := NewSensitivityAnalyzer()
	analyzer.Horizon = 10

	param := domain.SensitivityParameter{
		Name:     domain.ParamRetirementIncomeTarget,
		MinValue: dec("4000"),
		MaxValue: dec("4800"),
		Steps:    3,
	}

	analysis, err := analyzer.AnalyzeSingleParameter(context.Background(), cfg, param)
	require.NoError(t, err)

	// Base value defaults to the configured target.
	assertDecimal(t, "4400", analysis.Parameters[0].BaseValue)
	require.Equal(t, 2022, *analysis.Base.GoalYear)

	changes := []int{-2, 0, 2}
	for i, result := range analysis.Results {
		require.NotNil(t, result.KeyMetrics.GoalYearChange, i)
		assert.Equal(t, changes[i], *result.KeyMetrics.GoalYearChange, i)
	}
}

func TestAnalyzeMultipleParameters(t *testing.T) {
	analyzer := NewSensitivityAnalyzer()
	analyzer.Horizon = 5

	analysis, err := analyzer.AnalyzeMultipleParameters(context.Background(), scenarioConfig(), domain.GetCommonParameters())
	require.NoError(t, err)
	assert.Equal(t, "multi", analysis.AnalysisType)
	assert.Len(t, analysis.Parameters, 3)
	assert.Len(t, analysis.Results, 15)
	assert.Len(t, analysis.Summary.SensitivityScores, 3)
}

func TestAnalyzeParameterMatrix(t *testing.T) {
	analyzer := NewSensitivityAnalyzer()
	analyzer.Horizon = 5

	p1 := domain.SensitivityParameter{Name: domain.ParamAvgYearlyReturns, MinValue: dec("4"), MaxValue: dec("6"), Steps: 2}
	p2 := domain.SensitivityParameter{Name: domain.ParamSpendingScale, MinValue: dec("0.5"), MaxValue: dec("1.5"), Steps: 3}

	matrix, err := analyzer.AnalyzeParameterMatrix(context.Background(), scenarioConfig(), p1, p2)
	require.NoError(t, err)
	require.Len(t, matrix.MatrixResults, 2)
	require.Len(t, matrix.MatrixResults[0], 3)

	cell := matrix.MatrixResults[1][2]
	assertDecimal(t, "6", cell.ParameterValues[domain.ParamAvgYearlyReturns])
	assertDecimal(t, "1.5", cell.ParameterValues[domain.ParamSpendingScale])
	assert.Equal(t, "sweep_avg_yearly_returns_6_spending_scale_1.5", cell.ScenarioName)
}

func TestAnalyzeSingleParameter_UnknownParameter(t *testing.T) {
	analyzer := NewSensitivityAnalyzer()
	analyzer.Horizon = 2

	_, err := analyzer.AnalyzeSingleParameter(context.Background(), scenarioConfig(), domain.SensitivityParameter{
		Name: "inflation", MinValue: dec("1"), MaxValue: dec("2"), Steps: 2,
	})
	assert.Error(t, err)
}
