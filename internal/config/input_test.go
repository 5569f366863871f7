package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

const minimalYAML = `
starting_year: 2024
initial_capital: 1000
avg_yearly_returns: 5
withdrawal_rate: 4
retirement_income_target: 20000
`

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser, "Should create input parser")
	assert.Nil(t, parser.Defaults)
}

func TestInputParser_LoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()

	config, err := parser.LoadFromFile("nonexistent.yaml")

	assert.Error(t, err, "Should error for nonexistent file")
	assert.Nil(t, config, "Should return nil config")
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestInputParser_LoadFromFile_InvalidYAML(t *testing.T) {
	invalidFile := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFile, []byte("invalid: yaml: content: [unclosed"), 0o644))

	config, err := NewInputParser().LoadFromFile(invalidFile)

	assert.Nil(t, config)
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestInputParser_LoadFromFile_Basic(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 2020, config.StartingYear)
	require.NotNil(t, config.Age)
	assert.Equal(t, 30, *config.Age)
	assertDecimal(t, "10000", config.InitialCapital)
	assertDecimal(t, "5", config.AvgYearlyReturns)
	assertDecimal(t, "4", config.WithdrawalRate)
	assertDecimal(t, "40000", config.RetirementIncomeTarget)
	assert.Equal(t, "CAD", config.Currency)

	require.Len(t, config.Incomes, 2)
	salary := config.Incomes[0]
	assert.Equal(t, "salary", salary.ID)
	assert.True(t, salary.Recurring)
	require.NotNil(t, salary.RecurringOptions)
	assert.Equal(t, domain.UntilGoal, salary.RecurringOptions.UntilType)
	assert.NoError(t, salary.Validate())

	bonus := config.Incomes[1]
	assert.False(t, bonus.Recurring)
	require.NotNil(t, bonus.FixedYear)
	assert.Equal(t, 2021, *bonus.FixedYear)
	assertDecimal(t, "1234", bonus.Amount)

	require.Len(t, config.Spendings, 1)
	assert.Equal(t, domain.ScopeMonth, config.Spendings[0].RecurringOptions.FrequencyScope)
}

func TestInputParser_LoadFromFile_LegacyJSON(t *testing.T) {
	config, err := NewInputParser().LoadFromFile(filepath.Join("testdata", "legacy.json"))
	require.NoError(t, err)

	assertDecimal(t, "4", config.WithdrawalRate)
	assertDecimal(t, "30000", config.RetirementIncomeTarget)

	require.Len(t, config.Incomes, 2)
	bonus := config.Incomes[0]
	assert.False(t, bonus.Recurring)
	assert.Equal(t, 2021, *bonus.FixedYear)
	assert.Nil(t, bonus.RecurringOptions)

	payroll := config.Incomes[1]
	assert.True(t, payroll.Recurring)
	assert.Nil(t, payroll.FixedYear)
	require.NotNil(t, payroll.RecurringOptions)
	assert.Equal(t, 2, payroll.RecurringOptions.Frequency)
	assert.Equal(t, domain.ScopeWeek, payroll.RecurringOptions.FrequencyScope)
	assert.Equal(t, domain.StartYear, payroll.RecurringOptions.StartingType)
	assert.Equal(t, 2020, *payroll.RecurringOptions.StartingValue)
	assert.Equal(t, domain.UntilForever, payroll.RecurringOptions.UntilType)
	assert.NoError(t, payroll.Validate())

	require.Len(t, config.Spendings, 1, "expenses are read as spendings")
	assert.Equal(t, "everything", config.Spendings[0].Name)
	assert.NoError(t, config.Spendings[0].Validate())
}

func TestInputParser_Parse_MissingRequiredFields(t *testing.T) {
	fields := []string{
		"starting_year",
		"initial_capital",
		"avg_yearly_returns",
		"withdrawal_rate",
		"retirement_income_target",
	}

	for _, field := range fields {
		t.Run(field, func(t *testing.T) {
			var lines []string
			for _, line := range strings.Split(minimalYAML, "\n") {
				if !strings.HasPrefix(line, field+":") {
					lines = append(lines, line)
				}
			}

			config, err := NewInputParser().Parse([]byte(strings.Join(lines, "\n")), FormatYAML)
			assert.Nil(t, config)

			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, field, cfgErr.Field)
		})
	}
}

func TestInputParser_Parse_NonNumeric(t *testing.T) {
	data := strings.Replace(minimalYAML, "initial_capital: 1000", "initial_capital: lots", 1)

	config, err := NewInputParser().Parse([]byte(data), FormatYAML)
	assert.Nil(t, config)
	var cfgErr *domain.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestInputParser_Parse_NonNumericJSON(t *testing.T) {
	data := `{"startingYear": 2020, "initialCapital": "lots", "avgYearlyReturns": 5, "withdrawalRate": 4, "retirementIncomeTarget": 1}`

	_, err := NewInputParser().Parse([]byte(data), FormatJSON)
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestInputParser_Parse_ZeroValuesArePresent(t *testing.T) {
	data := `
starting_year: 2024
initial_capital: 0
avg_yearly_returns: 0
withdrawal_rate: 0
retirement_income_target: 0
`
	config, err := NewInputParser().Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.True(t, config.InitialCapital.IsZero())
	assert.Nil(t, config.Age)
	assert.Empty(t, config.Incomes)
}

func TestInputParser_Parse_DefaultsFillStartingYear(t *testing.T) {
	data := strings.Replace(minimalYAML, "starting_year: 2024\n", "", 1)

	parser := NewInputParser()
	parser.Defaults = &Defaults{Now: func() time.Time { return time.Date(2031, 6, 1, 0, 0, 0, 0, time.UTC) }}

	config, err := parser.Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2031, config.StartingYear)

	// An explicit year wins over the clock.
	config, err = parser.Parse([]byte(minimalYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, 2024, config.StartingYear)
}

func TestInputParser_Parse_MalformedCashFlowIsAccepted(t *testing.T) {
	data := minimalYAML + `
incomes:
  - name: broken
    amount: 100
    recurring: true
    recurring_options:
      frequency: 0
      frequency_scope: year
      starting_type: now
      until_type: forever
`
	config, err := NewInputParser().Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	require.Len(t, config.Incomes, 1)
	assert.Error(t, config.Incomes[0].Validate())
}

func TestInputParser_Parse_UnsupportedFormat(t *testing.T) {
	_, err := NewInputParser().Parse([]byte(minimalYAML), Format("toml"))
	assert.Error(t, err)
}

func TestInputParser_Parse_LegacyFixedTarget(t *testing.T) {
	data := `
starting_year: 2020
initial_capital: 1000
avg_yearly_returns: 5
withdrawal_rate: 4
tri_type: fixed
tri_value: 12000
`
	config, err := NewInputParser().Parse([]byte(data), FormatYAML)
	require.NoError(t, err)
	assertDecimal(t, "12000", config.RetirementIncomeTarget)

	_, err = NewInputParser().Parse([]byte(strings.Replace(data, "fixed", "magic", 1)), FormatYAML)
	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "tri_type", cfgErr.Field)
}

func TestInputParser_ValidateConfiguration(t *testing.T) {
	valid := func() *domain.Configuration {
		return &domain.Configuration{
			StartingYear:           2020,
			InitialCapital:         decimal.NewFromInt(1000),
			AvgYearlyReturns:       decimal.NewFromInt(5),
			WithdrawalRate:         decimal.NewFromInt(4),
			RetirementIncomeTarget: decimal.NewFromInt(1000),
		}
	}

	tests := []struct {
		name   string
		modify func(c *domain.Configuration)
		field  string
	}{
		{"negative age", func(c *domain.Configuration) { c.Age = domain.IntPtr(-1) }, "age"},
		{"negative withdrawal rate", func(c *domain.Configuration) { c.WithdrawalRate = decimal.NewFromInt(-1) }, "withdrawal_rate"},
		{"negative target", func(c *domain.Configuration) { c.RetirementIncomeTarget = decimal.NewFromInt(-1) }, "retirement_income_target"},
		{"total loss returns", func(c *domain.Configuration) { c.AvgYearlyReturns = decimal.NewFromInt(-100) }, "avg_yearly_returns"},
		{"unknown currency", func(c *domain.Configuration) { c.Currency = "NOPE" }, "currency"},
	}

	parser := NewInputParser()
	assert.NoError(t, parser.ValidateConfiguration(valid()))
	assert.Error(t, parser.ValidateConfiguration(nil))

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.modify(c)
			err := parser.ValidateConfiguration(c)
			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatFromPath("plan.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("PLAN.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("plan"))
}
