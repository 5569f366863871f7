package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rhymond/go-money"
	json "github.com/goccy/go-json"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the encoding from the file extension, YAML by default
func FormatFromPath(filename string) Format {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// InputParser handles parsing of input configuration files
type InputParser struct {
	// Defaults fills a missing starting year when set. Without it a
	// missing starting year is a configuration error.
	Defaults *Defaults
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data, FormatFromPath(filename))
}

// Parse decodes and validates a configuration
func (ip *InputParser) Parse(data []byte, format Format) (*domain.Configuration, error) {
	var raw rawConfiguration
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, &domain.ConfigurationError{Reason: "failed to parse JSON", Err: err}
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, &domain.ConfigurationError{Reason: "failed to parse YAML", Err: err}
		}
	default:
		return nil, fmt.Errorf("unsupported configuration format %q", format)
	}

	if raw.StartingYear == nil && ip.Defaults != nil {
		raw.StartingYear = domain.IntPtr(ip.Defaults.CurrentYear())
	}

	config, err := raw.toConfiguration()
	if err != nil {
		return nil, err
	}
	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ValidateConfiguration checks the scalar parameters of a configuration.
// Cash flows are not checked here: a malformed flow only becomes a
// diagnostic of the projection.
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config == nil {
		return domain.NewConfigurationError("", "configuration is required")
	}
	if config.Age != nil && *config.Age < 0 {
		return domain.NewConfigurationError("age", "must not be negative")
	}
	if config.WithdrawalRate.IsNegative() {
		return domain.NewConfigurationError("withdrawal_rate", "must not be negative")
	}
	if config.RetirementIncomeTarget.IsNegative() {
		return domain.NewConfigurationError("retirement_income_target", "must not be negative")
	}
	if config.AvgYearlyReturns.LessThanOrEqual(decimal.NewFromInt(-100)) {
		return domain.NewConfigurationError("avg_yearly_returns", "must be greater than -100")
	}
	if config.Currency != "" && money.GetCurrency(config.Currency) == nil {
		return domain.NewConfigurationError("currency", fmt.Sprintf("unknown currency %q", config.Currency))
	}
	return nil
}

// rawConfiguration mirrors domain.Configuration with optional fields so
// missing values can be told apart from zeros. It also accepts the legacy
// flat shape of earlier exports.
type rawConfiguration struct {
	StartingYear           *int             `yaml:"starting_year" json:"startingYear"`
	Age                    *int             `yaml:"age" json:"age"`
	InitialCapital         *decimal.Decimal `yaml:"initial_capital" json:"initialCapital"`
	AvgYearlyReturns       *decimal.Decimal `yaml:"avg_yearly_returns" json:"avgYearlyReturns"`
	WithdrawalRate         *decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`
	RetirementIncomeTarget *decimal.Decimal `yaml:"retirement_income_target" json:"retirementIncomeTarget"`
	Incomes                []rawCashFlow    `yaml:"incomes" json:"incomes"`
	Spendings              []rawCashFlow    `yaml:"spendings" json:"spendings"`
	Currency               string           `yaml:"currency" json:"currency"`

	// Legacy fields
	Expenses []rawCashFlow    `yaml:"expenses" json:"expenses"`
	TriType  string           `yaml:"tri_type" json:"triType"`
	TriValue *decimal.Decimal `yaml:"tri_value" json:"triValue"`
}

type rawCashFlow struct {
	ID               string                   `yaml:"id" json:"id"`
	Name             string                   `yaml:"name" json:"name"`
	Amount           decimal.Decimal          `yaml:"amount" json:"amount"`
	Recurring        *bool                    `yaml:"recurring" json:"recurring"`
	FixedYear        *int                     `yaml:"fixed_year" json:"fixedYear"`
	RecurringOptions *domain.RecurringOptions `yaml:"recurring_options" json:"recurringOptions"`

	// Legacy fields
	RecurrenceType string                `yaml:"recurrence_type" json:"recurrenceType"`
	Year           *int                  `yaml:"year" json:"year"`
	Frequency      *int                  `yaml:"frequency" json:"frequency"`
	FrequencyScope domain.FrequencyScope `yaml:"frequency_scope" json:"frequencyScope"`
}

// Legacy recurrence types and target income types
const (
	legacyOnce      = "once"
	legacyRecurring = "recurring"

	legacyTargetPercentage = "percentage"
	legacyTargetFixed      = "fixed"
)

func (raw *rawConfiguration) toConfiguration() (*domain.Configuration, error) {
	if err := raw.upgradeTarget(); err != nil {
		return nil, err
	}

	required := []struct {
		field string
		set   bool
	}{
		{"starting_year", raw.StartingYear != nil},
		{"initial_capital", raw.InitialCapital != nil},
		{"avg_yearly_returns", raw.AvgYearlyReturns != nil},
		{"withdrawal_rate", raw.WithdrawalRate != nil},
		{"retirement_income_target", raw.RetirementIncomeTarget != nil},
	}
	for _, r := range required {
		if !r.set {
			return nil, domain.NewConfigurationError(r.field, "is required")
		}
	}

	spendings := raw.Spendings
	if len(spendings) == 0 {
		spendings = raw.Expenses
	}

	return &domain.Configuration{
		StartingYear:           *raw.StartingYear,
		Age:                    raw.Age,
		InitialCapital:         *raw.InitialCapital,
		AvgYearlyReturns:       *raw.AvgYearlyReturns,
		WithdrawalRate:         *raw.WithdrawalRate,
		RetirementIncomeTarget: *raw.RetirementIncomeTarget,
		Incomes:                convertCashFlows(raw.Incomes),
		Spendings:              convertCashFlows(spendings),
		Currency:               strings.ToUpper(raw.Currency),
	}, nil
}

// upgradeTarget maps the legacy tri_type/tri_value pair onto the withdrawal
// rate or the income target when those are not set explicitly.
func (raw *rawConfiguration) upgradeTarget() error {
	if raw.TriType == "" || raw.TriValue == nil {
		return nil
	}
	switch raw.TriType {
	case legacyTargetPercentage:
		if raw.WithdrawalRate == nil {
			raw.WithdrawalRate = raw.TriValue
		}
	case legacyTargetFixed:
		if raw.RetirementIncomeTarget == nil {
			raw.RetirementIncomeTarget = raw.TriValue
		}
	default:
		return domain.NewConfigurationError("tri_type", fmt.Sprintf("unknown target type %q", raw.TriType))
	}
	return nil
}

func convertCashFlows(raws []rawCashFlow) []domain.CashFlow {
	if raws == nil {
		return nil
	}
	flows := make([]domain.CashFlow, 0, len(raws))
	for _, r := range raws {
		flows = append(flows, r.toCashFlow())
	}
	return flows
}

// toCashFlow never fails: shape problems are left in place for the
// projection to report.
func (r rawCashFlow) toCashFlow() domain.CashFlow {
	cf := domain.CashFlow{
		ID:               r.ID,
		Name:             r.Name,
		Amount:           r.Amount,
		FixedYear:        r.FixedYear,
		RecurringOptions: r.RecurringOptions,
	}

	if r.isLegacy() {
		return r.upgradeLegacy(cf)
	}

	if r.Recurring != nil {
		cf.Recurring = *r.Recurring
	} else {
		cf.Recurring = r.RecurringOptions != nil
	}
	return cf
}

func (r rawCashFlow) isLegacy() bool {
	return r.RecurrenceType != "" && r.Recurring == nil && r.RecurringOptions == nil && r.FixedYear == nil
}

// upgradeLegacy converts the flat shape. A legacy recurring flow ran from
// its year onward, forever.
func (r rawCashFlow) upgradeLegacy(cf domain.CashFlow) domain.CashFlow {
	switch r.RecurrenceType {
	case legacyOnce:
		cf.FixedYear = r.Year
	case legacyRecurring:
		opts := domain.RecurringOptions{
			FrequencyScope: r.FrequencyScope,
			StartingType:   domain.StartNow,
			UntilType:      domain.UntilForever,
		}
		if r.Frequency != nil {
			opts.Frequency = *r.Frequency
		}
		if r.Year != nil {
			opts.StartingType = domain.StartYear
			opts.StartingValue = r.Year
		}
		cf.Recurring = true
		cf.RecurringOptions = &opts
	default:
		// Unknown type: a recurring flow without options, reported later.
		cf.Recurring = true
	}
	return cf
}
