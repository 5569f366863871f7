package domain

import (
	"github.com/shopspring/decimal"
)

// FrequencyScope is the time unit a recurring cash flow's frequency divides
type FrequencyScope string

const (
	ScopeDay   FrequencyScope = "day"
	ScopeWeek  FrequencyScope = "week"
	ScopeMonth FrequencyScope = "month"
	ScopeYear  FrequencyScope = "year"
)

// PeriodsPerYear returns how many scope units fit in one simulated year.
// The second return value is false for an unknown scope.
func (s FrequencyScope) PeriodsPerYear() (int64, bool) {
	switch s {
	case ScopeDay:
		return 365, true
	case ScopeWeek:
		return 52, true
	case ScopeMonth:
		return 12, true
	case ScopeYear:
		return 1, true
	default:
		return 0, false
	}
}

// Valid reports whether s is a known scope
func (s FrequencyScope) Valid() bool {
	_, ok := s.PeriodsPerYear()
	return ok
}

// StartingType selects the rule that activates a recurring cash flow
type StartingType string

const (
	StartNow  StartingType = "now"
	StartGoal StartingType = "goal"
	StartAge  StartingType = "age"
	StartYear StartingType = "year"
)

// Valid reports whether t is a known starting rule
func (t StartingType) Valid() bool {
	switch t {
	case StartNow, StartGoal, StartAge, StartYear:
		return true
	default:
		return false
	}
}

// NeedsValue reports whether the rule requires a threshold value
func (t StartingType) NeedsValue() bool {
	return t == StartAge || t == StartYear
}

// UntilType selects the rule that stops a recurring cash flow
type UntilType string

const (
	UntilForever UntilType = "forever"
	UntilGoal    UntilType = "goal"
	UntilAge     UntilType = "age"
	UntilYear    UntilType = "year"
)

// Valid reports whether t is a known until rule
func (t UntilType) Valid() bool {
	switch t {
	case UntilForever, UntilGoal, UntilAge, UntilYear:
		return true
	default:
		return false
	}
}

// NeedsValue reports whether the rule requires a threshold value
func (t UntilType) NeedsValue() bool {
	return t == UntilAge || t == UntilYear
}

// RecurringOptions describes when and how often a recurring cash flow applies
type RecurringOptions struct {
	Frequency      int            `yaml:"frequency" json:"frequency"`
	FrequencyScope FrequencyScope `yaml:"frequency_scope" json:"frequencyScope"`
	StartingType   StartingType   `yaml:"starting_type" json:"startingType"`
	StartingValue  *int           `yaml:"starting_value,omitempty" json:"startingValue,omitempty"`
	UntilType      UntilType      `yaml:"until_type" json:"untilType"`
	UntilValue     *int           `yaml:"until_value,omitempty" json:"untilValue,omitempty"`
}

// CashFlow is a single income or spending source.
// ID and Name are for list identity and display only; the projection never reads them.
type CashFlow struct {
	ID               string            `yaml:"id,omitempty" json:"id,omitempty"`
	Name             string            `yaml:"name" json:"name"`
	Amount           decimal.Decimal   `yaml:"amount" json:"amount"`
	Recurring        bool              `yaml:"recurring" json:"recurring"`
	FixedYear        *int              `yaml:"fixed_year,omitempty" json:"fixedYear,omitempty"`
	RecurringOptions *RecurringOptions `yaml:"recurring_options,omitempty" json:"recurringOptions,omitempty"`
}

// NewOneTimeCashFlow creates a non-recurring cash flow contributed in year
func NewOneTimeCashFlow(name string, amount decimal.Decimal, year int) CashFlow {
	return CashFlow{
		Name:      name,
		Amount:    amount,
		FixedYear: &year,
	}
}

// NewRecurringCashFlow creates a recurring cash flow
func NewRecurringCashFlow(name string, amount decimal.Decimal, opts RecurringOptions) CashFlow {
	return CashFlow{
		Name:             name,
		Amount:           amount,
		Recurring:        true,
		RecurringOptions: &opts,
	}
}

// Yearly returns recurring options for a flow contributed once per year from now on
func Yearly() RecurringOptions {
	return RecurringOptions{
		Frequency:      1,
		FrequencyScope: ScopeYear,
		StartingType:   StartNow,
		UntilType:      UntilForever,
	}
}

// DeepCopy returns a copy that shares no pointers with cf
func (cf CashFlow) DeepCopy() CashFlow {
	out := cf
	if cf.FixedYear != nil {
		out.FixedYear = IntPtr(*cf.FixedYear)
	}
	if cf.RecurringOptions != nil {
		opts := *cf.RecurringOptions
		if opts.StartingValue != nil {
			opts.StartingValue = IntPtr(*opts.StartingValue)
		}
		if opts.UntilValue != nil {
			opts.UntilValue = IntPtr(*opts.UntilValue)
		}
		out.RecurringOptions = &opts
	}
	return out
}

// Validate checks the shape invariants of a cash flow.
// It returns a *CashFlowValidationError describing the first problem found.
func (cf CashFlow) Validate() error {
	if !cf.Recurring {
		if cf.RecurringOptions != nil {
			return newCashFlowError(CodeShapeMismatch, "one-time cash flow must not carry recurring options")
		}
		if cf.FixedYear == nil {
			return newCashFlowError(CodeMissingFixedYear, "one-time cash flow requires a fixed year")
		}
		return nil
	}

	if cf.FixedYear != nil {
		return newCashFlowError(CodeShapeMismatch, "recurring cash flow must not carry a fixed year")
	}
	opts := cf.RecurringOptions
	if opts == nil {
		return newCashFlowError(CodeMissingRecurringOptions, "recurring cash flow requires recurring options")
	}
	if opts.Frequency <= 0 {
		return newCashFlowError(CodeInvalidFrequency, "frequency must be positive, got %d", opts.Frequency)
	}
	if !opts.FrequencyScope.Valid() {
		return newCashFlowError(CodeUnknownScope, "unknown frequency scope %q", opts.FrequencyScope)
	}
	if !opts.StartingType.Valid() {
		return newCashFlowError(CodeUnknownStartingType, "unknown starting type %q", opts.StartingType)
	}
	if opts.StartingType.NeedsValue() && opts.StartingValue == nil {
		return newCashFlowError(CodeMissingStartingValue, "starting type %q requires a starting value", opts.StartingType)
	}
	if !opts.UntilType.Valid() {
		return newCashFlowError(CodeUnknownUntilType, "unknown until type %q", opts.UntilType)
	}
	if opts.UntilType.NeedsValue() && opts.UntilValue == nil {
		return newCashFlowError(CodeMissingUntilValue, "until type %q requires an until value", opts.UntilType)
	}
	return nil
}

// IntPtr returns a pointer to v
func IntPtr(v int) *int {
	return &v
}
