package domain

import (
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the display currency used when a configuration names none
const DefaultCurrency = "CAD"

// Cash flow list names
const (
	ListIncomes   = "incomes"
	ListSpendings = "spendings"
)

// Configuration is the complete input of one projection run.
// Percentages are expressed in percent (4 means 4%).
type Configuration struct {
	StartingYear           int             `yaml:"starting_year" json:"startingYear"`
	Age                    *int            `yaml:"age,omitempty" json:"age,omitempty"`
	InitialCapital         decimal.Decimal `yaml:"initial_capital" json:"initialCapital"`
	AvgYearlyReturns       decimal.Decimal `yaml:"avg_yearly_returns" json:"avgYearlyReturns"`
	WithdrawalRate         decimal.Decimal `yaml:"withdrawal_rate" json:"withdrawalRate"`
	RetirementIncomeTarget decimal.Decimal `yaml:"retirement_income_target" json:"retirementIncomeTarget"`
	Incomes                []CashFlow      `yaml:"incomes" json:"incomes"`
	Spendings              []CashFlow      `yaml:"spendings" json:"spendings"`

	// Currency is a display label only; all amounts share it.
	Currency string `yaml:"currency,omitempty" json:"currency,omitempty"`
}

// HasAge reports whether age based rules can be evaluated
func (c *Configuration) HasAge() bool {
	return c.Age != nil
}

// DisplayCurrency returns the currency code used to render amounts
func (c *Configuration) DisplayCurrency() string {
	if c.Currency == "" {
		return DefaultCurrency
	}
	return c.Currency
}

// CashFlows returns the named list (incomes or spendings)
func (c *Configuration) CashFlows(list string) ([]CashFlow, bool) {
	switch list {
	case ListIncomes:
		return c.Incomes, true
	case ListSpendings:
		return c.Spendings, true
	default:
		return nil, false
	}
}

// SetCashFlows replaces the named list
func (c *Configuration) SetCashFlows(list string, flows []CashFlow) bool {
	switch list {
	case ListIncomes:
		c.Incomes = flows
	case ListSpendings:
		c.Spendings = flows
	default:
		return false
	}
	return true
}

// DeepCopy returns a copy of the configuration sharing no mutable state
func (c *Configuration) DeepCopy() *Configuration {
	if c == nil {
		return nil
	}
	out := *c
	if c.Age != nil {
		out.Age = IntPtr(*c.Age)
	}
	out.Incomes = copyCashFlows(c.Incomes)
	out.Spendings = copyCashFlows(c.Spendings)
	return &out
}

func copyCashFlows(flows []CashFlow) []CashFlow {
	if flows == nil {
		return nil
	}
	out := make([]CashFlow, len(flows))
	for i, cf := range flows {
		out[i] = cf.DeepCopy()
	}
	return out
}

// ScaleCashFlows multiplies the amount of every flow of the named list by factor
func (c *Configuration) ScaleCashFlows(list string, factor decimal.Decimal) bool {
	flows, ok := c.CashFlows(list)
	if !ok {
		return false
	}
	for i := range flows {
		flows[i].Amount = flows[i].Amount.Mul(factor)
	}
	return true
}
