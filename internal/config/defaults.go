package config

import (
	"time"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Defaults resolves the values that depend on the current date.
// It is the only place that reads the clock.
type Defaults struct {
	Now func() time.Time
}

// NewDefaults creates defaults using the system clock
func NewDefaults() *Defaults {
	return &Defaults{Now: time.Now}
}

// CurrentYear returns the calendar year of the injected clock
func (d *Defaults) CurrentYear() int {
	if d == nil || d.Now == nil {
		return time.Now().Year()
	}
	return d.Now().Year()
}

// DefaultConfiguration returns the starter profile: a 31 year old with 5000
// invested at 6%, a bi-weekly payroll and a single yearly spending.
func (d *Defaults) DefaultConfiguration() *domain.Configuration {
	year := d.CurrentYear()

	payroll := d.NewRecurring("Payroll", decimal.NewFromInt(2400))
	payroll.RecurringOptions.Frequency = 2
	payroll.RecurringOptions.FrequencyScope = domain.ScopeWeek
	payroll.RecurringOptions.UntilType = domain.UntilGoal

	bonus := d.NewOneTime("Bonus", decimal.NewFromInt(1234))
	bonus.FixedYear = domain.IntPtr(year + 1)

	return &domain.Configuration{
		StartingYear:           year,
		Age:                    domain.IntPtr(31),
		InitialCapital:         decimal.NewFromInt(5000),
		AvgYearlyReturns:       decimal.NewFromInt(6),
		WithdrawalRate:         decimal.NewFromInt(4),
		RetirementIncomeTarget: decimal.NewFromInt(30000),
		Incomes:                []domain.CashFlow{payroll, bonus},
		Spendings:              []domain.CashFlow{d.NewRecurring("Everything", decimal.NewFromInt(30000))},
		Currency:               domain.DefaultCurrency,
	}
}

// NewOneTime returns a one-time cash flow in the current year
func (d *Defaults) NewOneTime(name string, amount decimal.Decimal) domain.CashFlow {
	return domain.NewOneTimeCashFlow(name, amount, d.CurrentYear())
}

// NewRecurring returns a cash flow paid once a year from now on
func (d *Defaults) NewRecurring(name string, amount decimal.Decimal) domain.CashFlow {
	return domain.NewRecurringCashFlow(name, amount, domain.Yearly())
}
