package domain

import (
	"github.com/shopspring/decimal"
)

// Row is the projection of a single simulated year
type Row struct {
	Year                 int             `json:"year"`
	Age                  *int            `json:"age,omitempty"`
	StartOfYearCapital   decimal.Decimal `json:"startOfYearCapital"`
	Income               decimal.Decimal `json:"income"`
	Spendings            decimal.Decimal `json:"spendings"`
	Savings              decimal.Decimal `json:"savings"`
	CapitalBeforeReturns decimal.Decimal `json:"capitalBeforeReturns"`
	Returns              decimal.Decimal `json:"returns"`
	TotalCapital         decimal.Decimal `json:"totalCapital"`
	RetirementWithdrawal decimal.Decimal `json:"retirementWithdrawal"`
	GoalReached          bool            `json:"goalReached"`
}

// IsDepleted returns true when the year ends with negative capital
func (r *Row) IsDepleted() bool {
	return r.TotalCapital.IsNegative()
}

// SavingsRate returns savings as a percentage of income, zero without income
func (r *Row) SavingsRate() decimal.Decimal {
	if r.Income.IsZero() {
		return decimal.Zero
	}
	return r.Savings.Div(r.Income).Mul(decimal.NewFromInt(100))
}

// ProjectionSummary provides the key metrics of a projection
type ProjectionSummary struct {
	Horizon       int  `json:"horizon"`
	FirstYear     int  `json:"firstYear"`
	LastYear      int  `json:"lastYear"`
	GoalYear      *int `json:"goalYear,omitempty"`
	GoalAge       *int `json:"goalAge,omitempty"`
	YearsToGoal   *int `json:"yearsToGoal,omitempty"`
	GoalRows      int  `json:"goalRows"`
	GoalLost      bool `json:"goalLost"` // goal reached then lost again in a later year
	DepletionYear *int `json:"depletionYear,omitempty"`
	InvalidFlows  int  `json:"invalidFlows"`

	InitialCapital decimal.Decimal `json:"initialCapital"`
	FinalCapital   decimal.Decimal `json:"finalCapital"`
	PeakCapital    decimal.Decimal `json:"peakCapital"`
	TotalIncome    decimal.Decimal `json:"totalIncome"`
	TotalSpendings decimal.Decimal `json:"totalSpendings"`
	TotalReturns   decimal.Decimal `json:"totalReturns"`
}

// GoalReached reports whether any year reached the retirement goal
func (s *ProjectionSummary) GoalReached() bool {
	return s.GoalYear != nil
}

// Projection is the complete output of one projection run
type Projection struct {
	Name        string            `json:"name,omitempty"`
	Currency    string            `json:"currency"`
	ShowAge     bool              `json:"showAge"`
	Rows        []Row             `json:"rows"`
	Diagnostics []Diagnostic      `json:"diagnostics,omitempty"`
	Summary     ProjectionSummary `json:"summary"`
}

// RowForYear returns the row of a calendar year
func (p *Projection) RowForYear(year int) (*Row, bool) {
	if len(p.Rows) == 0 {
		return nil, false
	}
	i := year - p.Rows[0].Year
	if i < 0 || i >= len(p.Rows) {
		return nil, false
	}
	return &p.Rows[i], true
}

// GoalReachedBy reports whether the goal is reached in a row no later than year
func (p *Projection) GoalReachedBy(year int) bool {
	return p.Summary.GoalYear != nil && *p.Summary.GoalYear <= year
}
