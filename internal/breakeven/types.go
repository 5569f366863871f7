package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// OptimizationTarget defines what parameter to solve for
type OptimizationTarget string

const (
	OptimizeInitialCapital   OptimizationTarget = domain.ParamInitialCapital
	OptimizeAvgYearlyReturns OptimizationTarget = domain.ParamAvgYearlyReturns
	OptimizeWithdrawalRate   OptimizationTarget = domain.ParamWithdrawalRate
	OptimizeSpendingScale    OptimizationTarget = domain.ParamSpendingScale
	OptimizeIncomeTarget     OptimizationTarget = domain.ParamRetirementIncomeTarget
)

// AllTargets lists every supported optimization target
var AllTargets = []OptimizationTarget{
	OptimizeInitialCapital,
	OptimizeAvgYearlyReturns,
	OptimizeWithdrawalRate,
	OptimizeSpendingScale,
	OptimizeIncomeTarget,
}

// Maximize reports whether the solver looks for the largest value still
// meeting the deadline. Other targets look for the smallest.
func (t OptimizationTarget) Maximize() bool {
	return t == OptimizeSpendingScale || t == OptimizeIncomeTarget
}

// Valid reports whether t is a known target
func (t OptimizationTarget) Valid() bool {
	for _, known := range AllTargets {
		if t == known {
			return true
		}
	}
	return false
}

// Constraints define the deadline and the search bounds
type Constraints struct {
	// Goal must be reached no later than this year, or this age
	GoalYear *int `json:"goal_year,omitempty"`
	GoalAge  *int `json:"goal_age,omitempty"`

	// Search bounds, defaulted per target when nil
	Min *decimal.Decimal `json:"min,omitempty"`
	Max *decimal.Decimal `json:"max,omitempty"`
}

// Validate checks if constraints are internally consistent
func (c *Constraints) Validate() error {
	if c.GoalYear == nil && c.GoalAge == nil {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "a goal year or a goal age is required",
		}
	}
	if c.GoalYear != nil && c.GoalAge != nil {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "goal year and goal age are mutually exclusive",
		}
	}
	if c.Min != nil && c.Max != nil && c.Min.GreaterThan(*c.Max) {
		return &BreakEvenError{
			Operation: "validate_constraints",
			Message:   "min cannot be greater than max",
		}
	}
	return nil
}

// Deadline resolves the latest acceptable goal year for config
func (c *Constraints) Deadline(config *domain.Configuration) (int, error) {
	year := 0
	switch {
	case c.GoalYear != nil:
		year = *c.GoalYear
	case c.GoalAge != nil:
		if config.Age == nil {
			return 0, &BreakEvenError{
				Operation: "deadline",
				Message:   "a goal age needs the configuration age",
			}
		}
		year = config.StartingYear + *c.GoalAge - *config.Age
	default:
		return 0, &BreakEvenError{Operation: "deadline", Message: "no goal year or goal age"}
	}

	if year < config.StartingYear {
		return 0, &BreakEvenError{
			Operation: "deadline",
			Message:   fmt.Sprintf("deadline %d is before the starting year %d", year, config.StartingYear),
		}
	}
	return year, nil
}

// OptimizationRequest defines the parameters for an optimization run
type OptimizationRequest struct {
	Config        *domain.Configuration `json:"-"`
	Target        OptimizationTarget    `json:"target"`
	Constraints   Constraints           `json:"constraints"`
	MaxIterations int                   `json:"max_iterations"`
	Tolerance     decimal.Decimal       `json:"tolerance"` // stop once the bracket is narrower
}

// OptimizationResult contains the results of an optimization run
type OptimizationResult struct {
	Request         OptimizationRequest `json:"request"`
	Deadline        int                 `json:"deadline"`
	Success         bool                `json:"success"`
	Iterations      int                 `json:"iterations"`
	ConvergenceInfo string              `json:"convergence_info"`

	// Solved parameter
	BaseValue    decimal.Decimal  `json:"base_value"`
	OptimalValue *decimal.Decimal `json:"optimal_value,omitempty"`
	Change       decimal.Decimal  `json:"change"`

	// Results at the optimal value
	Projection   *domain.Projection        `json:"-"`
	Summary      *domain.ProjectionSummary `json:"summary,omitempty"`
	BaseSummary  *domain.ProjectionSummary `json:"base_summary,omitempty"`
	AlreadyMeets bool                      `json:"already_meets"` // the unmodified configuration meets the deadline
}

// MultiDimensionalResult contains results when solving every target
type MultiDimensionalResult struct {
	Deadline        int                  `json:"deadline"`
	Results         []OptimizationResult `json:"results"`
	Failed          []string             `json:"failed,omitempty"`
	Recommendations []string             `json:"recommendations"`
}

// SolverOptions configures the solver algorithm
type SolverOptions struct {
	MaxIterations int // Maximum bisection steps
	Horizon       int // Minimum projection horizon in years
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxIterations: 60,
		Horizon:       70,
	}
}

// DefaultTolerance returns the bracket width at which a target is considered solved
func DefaultTolerance(target OptimizationTarget) decimal.Decimal {
	switch target {
	case OptimizeInitialCapital, OptimizeIncomeTarget:
		return decimal.NewFromInt(10)
	case OptimizeSpendingScale:
		return decimal.RequireFromString("0.0001")
	default:
		return decimal.RequireFromString("0.001")
	}
}

// DefaultBounds returns the search interval of a target for config
func DefaultBounds(target OptimizationTarget, config *domain.Configuration) (decimal.Decimal, decimal.Decimal) {
	switch target {
	case OptimizeInitialCapital:
		hi := decimal.NewFromInt(10000000)
		if config.WithdrawalRate.IsPositive() {
			// this capital meets the goal in the starting year
			hi = config.RetirementIncomeTarget.Mul(decimal.NewFromInt(100)).Div(config.WithdrawalRate).Ceil()
		}
		return decimal.Min(decimal.Zero, config.InitialCapital), decimal.Max(hi, config.InitialCapital)
	case OptimizeAvgYearlyReturns:
		return decimal.NewFromInt(-20), decimal.NewFromInt(30)
	case OptimizeWithdrawalRate:
		return decimal.Zero, decimal.NewFromInt(100)
	case OptimizeSpendingScale:
		return decimal.Zero, decimal.NewFromInt(5)
	default:
		hi := decimal.Max(config.RetirementIncomeTarget.Mul(decimal.NewFromInt(4)), decimal.NewFromInt(1000000))
		return decimal.Zero, hi
	}
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
