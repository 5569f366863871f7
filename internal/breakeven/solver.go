package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

var two = decimal.NewFromInt(2)

// Solver finds the break-even value of one parameter by bisection
type Solver struct {
	Engine  *calculation.ProjectionEngine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *calculation.ProjectionEngine, options SolverOptions) *Solver {
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *calculation.ProjectionEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// probe is one evaluated point of the search
type probe struct {
	value      decimal.Decimal
	projection *domain.Projection
	meets      bool
}

// Optimize searches the smallest (or, for maximized targets, the largest)
// value of the target parameter with which the goal is first reached no
// later than the deadline. The goal year is assumed monotonic in the parameter.
func (s *Solver) Optimize(ctx context.Context, req OptimizationRequest) (*OptimizationResult, error) {
	if req.Config == nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "configuration is required"}
	}
	if !req.Target.Valid() {
		return nil, &BreakEvenError{
			Operation: "optimize",
			Message:   fmt.Sprintf("unsupported optimization target: %s", req.Target),
		}
	}
	if err := req.Constraints.Validate(); err != nil {
		return nil, err
	}
	deadline, err := req.Constraints.Deadline(req.Config)
	if err != nil {
		return nil, err
	}

	if req.MaxIterations <= 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = DefaultTolerance(req.Target)
	}

	horizon := s.Options.Horizon
	if need := deadline - req.Config.StartingYear + 1; need > horizon {
		horizon = need
	}

	lo, hi := DefaultBounds(req.Target, req.Config)
	if req.Constraints.Min != nil {
		lo = *req.Constraints.Min
	}
	if req.Constraints.Max != nil {
		hi = *req.Constraints.Max
	}
	if lo.GreaterThan(hi) {
		return nil, &BreakEvenError{Operation: "optimize", Message: "empty search interval"}
	}

	baseValue, err := calculation.ParameterValue(req.Config, string(req.Target))
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "unknown parameter", Cause: err}
	}
	base, err := s.Engine.Project(ctx, req.Config, horizon)
	if err != nil {
		return nil, &BreakEvenError{Operation: "optimize", Message: "failed to project base configuration", Cause: err}
	}

	result := &OptimizationResult{
		Request:      req,
		Deadline:     deadline,
		BaseValue:    baseValue,
		BaseSummary:  &base.Summary,
		AlreadyMeets: base.GoalReachedBy(deadline),
	}

	evaluate := func(v decimal.Decimal) (*probe, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++
		cfg, err := calculation.ApplyParameter(req.Config, string(req.Target), v)
		if err != nil {
			return nil, err
		}
		p, err := s.Engine.Project(ctx, cfg, horizon)
		if err != nil {
			return nil, err
		}
		return &probe{value: v, projection: p, meets: p.GoalReachedBy(deadline)}, nil
	}

	// The reachable end of the interval must meet the deadline, the other
	// end is tried next in case the whole interval does.
	reachable, other := hi, lo
	if req.Target.Maximize() {
		reachable, other = lo, hi
	}

	best, err := evaluate(reachable)
	if err != nil {
		return nil, s.wrap(err)
	}
	if !best.meets {
		result.ConvergenceInfo = fmt.Sprintf("goal cannot be reached by %d with %s in [%s, %s]",
			deadline, req.Target, lo.String(), hi.String())
		return result, nil
	}

	p, err := evaluate(other)
	if err != nil {
		return nil, s.wrap(err)
	}
	if p.meets {
		best = p
		result.ConvergenceInfo = "goal met across the whole search interval"
	} else {
		// bad always fails the deadline, good always meets it
		bad, good := other, reachable
		steps := 0
		for good.Sub(bad).Abs().GreaterThan(req.Tolerance) && steps < req.MaxIterations {
			steps++
			mid := bad.Add(good).Div(two)
			p, err := evaluate(mid)
			if err != nil {
				return nil, s.wrap(err)
			}
			if p.meets {
				good, best = mid, p
			} else {
				bad = mid
			}
		}
		if steps >= req.MaxIterations && good.Sub(bad).Abs().GreaterThan(req.Tolerance) {
			result.ConvergenceInfo = fmt.Sprintf("Max iterations (%d) reached", req.MaxIterations)
		} else {
			result.ConvergenceInfo = fmt.Sprintf("Bisection converged within %s", req.Tolerance.String())
		}
	}

	optimal := best.value
	result.Success = true
	result.OptimalValue = &optimal
	result.Change = optimal.Sub(baseValue)
	result.Projection = best.projection
	result.Summary = &best.projection.Summary
	return result, nil
}

func (s *Solver) wrap(err error) error {
	return &BreakEvenError{Operation: "optimize", Message: "failed to evaluate candidate", Cause: err}
}
