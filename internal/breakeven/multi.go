package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
)

// OptimizeMultiDimensional solves every target independently for the same deadline
func (s *Solver) OptimizeMultiDimensional(
	ctx context.Context,
	config *domain.Configuration,
	constraints Constraints,
	targets []OptimizationTarget,
) (*MultiDimensionalResult, error) {
	if err := constraints.Validate(); err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		targets = AllTargets
	}

	multi := &MultiDimensionalResult{}
	for _, target := range targets {
		// bounds are per target
		c := constraints
		c.Min, c.Max = nil, nil

		result, err := s.Optimize(ctx, OptimizationRequest{
			Config:      config,
			Target:      target,
			Constraints: c,
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			multi.Failed = append(multi.Failed, string(target))
			continue
		}
		multi.Deadline = result.Deadline
		if !result.Success {
			multi.Failed = append(multi.Failed, string(target))
			continue
		}
		multi.Results = append(multi.Results, *result)
	}

	if len(multi.Results) == 0 {
		return nil, &BreakEvenError{
			Operation: "optimize_multi_dimensional",
			Message:   "no target can reach the goal by the deadline",
		}
	}

	multi.Recommendations = generateRecommendations(multi.Results, config.DisplayCurrency())
	return multi, nil
}

// generateRecommendations creates one actionable line per solved target
func generateRecommendations(results []OptimizationResult, currency string) []string {
	recs := make([]string, 0, len(results))
	for _, r := range results {
		if r.OptimalValue == nil {
			continue
		}
		v := *r.OptimalValue
		switch r.Request.Target {
		case OptimizeInitialCapital:
			recs = append(recs, fmt.Sprintf("Start with at least %s of capital", output.FormatMoneyWhole(v.Ceil(), currency)))
		case OptimizeAvgYearlyReturns:
			recs = append(recs, fmt.Sprintf("Earn average yearly returns of at least %s", output.FormatPercentage(v)))
		case OptimizeWithdrawalRate:
			recs = append(recs, fmt.Sprintf("Plan on a withdrawal rate of at least %s", output.FormatPercentage(v)))
		case OptimizeSpendingScale:
			recs = append(recs, fmt.Sprintf("Keep spendings at or below %s of the plan", output.FormatPercentage(v.Shift(2))))
		case OptimizeIncomeTarget:
			recs = append(recs, fmt.Sprintf("Aim for a retirement income of at most %s", output.FormatMoneyWhole(v.Floor(), currency)))
		}
	}
	return recs
}
