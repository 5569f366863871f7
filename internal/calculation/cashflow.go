package calculation

import (
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// EvaluateCashFlows returns the total contributed by flows in year.
// age is nil when the configuration has no age; flows gated on age are then
// inert. Invalid flows contribute nothing.
func EvaluateCashFlows(year int, age *int, goalReached bool, flows []domain.CashFlow) decimal.Decimal {
	total := decimal.Zero
	for _, cf := range flows {
		amount, err := CashFlowContribution(year, age, goalReached, cf)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total
}

// CashFlowContribution returns the amount a single flow contributes in year
func CashFlowContribution(year int, age *int, goalReached bool, cf domain.CashFlow) (decimal.Decimal, error) {
	if err := cf.Validate(); err != nil {
		return decimal.Zero, err
	}

	if !cf.Recurring {
		if year == *cf.FixedYear {
			return cf.Amount, nil
		}
		return decimal.Zero, nil
	}

	opts := cf.RecurringOptions
	if age == nil && isAgeGated(opts) {
		return decimal.Zero, nil
	}
	started, err := hasStarted(opts, year, age, goalReached)
	if err != nil {
		return decimal.Zero, err
	}
	expired, err := hasExpired(opts, year, age, goalReached)
	if err != nil {
		return decimal.Zero, err
	}
	if !started || expired {
		return decimal.Zero, nil
	}
	return annualize(cf.Amount, opts)
}

// isAgeGated reports whether either bound of the flow depends on the age
func isAgeGated(opts *domain.RecurringOptions) bool {
	return opts.StartingType == domain.StartAge || opts.UntilType == domain.UntilAge
}

func hasStarted(opts *domain.RecurringOptions, year int, age *int, goalReached bool) (bool, error) {
	switch opts.StartingType {
	case domain.StartNow:
		return true, nil
	case domain.StartGoal:
		return goalReached, nil
	case domain.StartAge:
		return age != nil && *age >= *opts.StartingValue, nil
	case domain.StartYear:
		return year >= *opts.StartingValue, nil
	default:
		return false, fmt.Errorf("unknown starting type %q", opts.StartingType)
	}
}

func hasExpired(opts *domain.RecurringOptions, year int, age *int, goalReached bool) (bool, error) {
	switch opts.UntilType {
	case domain.UntilForever:
		return false, nil
	case domain.UntilGoal:
		return goalReached, nil
	case domain.UntilAge:
		return age != nil && *age > *opts.UntilValue, nil
	case domain.UntilYear:
		return year > *opts.UntilValue, nil
	default:
		return false, fmt.Errorf("unknown until type %q", opts.UntilType)
	}
}

// annualize converts a per-occurrence amount into its yearly equivalent
func annualize(amount decimal.Decimal, opts *domain.RecurringOptions) (decimal.Decimal, error) {
	periods, ok := opts.FrequencyScope.PeriodsPerYear()
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown frequency scope %q", opts.FrequencyScope)
	}
	if opts.Frequency <= 0 {
		return decimal.Zero, fmt.Errorf("frequency must be positive, got %d", opts.Frequency)
	}
	return amount.Mul(decimal.NewFromInt(periods)).Div(decimal.NewFromInt(int64(opts.Frequency))), nil
}
