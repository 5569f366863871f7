package transform

import (
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

var minusHundred = decimal.NewFromInt(-100)

// SetReturns replaces the average yearly return assumption (percent).
type SetReturns struct {
	Rate decimal.Decimal
}

func (sr *SetReturns) Name() string { return "set_returns" }

func (sr *SetReturns) Description() string {
	return fmt.Sprintf("Set average yearly returns to %s%%", sr.Rate.StringFixed(1))
}

func (sr *SetReturns) Validate(base *domain.Configuration) error {
	if sr.Rate.LessThanOrEqual(minusHundred) {
		return NewTransformError(sr.Name(), "validate", fmt.Sprintf("rate must be greater than -100, got %s", sr.Rate), nil)
	}
	return requireBase(sr.Name(), base)
}

func (sr *SetReturns) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.AvgYearlyReturns = sr.Rate
	return modified, nil
}

// AdjustReturns shifts the average yearly return by Delta percentage points.
type AdjustReturns struct {
	Delta decimal.Decimal
}

func (ar *AdjustReturns) Name() string { return "adjust_returns" }

func (ar *AdjustReturns) Description() string {
	return fmt.Sprintf("Adjust average yearly returns by %s points", ar.Delta.StringFixed(1))
}

func (ar *AdjustReturns) Validate(base *domain.Configuration) error {
	if err := requireBase(ar.Name(), base); err != nil {
		return err
	}
	if base.AvgYearlyReturns.Add(ar.Delta).LessThanOrEqual(minusHundred) {
		return NewTransformError(ar.Name(), "validate", "adjusted rate must be greater than -100", nil)
	}
	return nil
}

func (ar *AdjustReturns) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.AvgYearlyReturns = base.AvgYearlyReturns.Add(ar.Delta)
	return modified, nil
}

// SetWithdrawalRate replaces the safe withdrawal rate (percent).
type SetWithdrawalRate struct {
	Rate decimal.Decimal
}

func (sw *SetWithdrawalRate) Name() string { return "set_withdrawal_rate" }

func (sw *SetWithdrawalRate) Description() string {
	return fmt.Sprintf("Set withdrawal rate to %s%%", sw.Rate.StringFixed(2))
}

func (sw *SetWithdrawalRate) Validate(base *domain.Configuration) error {
	if sw.Rate.IsNegative() {
		return NewTransformError(sw.Name(), "validate", fmt.Sprintf("rate must be non-negative, got %s", sw.Rate), nil)
	}
	return requireBase(sw.Name(), base)
}

func (sw *SetWithdrawalRate) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.WithdrawalRate = sw.Rate
	return modified, nil
}

// SetIncomeTarget replaces the yearly retirement income target.
type SetIncomeTarget struct {
	Target decimal.Decimal
}

func (st *SetIncomeTarget) Name() string { return "set_income_target" }

func (st *SetIncomeTarget) Description() string {
	return fmt.Sprintf("Set retirement income target to %s", st.Target.StringFixed(0))
}

func (st *SetIncomeTarget) Validate(base *domain.Configuration) error {
	if st.Target.IsNegative() {
		return NewTransformError(st.Name(), "validate", fmt.Sprintf("target must be non-negative, got %s", st.Target), nil)
	}
	return requireBase(st.Name(), base)
}

func (st *SetIncomeTarget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.RetirementIncomeTarget = st.Target
	return modified, nil
}

// ScaleIncomeTarget multiplies the retirement income target by Factor.
type ScaleIncomeTarget struct {
	Factor decimal.Decimal
}

func (si *ScaleIncomeTarget) Name() string { return "scale_income_target" }

func (si *ScaleIncomeTarget) Description() string {
	return fmt.Sprintf("Scale retirement income target by %s", si.Factor.String())
}

func (si *ScaleIncomeTarget) Validate(base *domain.Configuration) error {
	if si.Factor.IsNegative() {
		return NewTransformError(si.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", si.Factor), nil)
	}
	return requireBase(si.Name(), base)
}

func (si *ScaleIncomeTarget) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.RetirementIncomeTarget = base.RetirementIncomeTarget.Mul(si.Factor)
	return modified, nil
}
