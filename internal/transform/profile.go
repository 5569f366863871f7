package transform

import (
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// SetInitialCapital replaces the capital held at the start of the first year.
type SetInitialCapital struct {
	Amount decimal.Decimal
}

func (sc *SetInitialCapital) Name() string { return "set_initial_capital" }

func (sc *SetInitialCapital) Description() string {
	return fmt.Sprintf("Set initial capital to %s", sc.Amount.StringFixed(0))
}

func (sc *SetInitialCapital) Validate(base *domain.Configuration) error {
	return requireBase(sc.Name(), base)
}

func (sc *SetInitialCapital) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.InitialCapital = sc.Amount
	return modified, nil
}

// SetAge sets the age in the starting year. A nil Age removes it, which
// makes age based cash flow rules inert.
type SetAge struct {
	Age *int
}

func (sa *SetAge) Name() string { return "set_age" }

func (sa *SetAge) Description() string {
	if sa.Age == nil {
		return "Remove age"
	}
	return fmt.Sprintf("Set age to %d", *sa.Age)
}

func (sa *SetAge) Validate(base *domain.Configuration) error {
	if sa.Age != nil && *sa.Age < 0 {
		return NewTransformError(sa.Name(), "validate", fmt.Sprintf("age must be non-negative, got %d", *sa.Age), nil)
	}
	return requireBase(sa.Name(), base)
}

func (sa *SetAge) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.Age = nil
	if sa.Age != nil {
		modified.Age = domain.IntPtr(*sa.Age)
	}
	return modified, nil
}

// SetStartingYear moves the first simulated year. Year and age bounds of
// cash flows are absolute and do not move with it.
type SetStartingYear struct {
	Year int
}

func (sy *SetStartingYear) Name() string { return "set_starting_year" }

func (sy *SetStartingYear) Description() string {
	return fmt.Sprintf("Start the projection in %d", sy.Year)
}

func (sy *SetStartingYear) Validate(base *domain.Configuration) error {
	if sy.Year <= 0 {
		return NewTransformError(sy.Name(), "validate", fmt.Sprintf("year must be positive, got %d", sy.Year), nil)
	}
	return requireBase(sy.Name(), base)
}

func (sy *SetStartingYear) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.StartingYear = sy.Year
	return modified, nil
}
