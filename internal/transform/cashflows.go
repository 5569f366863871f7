package transform

import (
	"fmt"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// ScaleCashFlows multiplies every amount of one list (incomes or spendings).
type ScaleCashFlows struct {
	List   string
	Factor decimal.Decimal
}

func (sf *ScaleCashFlows) Name() string { return "scale_" + sf.List }

func (sf *ScaleCashFlows) Description() string {
	return fmt.Sprintf("Scale all %s by %s", sf.List, sf.Factor.String())
}

func (sf *ScaleCashFlows) Validate(base *domain.Configuration) error {
	if sf.List != domain.ListIncomes && sf.List != domain.ListSpendings {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("unknown cash flow list %q", sf.List), nil)
	}
	if sf.Factor.IsNegative() {
		return NewTransformError(sf.Name(), "validate", fmt.Sprintf("factor must be non-negative, got %s", sf.Factor), nil)
	}
	return requireBase(sf.Name(), base)
}

func (sf *ScaleCashFlows) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	modified.ScaleCashFlows(sf.List, sf.Factor)
	return modified, nil
}

// RemoveCashFlow drops the flows of a list matching an id or a name.
type RemoveCashFlow struct {
	List string
	ID   string
	Flow string // name, used when ID is empty
}

func (rc *RemoveCashFlow) Name() string { return "remove_cash_flow" }

func (rc *RemoveCashFlow) Description() string {
	key := rc.ID
	if key == "" {
		key = rc.Flow
	}
	return fmt.Sprintf("Remove %s %q", rc.List, key)
}

func (rc *RemoveCashFlow) matches(cf domain.CashFlow) bool {
	if rc.ID != "" {
		return cf.ID == rc.ID
	}
	return cf.Name == rc.Flow
}

func (rc *RemoveCashFlow) Validate(base *domain.Configuration) error {
	if err := requireBase(rc.Name(), base); err != nil {
		return err
	}
	if rc.ID == "" && rc.Flow == "" {
		return NewTransformError(rc.Name(), "validate", "id or name is required", nil)
	}
	flows, ok := base.CashFlows(rc.List)
	if !ok {
		return NewTransformError(rc.Name(), "validate", fmt.Sprintf("unknown cash flow list %q", rc.List), nil)
	}
	for _, cf := range flows {
		if rc.matches(cf) {
			return nil
		}
	}
	return NewTransformError(rc.Name(), "validate", "no matching cash flow", nil)
}

func (rc *RemoveCashFlow) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	flows, _ := modified.CashFlows(rc.List)
	kept := make([]domain.CashFlow, 0, len(flows))
	for _, cf := range flows {
		if !rc.matches(cf) {
			kept = append(kept, cf)
		}
	}
	modified.SetCashFlows(rc.List, kept)
	return modified, nil
}

// AddOneTimeCashFlow appends a non-recurring flow to a list. When Year is
// zero the flow lands Offset years after the starting year.
type AddOneTimeCashFlow struct {
	List   string
	Flow   string
	Amount decimal.Decimal
	Year   int
	Offset int
}

func (ao *AddOneTimeCashFlow) Name() string { return "add_one_time" }

func (ao *AddOneTimeCashFlow) Description() string {
	when := fmt.Sprintf("in %d", ao.Year)
	if ao.Year == 0 {
		when = fmt.Sprintf("%d years after the start", ao.Offset)
	}
	return fmt.Sprintf("Add one-time %s %q of %s %s", ao.List, ao.Flow, ao.Amount.StringFixed(0), when)
}

func (ao *AddOneTimeCashFlow) Validate(base *domain.Configuration) error {
	if err := requireBase(ao.Name(), base); err != nil {
		return err
	}
	if _, ok := base.CashFlows(ao.List); !ok {
		return NewTransformError(ao.Name(), "validate", fmt.Sprintf("unknown cash flow list %q", ao.List), nil)
	}
	if ao.Year < 0 || ao.Offset < 0 {
		return NewTransformError(ao.Name(), "validate", "year and offset must be non-negative", nil)
	}
	return nil
}

func (ao *AddOneTimeCashFlow) Apply(base *domain.Configuration) (*domain.Configuration, error) {
	modified := base.DeepCopy()
	year := ao.Year
	if year == 0 {
		year = base.StartingYear + ao.Offset
	}
	flows, _ := modified.CashFlows(ao.List)
	modified.SetCashFlows(ao.List, append(flows, domain.NewOneTimeCashFlow(ao.Flow, ao.Amount, year)))
	return modified, nil
}
