package config

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

var (
	ErrUnknownList      = errors.New("unknown cash flow list")
	ErrCashFlowNotFound = errors.New("cash flow not found")
)

// CashFlowEditor edits the income and spending lists of a configuration.
// Every flow it stores carries an id; ids are generated when missing.
type CashFlowEditor struct {
	config *domain.Configuration
	NewID  func() string
}

// NewCashFlowEditor creates an editor over config using random UUIDs
func NewCashFlowEditor(config *domain.Configuration) *CashFlowEditor {
	return &CashFlowEditor{
		config: config,
		NewID:  func() string { return uuid.NewString() },
	}
}

// AssignIDs gives an id to every flow that has none and returns how many were assigned
func (e *CashFlowEditor) AssignIDs() int {
	assigned := 0
	for _, list := range []string{domain.ListIncomes, domain.ListSpendings} {
		flows, _ := e.config.CashFlows(list)
		for i := range flows {
			if flows[i].ID == "" {
				flows[i].ID = e.NewID()
				assigned++
			}
		}
	}
	return assigned
}

// List returns the flows of the named list
func (e *CashFlowEditor) List(list string) ([]domain.CashFlow, error) {
	flows, ok := e.config.CashFlows(list)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownList, list)
	}
	return flows, nil
}

// Find returns the flow with the given id
func (e *CashFlowEditor) Find(list, id string) (domain.CashFlow, error) {
	flows, err := e.List(list)
	if err != nil {
		return domain.CashFlow{}, err
	}
	if i := indexOf(flows, id); i >= 0 {
		return flows[i], nil
	}
	return domain.CashFlow{}, fmt.Errorf("%w: %s", ErrCashFlowNotFound, id)
}

// Upsert replaces the flow with the same id, or appends it when the id is
// new or empty. The stored flow is returned.
func (e *CashFlowEditor) Upsert(list string, cf domain.CashFlow) (domain.CashFlow, error) {
	flows, err := e.List(list)
	if err != nil {
		return domain.CashFlow{}, err
	}
	if cf.ID == "" {
		cf.ID = e.NewID()
	}

	if i := indexOf(flows, cf.ID); i >= 0 {
		updated := make([]domain.CashFlow, len(flows))
		copy(updated, flows)
		updated[i] = cf
		e.config.SetCashFlows(list, updated)
		return cf, nil
	}

	e.config.SetCashFlows(list, append(flows, cf))
	return cf, nil
}

// Remove deletes the flow with the given id
func (e *CashFlowEditor) Remove(list, id string) error {
	flows, err := e.List(list)
	if err != nil {
		return err
	}
	i := indexOf(flows, id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCashFlowNotFound, id)
	}

	remaining := make([]domain.CashFlow, 0, len(flows)-1)
	remaining = append(remaining, flows[:i]...)
	remaining = append(remaining, flows[i+1:]...)
	e.config.SetCashFlows(list, remaining)
	return nil
}

func indexOf(flows []domain.CashFlow, id string) int {
	if id == "" {
		return -1
	}
	for i := range flows {
		if flows[i].ID == id {
			return i
		}
	}
	return -1
}
