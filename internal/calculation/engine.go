package calculation

import (
	"context"
	"errors"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// RowsToShow is the default projection horizon in years
const RowsToShow = 70

var hundred = decimal.NewFromInt(100)

// ProjectionEngine folds a configuration into a year-by-year projection
type ProjectionEngine struct {
	Logger Logger
	Debug  bool // Enable per-year debug logging
}

// NewProjectionEngine creates a new projection engine
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Logger: NopLogger{},
	}
}

// SetLogger sets the logger, a nil logger disables logging
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	pe.Logger = l
}

func (pe *ProjectionEngine) logger() Logger {
	if pe.Logger == nil {
		return NopLogger{}
	}
	return pe.Logger
}

// Project runs the projection over horizon years starting at cfg.StartingYear.
// Configuration problems are returned as *domain.ConfigurationError before any
// row is computed. Malformed cash flows are reported as diagnostics and
// contribute nothing.
func (pe *ProjectionEngine) Project(ctx context.Context, cfg *domain.Configuration, horizon int) (*domain.Projection, error) {
	if cfg == nil {
		return nil, domain.NewConfigurationError("", "configuration is required")
	}
	if horizon < 0 {
		return nil, domain.NewConfigurationError("horizon", "must not be negative")
	}

	log := pe.logger()
	incomes, spendings, diagnostics := ValidateCashFlows(cfg)
	for _, d := range diagnostics {
		log.Warnf("%s", d.String())
	}

	withdrawalRate := cfg.WithdrawalRate.Div(hundred)
	returnRate := cfg.AvgYearlyReturns.Div(hundred)

	rows := make([]domain.Row, 0, horizon)
	for i := 0; i < horizon; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		year := cfg.StartingYear + i

		var age *int
		if cfg.Age != nil {
			age = domain.IntPtr(*cfg.Age + i)
		}

		startOfYearCapital := cfg.InitialCapital
		if i > 0 {
			startOfYearCapital = rows[i-1].TotalCapital
		}

		// The goal flag of this year gates this year's cash flows.
		retirementWithdrawal := startOfYearCapital.Mul(withdrawalRate)
		goalReached := retirementWithdrawal.GreaterThanOrEqual(cfg.RetirementIncomeTarget)

		income := EvaluateCashFlows(year, age, goalReached, incomes)
		spent := EvaluateCashFlows(year, age, goalReached, spendings)
		savings := income.Sub(spent)

		capitalBeforeReturns := startOfYearCapital.Add(savings)
		returns := capitalBeforeReturns.Mul(returnRate)
		totalCapital := capitalBeforeReturns.Add(returns)

		row := domain.Row{
			Year:                 year,
			Age:                  age,
			StartOfYearCapital:   startOfYearCapital,
			Income:               income,
			Spendings:            spent,
			Savings:              savings,
			CapitalBeforeReturns: capitalBeforeReturns,
			Returns:              returns,
			TotalCapital:         totalCapital,
			RetirementWithdrawal: retirementWithdrawal,
			GoalReached:          goalReached,
		}
		rows = append(rows, row)

		if pe.Debug {
			log.Debugf("year %d: start=%s income=%s spendings=%s returns=%s end=%s withdrawal=%s goal=%t",
				year, startOfYearCapital.StringFixed(2), income.StringFixed(2), spent.StringFixed(2),
				returns.StringFixed(2), totalCapital.StringFixed(2), retirementWithdrawal.StringFixed(2), goalReached)
		}
	}

	projection := &domain.Projection{
		Currency:    cfg.DisplayCurrency(),
		ShowAge:     cfg.HasAge(),
		Rows:        rows,
		Diagnostics: diagnostics,
	}
	projection.Summary = Summarize(cfg, rows, len(diagnostics))

	if goal := projection.Summary.GoalYear; goal != nil {
		log.Infof("retirement goal first reached in %d", *goal)
	} else {
		log.Infof("retirement goal not reached within %d years", horizon)
	}
	return projection, nil
}

// Project runs a projection with a default engine
func Project(cfg *domain.Configuration, horizon int) (*domain.Projection, error) {
	return NewProjectionEngine().Project(context.Background(), cfg, horizon)
}

// ValidateCashFlows splits the configured flows into usable incomes and
// spendings, and one diagnostic per rejected flow.
func ValidateCashFlows(cfg *domain.Configuration) ([]domain.CashFlow, []domain.CashFlow, []domain.Diagnostic) {
	var diagnostics []domain.Diagnostic
	filter := func(list string, flows []domain.CashFlow) []domain.CashFlow {
		valid := make([]domain.CashFlow, 0, len(flows))
		for i, cf := range flows {
			err := cf.Validate()
			if err == nil {
				valid = append(valid, cf)
				continue
			}
			d := domain.Diagnostic{
				Level:   domain.LevelWarning,
				List:    list,
				Index:   i,
				ID:      cf.ID,
				Name:    cf.Name,
				Message: err.Error(),
			}
			var cfErr *domain.CashFlowValidationError
			if errors.As(err, &cfErr) {
				d.Code = cfErr.Code
				d.Message = cfErr.Reason
			}
			diagnostics = append(diagnostics, d)
		}
		return valid
	}

	incomes := filter(domain.ListIncomes, cfg.Incomes)
	spendings := filter(domain.ListSpendings, cfg.Spendings)
	return incomes, spendings, diagnostics
}
