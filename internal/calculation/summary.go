package calculation

import (
	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/shopspring/decimal"
)

// Summarize derives the key metrics of a list of projected rows
func Summarize(cfg *domain.Configuration, rows []domain.Row, invalidFlows int) domain.ProjectionSummary {
	summary := domain.ProjectionSummary{
		Horizon:        len(rows),
		FirstYear:      cfg.StartingYear,
		LastYear:       cfg.StartingYear + len(rows) - 1,
		InvalidFlows:   invalidFlows,
		InitialCapital: cfg.InitialCapital,
		FinalCapital:   cfg.InitialCapital,
		PeakCapital:    cfg.InitialCapital,
		TotalIncome:    decimal.Zero,
		TotalSpendings: decimal.Zero,
		TotalReturns:   decimal.Zero,
	}
	if len(rows) == 0 {
		summary.LastYear = cfg.StartingYear
		return summary
	}

	for i := range rows {
		row := &rows[i]
		summary.TotalIncome = summary.TotalIncome.Add(row.Income)
		summary.TotalSpendings = summary.TotalSpendings.Add(row.Spendings)
		summary.TotalReturns = summary.TotalReturns.Add(row.Returns)
		if row.TotalCapital.GreaterThan(summary.PeakCapital) {
			summary.PeakCapital = row.TotalCapital
		}

		if row.GoalReached {
			summary.GoalRows++
			if summary.GoalYear == nil {
				summary.GoalYear = domain.IntPtr(row.Year)
				summary.YearsToGoal = domain.IntPtr(i)
				if row.Age != nil {
					summary.GoalAge = domain.IntPtr(*row.Age)
				}
			}
		} else if summary.GoalYear != nil {
			summary.GoalLost = true
		}

		if summary.DepletionYear == nil && row.IsDepleted() {
			summary.DepletionYear = domain.IntPtr(row.Year)
		}
	}

	summary.FinalCapital = rows[len(rows)-1].TotalCapital
	return summary
}
