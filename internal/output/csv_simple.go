package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/fiplan/internal/domain"
)

// CSVFormatter exports one row per projected year with exact amounts.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(projection *domain.Projection) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Year", "Age", "StartOfYearCapital", "Income", "Spendings", "Savings", "CapitalBeforeReturns", "Returns", "TotalCapital", "RetirementWithdrawal", "GoalReached"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := range projection.Rows {
		r := &projection.Rows[i]
		row := []string{
			strconv.Itoa(r.Year),
			FormatAge(r.Age),
			r.StartOfYearCapital.StringFixed(2),
			r.Income.StringFixed(2),
			r.Spendings.StringFixed(2),
			r.Savings.StringFixed(2),
			r.CapitalBeforeReturns.StringFixed(2),
			r.Returns.StringFixed(2),
			r.TotalCapital.StringFixed(2),
			r.RetirementWithdrawal.StringFixed(2),
			strconv.FormatBool(r.GoalReached),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
