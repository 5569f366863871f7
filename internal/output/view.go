package output

import (
	"strconv"

	"github.com/rgehrsitz/fiplan/internal/domain"
)

// reportView is a projection with every value already rendered as text
type reportView struct {
	Name        string
	Currency    string
	ShowAge     bool
	Summary     []summaryLine
	Rows        []rowView
	Diagnostics []string
	Assumptions []string
}

type summaryLine struct {
	Label string
	Value string
}

type rowView struct {
	Year        string
	Age         string
	Start       string
	Income      string
	Spendings   string
	Savings     string
	Returns     string
	End         string
	Withdrawal  string
	Goal        string
	GoalReached bool
}

func newReportView(p *domain.Projection) reportView {
	cur := p.Currency
	if cur == "" {
		cur = domain.DefaultCurrency
	}

	v := reportView{
		Name:        p.Name,
		Currency:    cur,
		ShowAge:     p.ShowAge,
		Summary:     summaryLines(p, cur),
		Rows:        make([]rowView, 0, len(p.Rows)),
		Assumptions: DefaultAssumptions,
	}
	for i := range p.Rows {
		row := &p.Rows[i]
		v.Rows = append(v.Rows, rowView{
			Year:        strconv.Itoa(row.Year),
			Age:         FormatAge(row.Age),
			Start:       FormatMoneyWhole(row.StartOfYearCapital, cur),
			Income:      FormatMoneyWhole(row.Income, cur),
			Spendings:   FormatMoneyWhole(row.Spendings, cur),
			Savings:     FormatMoneyWhole(row.Savings, cur),
			Returns:     FormatMoneyWhole(row.Returns, cur),
			End:         FormatMoneyWhole(row.TotalCapital, cur),
			Withdrawal:  FormatMoneyWhole(row.RetirementWithdrawal, cur),
			Goal:        goalMark(row),
			GoalReached: row.GoalReached,
		})
	}
	for _, d := range p.Diagnostics {
		v.Diagnostics = append(v.Diagnostics, d.String())
	}
	return v
}

func summaryLines(p *domain.Projection, cur string) []summaryLine {
	s := &p.Summary
	lines := []summaryLine{
		{"Years projected", strconv.Itoa(s.Horizon) + " (" + strconv.Itoa(s.FirstYear) + " to " + strconv.Itoa(s.LastYear) + ")"},
		{"Goal first reached", FormatYear(s.GoalYear)},
	}
	if s.GoalAge != nil {
		lines = append(lines, summaryLine{"Age at goal", strconv.Itoa(*s.GoalAge)})
	}
	if s.YearsToGoal != nil {
		lines = append(lines, summaryLine{"Years to goal", strconv.Itoa(*s.YearsToGoal)})
	}
	if s.GoalLost {
		lines = append(lines, summaryLine{"Goal lost again", "yes"})
	}
	lines = append(lines,
		summaryLine{"Initial capital", FormatMoney(s.InitialCapital, cur)},
		summaryLine{"Final capital", FormatMoney(s.FinalCapital, cur)},
		summaryLine{"Peak capital", FormatMoney(s.PeakCapital, cur)},
		summaryLine{"Total income", FormatMoney(s.TotalIncome, cur)},
		summaryLine{"Total spendings", FormatMoney(s.TotalSpendings, cur)},
		summaryLine{"Total returns", FormatMoney(s.TotalReturns, cur)},
	)
	if s.DepletionYear != nil {
		lines = append(lines, summaryLine{"Capital depleted in", strconv.Itoa(*s.DepletionYear)})
	}
	if s.InvalidFlows > 0 {
		lines = append(lines, summaryLine{"Ignored cash flows", strconv.Itoa(s.InvalidFlows)})
	}
	return lines
}

// headers returns the table column titles, without Age when it is hidden
func (v *reportView) headers() []string {
	h := []string{"Year"}
	if v.ShowAge {
		h = append(h, "Age")
	}
	return append(h, "Start of year", "Income", "Spendings", "Savings", "Returns", "End of year", "Withdrawal", "Goal")
}

func (v *reportView) cells(r *rowView) []string {
	c := []string{r.Year}
	if v.ShowAge {
		c = append(c, r.Age)
	}
	return append(c, r.Start, r.Income, r.Spendings, r.Savings, r.Returns, r.End, r.Withdrawal, r.Goal)
}
