package components

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/tui/tuistyles"
)

// ProjectionTable renders a scrollable window of projection rows
type ProjectionTable struct {
	Projection *domain.Projection
	Offset     int // index of the first visible row
	Height     int // visible rows
}

// NewProjectionTable creates a table showing height rows
func NewProjectionTable(height int) *ProjectionTable {
	return &ProjectionTable{Height: height}
}

// SetProjection replaces the rows, keeping the scroll position when possible
func (t *ProjectionTable) SetProjection(p *domain.Projection) {
	t.Projection = p
	t.ScrollBy(0)
}

// ScrollBy moves the window by delta rows, clamped to the available rows
func (t *ProjectionTable) ScrollBy(delta int) {
	t.Offset += delta
	if maxOffset := t.rowCount() - t.Height; t.Offset > maxOffset {
		t.Offset = maxOffset
	}
	if t.Offset < 0 {
		t.Offset = 0
	}
}

// ScrollToGoal moves the window so the first goal year is the first visible row
func (t *ProjectionTable) ScrollToGoal() bool {
	if t.Projection == nil || t.Projection.Summary.GoalYear == nil {
		return false
	}
	t.Offset = *t.Projection.Summary.GoalYear - t.Projection.Summary.FirstYear
	t.ScrollBy(0)
	return true
}

func (t *ProjectionTable) rowCount() int {
	if t.Projection == nil {
		return 0
	}
	return len(t.Projection.Rows)
}

// Visible returns the rows currently in the window
func (t *ProjectionTable) Visible() []domain.Row {
	n := t.rowCount()
	if n == 0 {
		return nil
	}
	end := t.Offset + t.Height
	if end > n || t.Height <= 0 {
		end = n
	}
	return t.Projection.Rows[t.Offset:end]
}

// Render returns the table with goal rows highlighted and depleted rows flagged
func (t *ProjectionTable) Render() string {
	if t.rowCount() == 0 {
		return tuistyles.InfoStyle.Render("No projection rows")
	}

	p := t.Projection
	visible := t.Visible()
	currency := p.Currency

	headers := []string{"Year"}
	if p.ShowAge {
		headers = append(headers, "Age")
	}
	headers = append(headers, "Start capital", "Income", "Spendings", "Savings", "Returns", "End capital", "Withdrawal")

	rows := make([][]string, 0, len(visible))
	for _, r := range visible {
		cells := []string{strconv.Itoa(r.Year)}
		if p.ShowAge {
			age := ""
			if r.Age != nil {
				age = strconv.Itoa(*r.Age)
			}
			cells = append(cells, age)
		}
		cells = append(cells,
			tuistyles.FormatCurrency(r.StartOfYearCapital, currency),
			tuistyles.FormatCurrency(r.Income, currency),
			tuistyles.FormatCurrency(r.Spendings, currency),
			tuistyles.FormatCurrency(r.Savings, currency),
			tuistyles.FormatCurrency(r.Returns, currency),
			tuistyles.FormatCurrency(r.TotalCapital, currency),
			tuistyles.FormatCurrency(r.RetirementWithdrawal, currency),
		)
		rows = append(rows, cells)
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tuistyles.TableHeaderStyle
			}
			style := tuistyles.TableCellStyle
			if row >= 0 && row < len(visible) {
				switch {
				case visible[row].IsDepleted():
					style = tuistyles.TableDepletedStyle
				case visible[row].GoalReached:
					style = tuistyles.TableHighlightStyle
				}
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		}).
		String()
}
