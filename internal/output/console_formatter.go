package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

var (
	consoleTitleStyle  = lipgloss.NewStyle().Bold(true)
	consoleHeaderStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	consoleCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	consoleGoalStyle   = consoleCellStyle.Foreground(lipgloss.Color("42")).Bold(true)
	consoleWarnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

// ConsoleFormatter renders the summary and the yearly table for a terminal.
// Rows where the goal is reached are highlighted.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(projection *domain.Projection) ([]byte, error) {
	v := newReportView(projection)

	var buf bytes.Buffer
	title := "RETIREMENT PROJECTION"
	if v.Name != "" {
		title += ": " + strings.ToUpper(v.Name)
	}
	fmt.Fprintln(&buf, consoleTitleStyle.Render(title))
	fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
	for _, line := range v.Summary {
		fmt.Fprintf(&buf, "%-20s %s\n", line.Label+":", line.Value)
	}
	fmt.Fprintln(&buf)

	rows := make([][]string, 0, len(v.Rows))
	for i := range v.Rows {
		rows = append(rows, v.cells(&v.Rows[i]))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(v.headers()...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return consoleHeaderStyle
			}
			style := consoleCellStyle
			if row >= 0 && row < len(v.Rows) && v.Rows[row].GoalReached {
				style = consoleGoalStyle
			}
			if col > 0 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})
	fmt.Fprintln(&buf, t.String())

	if len(v.Diagnostics) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, consoleWarnStyle.Render("IGNORED CASH FLOWS"))
		for _, d := range v.Diagnostics {
			fmt.Fprintf(&buf, "  %s\n", d)
		}
	}
	return buf.Bytes(), nil
}
