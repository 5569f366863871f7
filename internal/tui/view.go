package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiplan/internal/domain"
	"github.com/rgehrsitz/fiplan/internal/output"
	"github.com/rgehrsitz/fiplan/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.base == nil && m.err != nil:
		content = m.renderError()
	case m.base == nil:
		content = m.renderLoading()
	case m.currentScene == SceneHelp:
		content = m.renderHelp()
	default:
		content = m.renderDashboard()
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar and status bar
func (m Model) renderApp(content string) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		content,
		m.renderStatusBar(),
	)
}

// renderTitleBar renders the application title and the configuration name
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("FIPLAN - Retirement Projection")

	sub := m.currentScene.String()
	if m.configPath != "" {
		sub = fmt.Sprintf("%s / %s", sub, m.configPath)
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(sub))
}

// renderStatusBar renders the key hints
func (m Model) renderStatusBar() string {
	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, StatusKeyStyle.Render(h.Key)+" "+h.Desc)
	}
	status := strings.Join(hints, "  ")
	if m.loading {
		status = "calculating...  " + status
	}
	return StatusBarStyle.Render(status)
}

func (m Model) renderLoading() string {
	return InfoStyle.Render(fmt.Sprintf("Loading %s...", m.configPath))
}

func (m Model) renderError() string {
	return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
}

// renderDashboard renders metrics, sliders and the projection table
func (m Model) renderDashboard() string {
	parts := []string{m.renderMetrics(), ""}

	for _, s := range m.sliders {
		parts = append(parts, s.Render())
	}
	parts = append(parts, "")

	if m.err != nil {
		parts = append(parts, m.renderError())
	}
	if m.projection != nil {
		if n := len(m.projection.Diagnostics); n > 0 {
			parts = append(parts, InfoStyle.Render(fmt.Sprintf("%d cash flow diagnostic(s); run validate for details", n)))
		}
	}
	parts = append(parts, BorderStyle.Render(m.table.Render()))
	if m.projection != nil && m.projection.Summary.GoalYear != nil {
		if row, ok := m.projection.RowForYear(*m.projection.Summary.GoalYear); ok {
			parts = append(parts, SubtitleStyle.Render("Goal "+renderRowDetail(*row, m.base.DisplayCurrency())))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderMetrics renders the summary cards with trends against the loaded plan
func (m Model) renderMetrics() string {
	if m.projection == nil {
		return InfoStyle.Render("Projecting...")
	}
	currency := m.base.DisplayCurrency()
	sum := m.projection.Summary

	goal := components.NewMetricCard("Goal Year", output.FormatYear(sum.GoalYear))
	final := components.NewMetricCard("Final Capital", FormatCurrency(sum.FinalCapital, currency))
	peak := components.NewMetricCard("Peak Capital", FormatCurrency(sum.PeakCapital, currency))
	returns := components.NewMetricCard("Total Returns", FormatCurrency(sum.TotalReturns, currency))

	if m.baseProjection != nil && m.baseProjection != m.projection {
		baseSum := m.baseProjection.Summary
		if change, better, ok := goalTrend(baseSum.GoalYear, sum.GoalYear); ok {
			goal.WithTrend(better, change)
		}
		withMoneyTrend(final, baseSum.FinalCapital, sum.FinalCapital, currency)
		withMoneyTrend(peak, baseSum.PeakCapital, sum.PeakCapital, currency)
		withMoneyTrend(returns, baseSum.TotalReturns, sum.TotalReturns, currency)
	}

	cards := []*components.MetricCard{goal, final, peak, returns}
	if sum.DepletionYear != nil {
		cards = append(cards, components.NewMetricCard("Depleted", fmt.Sprintf("%d", *sum.DepletionYear)).WithTrend(false, ""))
	}
	return components.MetricRow(cards...)
}

// goalTrend compares goal years. An earlier goal is better.
func goalTrend(base, current *int) (string, bool, bool) {
	switch {
	case base == nil && current == nil:
		return "", false, false
	case base == nil:
		return "now reached", true, true
	case current == nil:
		return "no longer reached", false, true
	case *base == *current:
		return "", false, false
	}
	diff := *current - *base
	if diff < 0 {
		return fmt.Sprintf("%d years earlier", -diff), true, true
	}
	return fmt.Sprintf("%d years later", diff), false, true
}

func withMoneyTrend(card *components.MetricCard, base, current decimal.Decimal, currency string) {
	diff := current.Sub(base)
	if diff.IsZero() {
		return
	}
	sign := ""
	if diff.IsPositive() {
		sign = "+"
	}
	card.WithTrend(diff.IsPositive(), sign+output.FormatMoneyWhole(diff, currency))
}

// renderHelp renders all key bindings and a short description of the model
func (m Model) renderHelp() string {
	var sb strings.Builder
	sb.WriteString(TitleStyle.Render("Keyboard shortcuts"))
	sb.WriteString("\n\n")
	for _, b := range []struct {
		keys string
		desc string
	}{
		{m.keys.Up.Help().Key + " / " + m.keys.Down.Help().Key, "select parameter"},
		{m.keys.Decrease.Help().Key + " / " + m.keys.Increase.Help().Key, "change the selected parameter"},
		{m.keys.Reset.Help().Key, "reset parameters to the loaded configuration"},
		{m.keys.ScrollUp.Help().Key + " / " + m.keys.ScrollDown.Help().Key, "scroll the projection table"},
		{m.keys.GoalRow.Help().Key, "scroll to the first year the goal is reached"},
		{m.keys.Help.Help().Key, "toggle this help"},
		{m.keys.Back.Help().Key, "back to the dashboard"},
		{m.keys.Quit.Help().Key, "quit"},
	} {
		sb.WriteString(fmt.Sprintf("  %-14s %s\n", StatusKeyStyle.Render(b.keys), b.desc))
	}
	sb.WriteString("\n")
	sb.WriteString(InfoStyle.Render(
		"Each year adds income, subtracts spendings, then credits returns.\n" +
			"The goal is reached when the withdrawal rate of the start of year\n" +
			"capital covers the retirement income target."))
	return sb.String()
}

// renderRowDetail renders one projection row as a single line
func renderRowDetail(row domain.Row, currency string) string {
	return fmt.Sprintf("%d: capital %s, savings %s, returns %s",
		row.Year,
		output.FormatMoneyWhole(row.TotalCapital, currency),
		output.FormatMoneyWhole(row.Savings, currency),
		output.FormatMoneyWhole(row.Returns, currency))
}
