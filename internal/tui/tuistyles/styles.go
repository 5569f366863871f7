// Package tuistyles holds the colors and styles shared by the TUI and its components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiplan/internal/output"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F4A261")
	ColorSuccess   = lipgloss.Color("#2A9D8F")
	ColorDanger    = lipgloss.Color("#E63946")
	ColorInfo      = lipgloss.Color("#457B9D")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#8D8D8D")
	ColorBorder     = lipgloss.Color("#444444")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorMuted)

	MetricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorForeground)

	ParameterLabelStyle = lipgloss.NewStyle().
				Foreground(ColorForeground)

	ParameterValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorSecondary)

	SliderTrackStyle = lipgloss.NewStyle().
				Foreground(ColorBorder)

	SliderThumbStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess).
				Bold(true).
				Padding(0, 1)

	TableDepletedStyle = lipgloss.NewStyle().
				Foreground(ColorDanger).
				Padding(0, 1)
)

// MetricTrendStyle colors a trend green when it is good news
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	}
	return lipgloss.NewStyle().Foreground(ColorDanger)
}

// TrendIndicator returns an arrow for a trend
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "▲"
	}
	return "▼"
}

// FormatCurrency renders whole units in the given currency
func FormatCurrency(amount decimal.Decimal, currency string) string {
	return output.FormatMoneyWhole(amount, currency)
}
