package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/fiplan/internal/tui/tuistyles"
)

// ParameterSlider displays an adjustable configuration parameter
type ParameterSlider struct {
	Param       string // parameter name understood by calculation.ApplyParameter
	Label       string
	Value       decimal.Decimal
	Min         decimal.Decimal
	Max         decimal.Decimal
	Step        decimal.Decimal
	Format      func(decimal.Decimal) string
	Width       int
	IsFocused   bool
	Description string
}

// NewParameterSlider creates a new parameter slider; value is clamped to [min, max]
func NewParameterSlider(param, label string, value, min, max, step decimal.Decimal) *ParameterSlider {
	p := &ParameterSlider{
		Param:  param,
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: func(d decimal.Decimal) string { return d.String() },
		Width:  30,
	}
	p.SetValue(value)
	return p
}

// WithFormat sets the value renderer
func (p *ParameterSlider) WithFormat(format func(decimal.Decimal) string) *ParameterSlider {
	p.Format = format
	return p
}

// WithWidth sets the slider width
func (p *ParameterSlider) WithWidth(width int) *ParameterSlider {
	p.Width = width
	return p
}

// WithDescription adds a help line
func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

// SetFocused sets the focus state
func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment increases the value by step, stopping at Max
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value.Add(p.Step))
}

// Decrement decreases the value by step, stopping at Min
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value.Sub(p.Step))
}

// SetValue clamps value to [Min, Max] and reports whether it changed
func (p *ParameterSlider) SetValue(value decimal.Decimal) bool {
	clamped := decimal.Max(p.Min, decimal.Min(p.Max, value))
	changed := !clamped.Equal(p.Value)
	p.Value = clamped
	return changed
}

// Fraction returns the position of the value within the range, in [0, 1]
func (p *ParameterSlider) Fraction() float64 {
	span := p.Max.Sub(p.Min)
	if !span.IsPositive() {
		return 0
	}
	return p.Value.Sub(p.Min).Div(span).InexactFloat64()
}

// Render returns the label, value and bar on one line
func (p *ParameterSlider) Render() string {
	labelStyle := tuistyles.ParameterLabelStyle
	valueStyle := tuistyles.ParameterValueStyle
	marker := "  "
	if p.IsFocused {
		labelStyle = labelStyle.Foreground(tuistyles.ColorPrimary).Bold(true)
		valueStyle = valueStyle.Foreground(tuistyles.ColorAccent)
		marker = "▸ "
	}

	line := marker +
		labelStyle.Width(24).Render(p.Label) +
		valueStyle.Width(14).Render(p.Format(p.Value)) +
		p.renderBar()

	if p.IsFocused && p.Description != "" {
		desc := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true)
		line += "\n  " + desc.Render(p.Description)
	}
	return line
}

// renderBar draws the track with the thumb at the value position
func (p *ParameterSlider) renderBar() string {
	if p.Width < 1 {
		return ""
	}
	pos := int(p.Fraction()*float64(p.Width-1) + 0.5)

	thumbStyle := tuistyles.SliderThumbStyle
	if p.IsFocused {
		thumbStyle = thumbStyle.Foreground(tuistyles.ColorAccent)
	}

	var bar strings.Builder
	bar.WriteString("[")
	if pos > 0 {
		bar.WriteString(thumbStyle.Render(strings.Repeat("━", pos)))
	}
	bar.WriteString(thumbStyle.Render("●"))
	if rest := p.Width - pos - 1; rest > 0 {
		bar.WriteString(tuistyles.SliderTrackStyle.Render(strings.Repeat("─", rest)))
	}
	bar.WriteString("]")
	return bar.String()
}
