package components

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/fiplan/internal/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestParameterSlider(t *testing.T) {
	s := NewParameterSlider(domain.ParamWithdrawalRate, "Withdrawal rate", d("4"), d("1"), d("5"), d("0.5"))

	assert.True(t, s.Increment())
	assert.True(t, s.Value.Equal(d("4.5")))
	assert.True(t, s.Increment())
	assert.False(t, s.Increment(), "clamped at max")
	assert.True(t, s.Value.Equal(d("5")))
	assert.Equal(t, 1.0, s.Fraction())

	assert.True(t, s.SetValue(d("-3")))
	assert.True(t, s.Value.Equal(d("1")))
	assert.False(t, s.Decrement())
	assert.Equal(t, 0.0, s.Fraction())

	clamped := NewParameterSlider(domain.ParamInitialCapital, "Capital", d("999"), d("0"), d("100"), d("10"))
	assert.True(t, clamped.Value.Equal(d("100")))

	s.SetFocused(true).WithDescription("Share of capital withdrawn each year")
	out := s.Render()
	assert.Contains(t, out, "Withdrawal rate")
	assert.Contains(t, out, "▸")
	assert.Contains(t, out, "Share of capital withdrawn")
}

func TestMetricCard(t *testing.T) {
	out := NewMetricCard("Goal year", "2031").WithTrend(true, "2 years earlier").Render()
	assert.Contains(t, out, "Goal year")
	assert.Contains(t, out, "2031")
	assert.Contains(t, out, "▲ 2 years earlier")

	row := MetricRow(NewMetricCard("A", "1"), NewMetricCard("B", "2"))
	assert.Contains(t, row, "A")
	assert.Contains(t, row, "B")
}

func testProjection(n int) *domain.Projection {
	p := &domain.Projection{Currency: "USD"}
	for i := 0; i < n; i++ {
		p.Rows = append(p.Rows, domain.Row{
			Year:         2020 + i,
			TotalCapital: decimal.NewFromInt(int64(1000 * (i + 1))),
			GoalReached:  i >= 5,
		})
	}
	p.Summary.FirstYear = 2020
	p.Summary.GoalYear = domain.IntPtr(2025)
	return p
}

func TestProjectionTable_Scroll(t *testing.T) {
	tbl := NewProjectionTable(4)
	assert.Contains(t, tbl.Render(), "No projection rows")

	tbl.SetProjection(testProjection(10))
	assert.Len(t, tbl.Visible(), 4)
	assert.Equal(t, 2020, tbl.Visible()[0].Year)

	tbl.ScrollBy(100)
	assert.Equal(t, 6, tbl.Offset)
	assert.Equal(t, 2029, tbl.Visible()[3].Year)

	tbl.ScrollBy(-100)
	assert.Equal(t, 0, tbl.Offset)

	assert.True(t, tbl.ScrollToGoal())
	assert.Equal(t, 2025, tbl.Visible()[0].Year)

	out := tbl.Render()
	assert.Contains(t, out, "2025")
	assert.Contains(t, out, "$6,000")
	assert.NotContains(t, out, "2020")
	assert.NotContains(t, out, "Age")

	tbl.SetProjection(testProjection(2))
	assert.Equal(t, 0, tbl.Offset)
	assert.Len(t, tbl.Visible(), 2)
}
