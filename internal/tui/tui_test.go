package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/domain"
)

func testConfiguration() *domain.Configuration {
	return &domain.Configuration{
		StartingYear:           2020,
		Age:                    domain.IntPtr(40),
		InitialCapital:         decimal.NewFromInt(100000),
		AvgYearlyReturns:       decimal.NewFromInt(10),
		WithdrawalRate:         decimal.NewFromInt(4),
		RetirementIncomeTarget: decimal.NewFromInt(10000),
		Currency:               "USD",
	}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("plan.yaml", calculation.NewProjectionEngine()).
		WithYears(20).
		WithLoader(func(path string) (*domain.Configuration, error) {
			return testConfiguration(), nil
		})
	return m
}

// step feeds msg to the model and runs the returned command once
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Msg) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	if cmd == nil {
		return model, nil
	}
	return model, cmd()
}

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := newTestModel(t)
	msg := m.Init()()
	require.IsType(t, ConfigLoadedMsg{}, msg)

	m, msg = step(t, m, msg)
	require.IsType(t, ProjectionMsg{}, msg)
	m, _ = step(t, m, msg)
	require.NotNil(t, m.Projection())
	return m
}

func TestModel_LoadAndProject(t *testing.T) {
	m := loadedModel(t)

	assert.False(t, m.loading)
	assert.NoError(t, m.Err())
	assert.Len(t, m.Projection().Rows, 20)
	assert.Equal(t, 2030, *m.Projection().Summary.GoalYear)
	assert.Same(t, m.baseProjection, m.projection)
	require.Len(t, m.Sliders(), 5)
	assert.True(t, m.Sliders()[0].IsFocused)

	view := m.View()
	assert.Contains(t, view, "FIPLAN")
	assert.Contains(t, view, "plan.yaml")
	assert.Contains(t, view, "Goal Year")
	assert.Contains(t, view, "2030")
}

func TestModel_LoadError(t *testing.T) {
	m := NewModel("missing.yaml", calculation.NewProjectionEngine()).
		WithLoader(func(string) (*domain.Configuration, error) {
			return nil, errors.New("open missing.yaml: no such file")
		})

	m, _ = step(t, m, m.Init()())
	assert.Error(t, m.Err())
	assert.Contains(t, m.View(), "no such file")
}

func TestModel_SliderRecalculates(t *testing.T) {
	m := loadedModel(t)

	// returns slider is focused; raising returns pulls the goal forward
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.IsType(t, ProjectionMsg{}, msg)
	assert.True(t, m.Sliders()[0].Value.Equal(decimal.RequireFromString("10.25")))

	m, _ = step(t, m, msg)
	assert.NotSame(t, m.baseProjection, m.projection)
	assert.LessOrEqual(t, *m.Projection().Summary.GoalYear, 2030)
	assert.True(t, m.Projection().Summary.FinalCapital.GreaterThan(m.baseProjection.Summary.FinalCapital))
}

func TestModel_StaleProjectionDropped(t *testing.T) {
	m := loadedModel(t)
	shown := m.Projection()

	m, first := step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, second := step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.NotEqual(t, first.(ProjectionMsg).Generation, second.(ProjectionMsg).Generation)

	m, _ = step(t, m, first)
	assert.Same(t, shown, m.Projection(), "stale result must be ignored")

	m, _ = step(t, m, second)
	assert.Same(t, second.(ProjectionMsg).Projection, m.Projection())
}

func TestModel_FocusAndReset(t *testing.T) {
	m := loadedModel(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.focused)
	assert.True(t, m.Sliders()[1].IsFocused)
	assert.False(t, m.Sliders()[0].IsFocused)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, len(m.Sliders())-1, m.focused, "focus wraps around")

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.True(t, m.Sliders()[m.focused].Value.Equal(decimal.RequireFromString("0.95")))

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	assert.True(t, m.Sliders()[m.focused].Value.Equal(decimal.NewFromInt(1)))
	assert.True(t, m.Sliders()[m.focused].IsFocused)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := loadedModel(t)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "Keyboard shortcuts")

	// parameter keys are ignored outside the dashboard
	m, msg := step(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Nil(t, msg)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneDashboard, m.currentScene)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_WindowResize(t *testing.T) {
	m := loadedModel(t)
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.width)
	assert.Equal(t, 4, m.table.Height)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 10, m.table.Offset)
}

func TestGoalTrend(t *testing.T) {
	_, _, ok := goalTrend(nil, nil)
	assert.False(t, ok)

	change, better, ok := goalTrend(domain.IntPtr(2030), domain.IntPtr(2028))
	assert.True(t, ok)
	assert.True(t, better)
	assert.Equal(t, "2 years earlier", change)

	change, better, _ = goalTrend(domain.IntPtr(2030), nil)
	assert.False(t, better)
	assert.Equal(t, "no longer reached", change)
}
