package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.Height = max(3, msg.Height-tableChrome)
		m.table.ScrollBy(0)
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.base = msg.Config
		m.buildSliders()
		m.generation++
		m.loading = true
		return m, projectCmd(m.engine, m.base, m.years, m.generation)

	case ProjectionMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		if m.baseProjection == nil {
			m.baseProjection = msg.Projection
		}
		m.projection = msg.Projection
		m.table.SetProjection(msg.Projection)
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.currentScene == SceneHelp {
			m.currentScene = m.previousScene
		} else {
			m.previousScene = m.currentScene
			m.currentScene = SceneHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.currentScene = SceneDashboard
		return m, nil
	}

	if m.currentScene != SceneDashboard || m.base == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Decrease):
		if m.sliders[m.focused].Decrement() {
			return m, m.recalculate()
		}
	case key.Matches(msg, m.keys.Increase):
		if m.sliders[m.focused].Increment() {
			return m, m.recalculate()
		}
	case key.Matches(msg, m.keys.Reset):
		m.buildSliders()
		return m, m.recalculate()
	case key.Matches(msg, m.keys.ScrollUp):
		m.table.ScrollBy(-m.table.Height)
	case key.Matches(msg, m.keys.ScrollDown):
		m.table.ScrollBy(m.table.Height)
	case key.Matches(msg, m.keys.GoalRow):
		m.table.ScrollToGoal()
	}
	return m, nil
}

// moveFocus moves the slider focus by delta, wrapping around
func (m *Model) moveFocus(delta int) {
	if len(m.sliders) == 0 {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = (m.focused + delta + len(m.sliders)) % len(m.sliders)
	m.sliders[m.focused].SetFocused(true)
}
