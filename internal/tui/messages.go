package tui

import (
	"github.com/rgehrsitz/fiplan/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneDashboard Scene = iota
	SceneHelp
)

func (s Scene) String() string {
	switch s {
	case SceneDashboard:
		return "Dashboard"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// ProjectionMsg carries a finished projection. Generation identifies the
// slider state it was computed for so stale results can be dropped.
type ProjectionMsg struct {
	Generation int
	Projection *domain.Projection
	Err        error
}
