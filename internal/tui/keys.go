package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the dashboard
type KeyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Back       key.Binding
	Up         key.Binding
	Down       key.Binding
	Decrease   key.Binding
	Increase   key.Binding
	Reset      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	GoalRow    key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous parameter")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next parameter")),
		Decrease:   key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←/h", "decrease")),
		Increase:   key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→/l", "increase")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup", "K"), key.WithHelp("pgup", "scroll up")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown", "J"), key.WithHelp("pgdn", "scroll down")),
		GoalRow:    key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "jump to goal")),
	}
}

// ShortHelp lists the bindings shown in the status bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Decrease, k.Increase, k.ScrollDown, k.GoalRow, k.Reset, k.Help, k.Quit}
}
