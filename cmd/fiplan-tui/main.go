package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fiplan/internal/calculation"
	"github.com/rgehrsitz/fiplan/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: fiplan-tui <config-file>")
		os.Exit(1)
	}
	configPath := os.Args[1]

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		fmt.Printf("Error: Config file not found: %s\n", configPath)
		os.Exit(1)
	}

	model := tui.NewModel(configPath, calculation.NewProjectionEngine())

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
