// Package tui renders the media wall in the terminal. The grid engine
// does the real work; this package maps bubbletea messages onto it and
// composites the masonry cells each frame.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"mediawall/pkg/config"
	"mediawall/pkg/logger"
)

// TUI represents the terminal user interface
type TUI struct {
	program *tea.Program
	model   *Model
}

// NewTUI creates a wall TUI over the given catalog fetcher.
func NewTUI(cfg *config.Config, fetcher LibraryFetcher, log logger.Logger) *TUI {
	model := NewModel(cfg, fetcher, log)
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	return &TUI{program: program, model: model}
}

// Start runs the TUI until the viewer quits.
func (t *TUI) Start() error {
	_, err := t.program.Run()
	return err
}

// Stop stops the TUI gracefully
func (t *TUI) Stop() {
	t.program.Quit()
}
