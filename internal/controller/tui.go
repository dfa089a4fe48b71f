package controller

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/nedbat/covcode/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// Summary runs the interactive per-file coverage browser.
func (t *TUI) Summary(rows []m.FileSummary, totals m.Numbers, opts SummaryOptions) error {
	model := newSummaryModel(rows, totals, opts)

	program := tea.NewProgram(model, tea.WithOutput(t.output))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("summary ui: %w", err)
	}

	return nil
}

// Browse runs the interactive annotated-source viewer for one file.
func (t *TUI) Browse(fd m.FileData, opts SummaryOptions) error {
	model := newBrowseModel(fd, opts)

	program := tea.NewProgram(model, tea.WithOutput(t.output))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browse ui: %w", err)
	}

	return nil
}
