// Package controller provides output front-ends for the terminal
// commands: a plain table writer and an interactive TUI.
package controller

import (
	m "github.com/nedbat/covcode/internal/model"
)

// SummaryOptions adjust how the summary table is displayed.
type SummaryOptions struct {
	// Precision is the number of decimal digits in percentages.
	Precision int
	// ShowMissing adds the missing line ranges column.
	ShowMissing bool
	// HasArcs adds the branch columns.
	HasArcs bool
}

// UI defines the interface for presenting coverage results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// Summary shows the per-file coverage table with totals.
	Summary(rows []m.FileSummary, totals m.Numbers, opts SummaryOptions) error
	// Browse shows one file's annotated source.
	Browse(fd m.FileData, opts SummaryOptions) error
}
