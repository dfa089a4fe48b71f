package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/nedbat/covcode/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// Summary prints the per-file coverage table with a totals footer.
func (s *SimpleUI) Summary(rows []m.FileSummary, totals m.Numbers, opts SummaryOptions) error {
	header := []string{"Name", "Stmts", "Miss"}
	alignment := []int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT}

	if opts.HasArcs {
		header = append(header, "Branch", "BrPart")
		alignment = append(alignment, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_RIGHT)
	}

	header = append(header, "Cover")
	alignment = append(alignment, tablewriter.ALIGN_RIGHT)

	if opts.ShowMissing {
		header = append(header, "Missing")
		alignment = append(alignment, tablewriter.ALIGN_LEFT)
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment(alignment)

	for _, row := range rows {
		table.Append(summaryCells(row.Name, row.Nums, row.Missing, opts))
	}

	table.SetFooter(summaryCells("TOTAL", totals, "", opts))
	table.Render()

	s.printf("%s", tableBuffer.String())

	return nil
}

// Browse prints the annotated source with one marker column per line.
func (s *SimpleUI) Browse(fd m.FileData, opts SummaryOptions) error {
	s.printf("%s: %s%%\n", fd.RelativePath, m.DisplayCovered(fd.Nums.PercentCovered(), opts.Precision))

	for _, line := range fd.Lines {
		s.printf("%s %5d  %s\n", categoryMarker(line.Category), line.Number, line.Text)
	}

	return nil
}

func summaryCells(name string, nums m.Numbers, missing string, opts SummaryOptions) []string {
	cells := []string{
		name,
		fmt.Sprintf("%d", nums.NStatements),
		fmt.Sprintf("%d", nums.NMissing),
	}

	if opts.HasArcs {
		cells = append(cells,
			fmt.Sprintf("%d", nums.NBranches),
			fmt.Sprintf("%d", nums.NPartialBranches),
		)
	}

	cells = append(cells, m.DisplayCovered(nums.PercentCovered(), opts.Precision)+"%")

	if opts.ShowMissing {
		cells = append(cells, missing)
	}

	return cells
}

// categoryMarker is the one-character gutter marker for a line category.
func categoryMarker(category m.LineCategory) string {
	switch category {
	case m.CategoryMissing:
		return "!"
	case m.CategoryPartial:
		return "~"
	case m.CategoryExcluded:
		return "-"
	case m.CategoryRun:
		return ">"
	default:
		return " "
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
