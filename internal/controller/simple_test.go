package controller

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/nedbat/covcode/internal/model"
)

func newCaptureCmd() (*cobra.Command, *bytes.Buffer) {
	var buf bytes.Buffer

	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)

	return cmd, &buf
}

func TestSimpleUI_Summary_TableContents(t *testing.T) {
	t.Parallel()

	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	rows := []m.FileSummary{
		{Name: "pkg/a.go", Nums: m.Numbers{NStatements: 10, NMissing: 5}, Missing: "3-5, 9"},
		{Name: "pkg/b.go", Nums: m.Numbers{NStatements: 4}},
	}
	totals := m.Numbers{NStatements: 14, NMissing: 5}

	err := ui.Summary(rows, totals, SummaryOptions{ShowMissing: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "pkg/a.go")
	assert.Contains(t, out, "pkg/b.go")
	assert.Contains(t, out, "3-5, 9")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "MISSING")
}

func TestSimpleUI_Summary_BranchColumns(t *testing.T) {
	t.Parallel()

	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	rows := []m.FileSummary{
		{Name: "a.go", Nums: m.Numbers{NStatements: 4, NBranches: 2, NPartialBranches: 1, NMissingBranches: 1}},
	}

	err := ui.Summary(rows, rows[0].Nums, SummaryOptions{HasArcs: true})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "BRANCH")
	assert.Contains(t, out, "BRPART")
}

func TestSimpleUI_Browse_MarkersPerCategory(t *testing.T) {
	t.Parallel()

	cmd, buf := newCaptureCmd()
	ui := NewSimpleUI(cmd)

	fd := m.FileData{
		RelativePath: "a.go",
		Nums:         m.Numbers{NStatements: 3, NMissing: 1},
		Lines: []m.LineData{
			{Number: 1, Text: "ran", Category: m.CategoryRun},
			{Number: 2, Text: "missed", Category: m.CategoryMissing},
			{Number: 3, Text: "partial", Category: m.CategoryPartial},
			{Number: 4, Text: "skipped", Category: m.CategoryExcluded},
			{Number: 5, Text: "comment", Category: m.CategoryNone},
		},
	}

	err := ui.Browse(fd, SummaryOptions{})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "a.go: 67%")
	assert.Contains(t, out, ">     1  ran")
	assert.Contains(t, out, "!     2  missed")
	assert.Contains(t, out, "~     3  partial")
	assert.Contains(t, out, "-     4  skipped")
	assert.Contains(t, out, "      5  comment")
}

func TestCategoryMarker(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "!", categoryMarker(m.CategoryMissing))
	assert.Equal(t, " ", categoryMarker(m.CategoryNone))
}
