package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Arc is a directed edge between two line numbers recording one branch
// transition. A negative To means the branch leaves the function.
type Arc struct {
	From int
	To   int
}

// Analysis is the per-file view the data store produces for reporting:
// which lines are statements, which ran, which were excluded, and which
// branch exits were never taken. Line slices are sorted ascending.
type Analysis struct {
	Filename   string
	Statements []int
	Executed   []int
	Missing    []int
	Excluded   []int

	// MissingBranchArcs maps an executed branch line to the sorted list of
	// destinations that were never reached.
	MissingBranchArcs map[int][]int

	HasArcs bool
	Nums    Numbers
}

// MissingArcDescription renders the human-readable text for one missed
// branch destination.
func (a Analysis) MissingArcDescription(fromLine, toLine int) string {
	if toLine < 0 {
		return fmt.Sprintf("line %d didn't return from function", fromLine)
	}

	return fmt.Sprintf("line %d didn't jump to line %d", fromLine, toLine)
}

// FormatLineRanges collapses a sorted list of line numbers into the compact
// "3-5, 7" display form used by text reports.
func FormatLineRanges(lines []int) string {
	if len(lines) == 0 {
		return ""
	}

	sorted := make([]int, len(lines))
	copy(sorted, lines)
	sort.Ints(sorted)

	var parts []string

	start, prev := sorted[0], sorted[0]

	flush := func() {
		if start == prev {
			parts = append(parts, strconv.Itoa(start))

			return
		}

		parts = append(parts, fmt.Sprintf("%d-%d", start, prev))
	}

	for _, line := range sorted[1:] {
		if line == prev || line == prev+1 {
			prev = line

			continue
		}

		flush()

		start, prev = line, line
	}

	flush()

	return strings.Join(parts, ", ")
}
