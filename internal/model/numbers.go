// Package model defines the data structures for coverage reporting.
package model

import (
	"fmt"
	"math"
	"strconv"
)

// Numbers holds the coverage counters for one file or an aggregate of files.
// Values are never mutated in place; Add returns a new Numbers so that
// summing a slice of them behaves like a monoid fold.
type Numbers struct {
	NFiles           int
	NStatements      int
	NExcluded        int
	NMissing         int
	NBranches        int
	NPartialBranches int
	NMissingBranches int
}

// sequenceLen is the fixed length of the serialized counter sequence.
const sequenceLen = 7

// Add returns the element-wise sum of two Numbers.
func (n Numbers) Add(o Numbers) Numbers {
	return Numbers{
		NFiles:           n.NFiles + o.NFiles,
		NStatements:      n.NStatements + o.NStatements,
		NExcluded:        n.NExcluded + o.NExcluded,
		NMissing:         n.NMissing + o.NMissing,
		NBranches:        n.NBranches + o.NBranches,
		NPartialBranches: n.NPartialBranches + o.NPartialBranches,
		NMissingBranches: n.NMissingBranches + o.NMissingBranches,
	}
}

// SumNumbers folds a slice of Numbers into their aggregate.
func SumNumbers(nums []Numbers) Numbers {
	var total Numbers

	for _, n := range nums {
		total = total.Add(n)
	}

	return total
}

// NExecuted returns the count of statements that ran.
func (n Numbers) NExecuted() int {
	return n.NStatements - n.NMissing
}

// NExecutedBranches returns the count of branch destinations that ran.
func (n Numbers) NExecutedBranches() int {
	return n.NBranches - n.NMissingBranches
}

// Ratio returns the covered/total pair used for percentage displays.
func (n Numbers) Ratio() (covered, total int) {
	return n.NExecuted() + n.NExecutedBranches(), n.NStatements + n.NBranches
}

// PercentCovered returns the covered percentage in [0, 100]. A file with no
// statements counts as fully covered.
func (n Numbers) PercentCovered() float64 {
	covered, total := n.Ratio()
	if total == 0 {
		return 100.0
	}

	return 100.0 * float64(covered) / float64(total)
}

// DisplayCovered formats a percentage for display with the given precision.
// The endpoints are sticky: a value rounds to 0 or 100 only when it is
// exactly 0 or 100, so "almost covered" never shows as covered.
func DisplayCovered(pc float64, precision int) string {
	if precision < 0 {
		precision = 0
	}

	near0 := 1.0 / math.Pow(10, float64(precision))
	near100 := 100.0 - near0

	switch {
	case 0 < pc && pc < near0:
		pc = near0
	case near100 < pc && pc < 100:
		pc = near100
	default:
		pc = round(pc, precision)
	}

	return strconv.FormatFloat(pc, 'f', precision, 64)
}

func round(v float64, precision int) float64 {
	shift := math.Pow(10, float64(precision))

	return math.Round(v*shift) / shift
}

// Sequence serializes the counters as a fixed-order slice for the status file.
func (n Numbers) Sequence() []int {
	return []int{
		n.NFiles,
		n.NStatements,
		n.NExcluded,
		n.NMissing,
		n.NBranches,
		n.NPartialBranches,
		n.NMissingBranches,
	}
}

// NumbersFromSequence rebuilds Numbers from the fixed-order slice produced by
// Sequence.
func NumbersFromSequence(seq []int) (Numbers, error) {
	if len(seq) != sequenceLen {
		return Numbers{}, fmt.Errorf("numbers sequence has %d values, want %d", len(seq), sequenceLen)
	}

	return Numbers{
		NFiles:           seq[0],
		NStatements:      seq[1],
		NExcluded:        seq[2],
		NMissing:         seq[3],
		NBranches:        seq[4],
		NPartialBranches: seq[5],
		NMissingBranches: seq[6],
	}, nil
}
