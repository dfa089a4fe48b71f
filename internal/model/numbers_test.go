package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbers_Add_SumsEveryCounter(t *testing.T) {
	t.Parallel()

	a := Numbers{NFiles: 1, NStatements: 10, NExcluded: 2, NMissing: 3, NBranches: 4, NPartialBranches: 1, NMissingBranches: 2}
	b := Numbers{NFiles: 1, NStatements: 5, NExcluded: 1, NMissing: 1, NBranches: 2, NPartialBranches: 1, NMissingBranches: 1}

	sum := a.Add(b)

	assert.Equal(t, 2, sum.NFiles)
	assert.Equal(t, 15, sum.NStatements)
	assert.Equal(t, 3, sum.NExcluded)
	assert.Equal(t, 4, sum.NMissing)
	assert.Equal(t, 6, sum.NBranches)
	assert.Equal(t, 2, sum.NPartialBranches)
	assert.Equal(t, 3, sum.NMissingBranches)

	// Operands are not mutated.
	assert.Equal(t, 10, a.NStatements)
	assert.Equal(t, 5, b.NStatements)
}

func TestNumbers_Add_IdentityAndAssociativity(t *testing.T) {
	t.Parallel()

	a := Numbers{NStatements: 7, NMissing: 2}
	b := Numbers{NStatements: 3, NBranches: 4}
	c := Numbers{NMissing: 1, NMissingBranches: 2}

	assert.Equal(t, a, a.Add(Numbers{}))
	assert.Equal(t, a, Numbers{}.Add(a))
	assert.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)))
}

func TestSumNumbers(t *testing.T) {
	t.Parallel()

	nums := []Numbers{
		{NFiles: 1, NStatements: 10, NMissing: 5},
		{NFiles: 1, NStatements: 20, NMissing: 1},
	}

	total := SumNumbers(nums)

	assert.Equal(t, 2, total.NFiles)
	assert.Equal(t, 30, total.NStatements)
	assert.Equal(t, 6, total.NMissing)

	assert.Equal(t, Numbers{}, SumNumbers(nil))
}

func TestNumbers_PercentCovered(t *testing.T) {
	t.Parallel()

	n := Numbers{NStatements: 10, NMissing: 5}
	assert.InDelta(t, 50.0, n.PercentCovered(), 1e-9)

	withBranches := Numbers{NStatements: 10, NMissing: 2, NBranches: 10, NMissingBranches: 4}
	assert.InDelta(t, 70.0, withBranches.PercentCovered(), 1e-9)

	empty := Numbers{}
	assert.InDelta(t, 100.0, empty.PercentCovered(), 1e-9)
}

func TestDisplayCovered_StickyEndpoints(t *testing.T) {
	t.Parallel()

	// Nearly covered never displays as fully covered.
	assert.Equal(t, "99", DisplayCovered(99.9999, 0))
	assert.Equal(t, "99.99", DisplayCovered(99.99999, 2))

	// Barely covered never displays as zero.
	assert.Equal(t, "1", DisplayCovered(0.0001, 0))
	assert.Equal(t, "0.01", DisplayCovered(0.0001, 2))

	// Exact endpoints display exactly.
	assert.Equal(t, "100", DisplayCovered(100.0, 0))
	assert.Equal(t, "0", DisplayCovered(0.0, 0))

	// Ordinary values round normally.
	assert.Equal(t, "86", DisplayCovered(85.7, 0))
	assert.Equal(t, "85.70", DisplayCovered(85.7, 2))
}

func TestNumbers_SequenceRoundTrip(t *testing.T) {
	t.Parallel()

	n := Numbers{NFiles: 1, NStatements: 12, NExcluded: 3, NMissing: 4, NBranches: 6, NPartialBranches: 2, NMissingBranches: 3}

	back, err := NumbersFromSequence(n.Sequence())
	require.NoError(t, err)
	assert.Equal(t, n, back)

	_, err = NumbersFromSequence([]int{1, 2, 3})
	assert.Error(t, err)
}

func TestNumbers_Ratio(t *testing.T) {
	t.Parallel()

	n := Numbers{NStatements: 10, NMissing: 3, NBranches: 4, NMissingBranches: 1}

	covered, total := n.Ratio()
	assert.Equal(t, 10, covered)
	assert.Equal(t, 14, total)
}
