package coverdata

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/nedbat/covcode/internal/model"
)

func TestStore_AddLineCount_SetModeKeepsMax(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetMode(ModeSet)

	s.AddLineCount("a.go", 3, "", 1)
	s.AddLineCount("a.go", 3, "", 5)
	s.AddLineCount("a.go", 3, "", 2)

	assert.Equal(t, 5, s.LineCounts("a.go")[3])
}

func TestStore_AddLineCount_CountModeSums(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetMode(ModeCount)

	s.AddLineCount("a.go", 3, "", 1)
	s.AddLineCount("a.go", 3, "", 5)

	assert.Equal(t, 6, s.LineCounts("a.go")[3])
}

func TestStore_MeasuredFiles_Sorted(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddLineCount("z.go", 1, "", 1)
	s.AddLineCount("a.go", 1, "", 1)
	s.AddLineCount("m.go", 1, "", 1)

	assert.Equal(t, []string{"a.go", "m.go", "z.go"}, s.MeasuredFiles())
}

func TestStore_HasArcs(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddLineCount("a.go", 1, "", 1)
	assert.False(t, s.HasArcs())

	s.AddArcCount("a.go", m.Arc{From: 1, To: 2}, "", 1)
	assert.True(t, s.HasArcs())
}

func TestStore_ContextFilter_KeepsZeroCountLines(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetMode(ModeCount)
	s.AddLineCount("a.go", 1, "test_one", 1)
	s.AddLineCount("a.go", 2, "test_two", 1)

	require.NoError(t, s.SetQueryContexts([]string{"test_one"}))

	counts := s.LineCounts("a.go")

	// Line 2 only ran under a filtered-out context: still a known line,
	// now reported as missing.
	assert.Equal(t, 1, counts[1])
	assert.Contains(t, counts, 2)
	assert.Equal(t, 0, counts[2])
}

func TestStore_SetQueryContexts_InvalidPattern(t *testing.T) {
	t.Parallel()

	s := NewStore()

	assert.Error(t, s.SetQueryContexts([]string{"("}))
}

func TestStore_MeasuredContexts(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.AddLineCount("a.go", 1, "", 1)
	s.AddLineCount("a.go", 2, "test_b", 1)
	s.AddArcCount("a.go", m.Arc{From: 1, To: 2}, "test_a", 1)

	assert.Equal(t, []string{"", "test_a", "test_b"}, s.MeasuredContexts())
}

func TestStore_ContextsByLine_OnlyExecuted(t *testing.T) {
	t.Parallel()

	s := NewStore()
	s.SetMode(ModeCount)
	s.AddLineCount("a.go", 1, "beta", 1)
	s.AddLineCount("a.go", 1, "alpha", 2)
	s.AddLineCount("a.go", 2, "gamma", 0)

	byLine := s.ContextsByLine("a.go")

	assert.Equal(t, []string{"alpha", "beta"}, byLine[1])
	assert.Empty(t, byLine[2])
}

func TestStore_Union_MergesCounts(t *testing.T) {
	t.Parallel()

	a := NewStore()
	a.SetMode(ModeCount)
	a.AddLineCount("a.go", 1, "", 1)

	b := NewStore()
	b.SetMode(ModeCount)
	b.AddLineCount("a.go", 1, "", 2)
	b.AddLineCount("b.go", 5, "", 1)
	b.AddArcCount("b.go", m.Arc{From: 5, To: 6}, "", 1)

	a.Union(b)

	assert.Equal(t, 3, a.LineCounts("a.go")[1])
	assert.Equal(t, 1, a.LineCounts("b.go")[5])
	assert.Equal(t, 1, a.ArcCounts("b.go")[m.Arc{From: 5, To: 6}])
}

func TestStore_AddDataToHash_Canonical(t *testing.T) {
	t.Parallel()

	a := NewStore()
	a.AddLineCount("a.go", 2, "ctx", 1)
	a.AddLineCount("a.go", 1, "", 1)
	a.AddArcCount("a.go", m.Arc{From: 2, To: 4}, "", 1)
	a.AddArcCount("a.go", m.Arc{From: 2, To: -1}, "", 1)

	// Same data, different insertion order.
	b := NewStore()
	b.AddArcCount("a.go", m.Arc{From: 2, To: -1}, "", 1)
	b.AddLineCount("a.go", 1, "", 1)
	b.AddArcCount("a.go", m.Arc{From: 2, To: 4}, "", 1)
	b.AddLineCount("a.go", 2, "ctx", 1)

	var bufA, bufB bytes.Buffer

	a.AddDataToHash("a.go", &bufA)
	b.AddDataToHash("a.go", &bufB)

	require.NotEmpty(t, bufA.String())
	assert.Equal(t, bufA.String(), bufB.String())
}

func TestStore_AddDataToHash_UnknownFileWritesNothing(t *testing.T) {
	t.Parallel()

	s := NewStore()

	var buf bytes.Buffer

	s.AddDataToHash("nope.go", &buf)

	assert.Empty(t, buf.String())
}
