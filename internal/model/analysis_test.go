package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatLineRanges(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", FormatLineRanges(nil))
	assert.Equal(t, "7", FormatLineRanges([]int{7}))
	assert.Equal(t, "3-5, 7", FormatLineRanges([]int{3, 4, 5, 7}))
	assert.Equal(t, "1-2, 9-11, 20", FormatLineRanges([]int{1, 2, 9, 10, 11, 20}))

	// Input order does not matter.
	assert.Equal(t, "3-5, 7", FormatLineRanges([]int{7, 5, 3, 4}))
}

func TestAnalysis_MissingArcDescription(t *testing.T) {
	t.Parallel()

	a := Analysis{}

	assert.Equal(t, "line 12 didn't jump to line 14", a.MissingArcDescription(12, 14))
	assert.Equal(t, "line 12 didn't return from function", a.MissingArcDescription(12, -1))
}

func TestFlatRootName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pkg_server_main_go", FlatRootName("pkg/server/main.go"))
	assert.Equal(t, "a_b_c_go", FlatRootName(`a\b\c.go`))
	assert.Equal(t, "main_go", FlatRootName("main.go"))
}
