package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewCmd_AnnotatedSource(t *testing.T) {
	dir := writeSampleProject(t)
	t.Chdir(dir)

	out, err := runCommand(t, newViewCmd(), "view", "sample/half.go")
	require.NoError(t, err)

	assert.Contains(t, out, "sample/half.go: 75%")
	assert.Contains(t, out, ">     3  func Half(n int) int {")
	assert.Contains(t, out, "!     7  \treturn n")
}

func TestViewCmd_RequiresFileArgument(t *testing.T) {
	dir := writeSampleProject(t)
	t.Chdir(dir)

	_, err := runCommand(t, newViewCmd(), "view")
	assert.Error(t, err)
}

func TestViewCmd_UnknownFile(t *testing.T) {
	dir := writeSampleProject(t)
	t.Chdir(dir)

	_, err := runCommand(t, newViewCmd(), "view", "sample/missing.go")
	assert.Error(t, err)
}
