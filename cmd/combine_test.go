package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nedbat/covcode/internal/coverdata"
)

func writeShard(t *testing.T, path, file string, line, count int) {
	t.Helper()

	store := coverdata.NewStore()
	store.SetMode("count")
	store.AddLineCount(file, line, "", count)

	require.NoError(t, store.Write(path))
}

func TestCombineCmd_MergesShards(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeShard(t, filepath.Join(dir, ".covcode.shard1"), "a.go", 3, 1)
	writeShard(t, filepath.Join(dir, ".covcode.shard2"), "a.go", 3, 2)

	out, err := runCommand(t, newCombineCmd(), "combine")
	require.NoError(t, err)
	assert.Contains(t, out, "Combined data into .covcode")

	store, err := coverdata.Load(filepath.Join(dir, ".covcode"))
	require.NoError(t, err)
	assert.Equal(t, map[int]int{3: 3}, store.LineCounts("a.go"))

	// Inputs are consumed by default.
	assert.NoFileExists(t, filepath.Join(dir, ".covcode.shard1"))
	assert.NoFileExists(t, filepath.Join(dir, ".covcode.shard2"))
}

func TestCombineCmd_Keep(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	writeShard(t, filepath.Join(dir, ".covcode.shard1"), "a.go", 3, 1)

	_, err := runCommand(t, newCombineCmd(), "combine", "--keep")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, ".covcode.shard1"))
	assert.FileExists(t, filepath.Join(dir, ".covcode"))
}

func TestCombineCmd_NoInputs(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := runCommand(t, newCombineCmd(), "combine")
	assert.ErrorIs(t, err, coverdata.ErrNoDataToCombine)
}
