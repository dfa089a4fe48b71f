package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/nedbat/covcode/internal/model"
)

func record(path string, statements, missing int) m.FileRecord {
	return m.FileRecord{
		RelativePath: path,
		HTMLFilename: m.FlatRootName(path) + ".html",
		Nums:         m.Numbers{NFiles: 1, NStatements: statements, NMissing: missing},
	}
}

func buildTree(records ...m.FileRecord) []*m.TreeNode {
	tree := NewPackageTree()
	for _, rec := range records {
		tree.Insert(rec)
	}

	tree.Sum()
	tree.MergeSingleDirs()

	return tree.Flatten()
}

func rowPaths(rows []*m.TreeNode) []string {
	paths := make([]string, 0, len(rows))
	for _, row := range rows {
		paths = append(paths, row.Path)
	}

	return paths
}

func TestPackageTree_SingleChainCollapses(t *testing.T) {
	t.Parallel()

	rows := buildTree(
		record("a/b/c/one.go", 10, 2),
		record("a/b/c/two.go", 5, 0),
	)

	// The a -> b -> c chain becomes one package row above the two files.
	assert.Equal(t, []string{"a/b/c", "one.go", "two.go"}, rowPaths(rows))

	top := rows[0]
	assert.True(t, top.IsPackage)
	assert.Equal(t, 15, top.Nums.NStatements)
	assert.Equal(t, 2, top.Nums.NMissing)
	assert.Equal(t, 2, top.Nums.NFiles)
}

func TestPackageTree_DirWithSingleFileNotMerged(t *testing.T) {
	t.Parallel()

	rows := buildTree(record("pkg/main.go", 4, 1))

	// The directory stays visible above its single file.
	assert.Equal(t, []string{"pkg", "main.go"}, rowPaths(rows))
	assert.True(t, rows[0].IsPackage)
	assert.False(t, rows[1].IsPackage)
}

func TestPackageTree_MixedChildrenNotMerged(t *testing.T) {
	t.Parallel()

	rows := buildTree(
		record("a/main.go", 1, 0),
		record("a/sub/impl.go", 2, 0),
	)

	assert.Equal(t, []string{"a", "main.go", "sub", "impl.go"}, rowPaths(rows))
}

func TestPackageTree_RootLevelFile(t *testing.T) {
	t.Parallel()

	rows := buildTree(record("main.go", 3, 1))

	require.Len(t, rows, 1)
	assert.Equal(t, "main.go", rows[0].Path)
	assert.False(t, rows[0].IsPackage)
	assert.Equal(t, 3, rows[0].Nums.NStatements)
}

func TestPackageTree_NodeIDsAreDeterministic(t *testing.T) {
	t.Parallel()

	build := func() []*m.TreeNode {
		return buildTree(
			record("b/x.go", 1, 0),
			record("a/y.go", 1, 0),
			record("a/z.go", 1, 0),
		)
	}

	first := build()
	second := build()

	require.Equal(t, len(first), len(second))

	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
		assert.Equal(t, first[i].NodeID, second[i].NodeID)
		assert.Equal(t, first[i].ParentID, second[i].ParentID)
	}

	// Roots sort by name: a before b.
	assert.Equal(t, "a", first[0].Path)
	assert.Equal(t, "1", first[0].NodeID)
	assert.Equal(t, "1.1", first[1].NodeID)
	assert.Equal(t, "1", first[1].ParentID)
	assert.Equal(t, "b", first[3].Path)
	assert.Equal(t, "2", first[3].NodeID)
}

func TestPackageTree_BackslashPathsNormalized(t *testing.T) {
	t.Parallel()

	rows := buildTree(
		record(`pkg\util\a.go`, 1, 0),
		record(`pkg\util\b.go`, 1, 0),
	)

	assert.Equal(t, []string{"pkg/util", "a.go", "b.go"}, rowPaths(rows))
}

func TestPackageTree_SumNestedPackages(t *testing.T) {
	t.Parallel()

	rows := buildTree(
		record("top/left/a.go", 10, 1),
		record("top/right/b.go", 20, 2),
	)

	assert.Equal(t, []string{"top", "left", "a.go", "right", "b.go"}, rowPaths(rows))
	assert.Equal(t, 30, rows[0].Nums.NStatements)
	assert.Equal(t, 3, rows[0].Nums.NMissing)
	assert.Equal(t, 10, rows[1].Nums.NStatements)
	assert.Equal(t, 20, rows[3].Nums.NStatements)
}
