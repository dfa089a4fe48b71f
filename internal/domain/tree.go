// Package domain holds the report-generation logic: the package tree
// aggregator, per-line display data generation, and the workflow that one
// reporting pass runs through.
package domain

import (
	"sort"
	"strconv"
	"strings"

	m "github.com/nedbat/covcode/internal/model"
)

// treeSep is the path separator used for tree keys and merged display
// paths. Relative paths are normalized to forward slashes before insertion.
const treeSep = "/"

// PackageTree aggregates flat per-file records into a directory hierarchy
// for the tree page. It is built per report pass and never outlives it.
type PackageTree struct {
	roots map[string]*m.TreeNode
}

// NewPackageTree creates an empty tree.
func NewPackageTree() *PackageTree {
	return &PackageTree{roots: make(map[string]*m.TreeNode)}
}

// Insert adds one file record, creating intermediate package nodes as
// needed. A path with no directory component becomes a root leaf.
func (t *PackageTree) Insert(rec m.FileRecord) {
	segments := strings.Split(strings.ReplaceAll(rec.RelativePath, "\\", treeSep), treeSep)

	leaf := &m.TreeNode{
		Path:         segments[len(segments)-1],
		HTMLFilename: rec.HTMLFilename,
		Nums:         rec.Nums,
		IsPackage:    false,
		Children:     make(map[string]*m.TreeNode),
	}

	first := segments[0]

	root, ok := t.roots[first]
	if !ok {
		if len(segments) == 1 {
			t.roots[first] = leaf

			return
		}

		root = newPackageNode(first)
		t.roots[first] = root
	}

	if len(segments) > 1 {
		insertIntoBranch(root, segments[1:], leaf)
	}
}

func newPackageNode(segment string) *m.TreeNode {
	return &m.TreeNode{
		Path:      segment,
		IsPackage: true,
		Children:  make(map[string]*m.TreeNode),
	}
}

func insertIntoBranch(parent *m.TreeNode, segments []string, leaf *m.TreeNode) {
	first := segments[0]

	child, ok := parent.Children[first]
	if !ok {
		if len(segments) == 1 {
			parent.Children[first] = leaf

			return
		}

		child = newPackageNode(first)
		parent.Children[first] = child
	}

	if len(segments) > 1 {
		insertIntoBranch(child, segments[1:], leaf)
	}
}

// Sum computes every package node's Numbers as the post-order sum of its
// children. Leaves keep their own numbers.
func (t *PackageTree) Sum() {
	for _, root := range t.roots {
		if !root.IsLeaf() {
			sumBranch(root)
		}
	}
}

func sumBranch(node *m.TreeNode) {
	var total m.Numbers

	for _, child := range node.Children {
		if !child.IsLeaf() {
			sumBranch(child)
		}

		total = total.Add(child.Nums)
	}

	node.Nums = total
}

// MergeSingleDirs collapses chains of single-child directories so that
//
//	a / b / c / {file1, file2}
//
// displays as one "a/b/c" row. Traversal is bottom-up, so each node merges
// with an already-merged child. A node whose only child is a file leaf is
// left alone; the directory stays visible above its single file.
func (t *PackageTree) MergeSingleDirs() {
	for _, root := range t.roots {
		mergeBranch(root)
	}
}

func mergeBranch(node *m.TreeNode) {
	for _, child := range node.Children {
		mergeBranch(child)
	}

	if len(node.Children) != 1 {
		return
	}

	for _, child := range node.Children {
		if child.IsLeaf() {
			return
		}

		node.Children = child.Children
		node.Path = node.Path + treeSep + child.Path
	}
}

// Flatten walks the tree depth-first in display order, assigning each node
// its dotted positional identifier, and returns the resulting row list.
// Siblings are ordered by sorted segment name, so the ids are stable for
// identical inputs.
func (t *PackageTree) Flatten() []*m.TreeNode {
	var rows []*m.TreeNode

	for i, key := range sortedKeys(t.roots) {
		root := t.roots[key]
		root.ParentID = ""

		rows = appendBranch(rows, root, strconv.Itoa(i+1))
	}

	return rows
}

func appendBranch(rows []*m.TreeNode, node *m.TreeNode, nodeID string) []*m.TreeNode {
	node.NodeID = nodeID
	rows = append(rows, node)

	for i, key := range sortedKeys(node.Children) {
		child := node.Children[key]
		child.ParentID = nodeID

		rows = appendBranch(rows, child, nodeID+"."+strconv.Itoa(i+1))
	}

	return rows
}

func sortedKeys(nodes map[string]*m.TreeNode) []string {
	keys := make([]string, 0, len(nodes))
	for key := range nodes {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
