package model

// TreeNode is one row of the hierarchical package summary: a directory
// grouping (IsPackage) or a file leaf. After singleton-directory merging a
// package node's Path may span several joined segments.
type TreeNode struct {
	Path         string
	HTMLFilename string
	Nums         Numbers
	IsPackage    bool
	Children     map[string]*TreeNode

	// Dotted positional identifiers assigned when the tree is flattened
	// for display; the root level has no parent id.
	NodeID   string
	ParentID string
}

// IsLeaf reports whether the node has no children. A file directly at the
// tree root is a root and a leaf at once.
func (n *TreeNode) IsLeaf() bool {
	return len(n.Children) == 0
}
