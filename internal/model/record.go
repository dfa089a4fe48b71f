package model

import "strings"

// FileRecord is the per-file summary carried into the index page and the
// incremental status file. Identity is the relative path.
type FileRecord struct {
	RelativePath string
	HTMLFilename string
	Nums         Numbers
}

// FileSummary is one row of the terminal summary table.
type FileSummary struct {
	Name    string
	Nums    Numbers
	Missing string
}

// FlatRootName converts a relative path into a flat, filesystem-safe page
// name: separators and dots become underscores.
func FlatRootName(relativePath string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", ".", "_")

	return replacer.Replace(relativePath)
}
