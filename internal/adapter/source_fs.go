package adapter

import (
	"os"
	"path/filepath"
)

// SourceFS abstracts the filesystem operations the report pass relies on.
// It hides direct os access so the workflow logic can be tested without
// touching the disk.
type SourceFS interface {
	// ReadFile loads a measured source file, resolving relative paths
	// against the configured source root.
	ReadFile(path string) ([]byte, error)

	// EnsureDir creates the directory (and parents) if needed.
	EnsureDir(dir string) error

	// RemoveFile deletes a file; a missing file is not an error.
	RemoveFile(path string) error

	// FileExists reports whether path names an existing regular file.
	FileExists(path string) bool
}

const reportDirPerm = 0o750

// LocalSourceFS is the disk-backed SourceFS implementation.
type LocalSourceFS struct {
	// Root is prepended to relative source paths. Empty means the current
	// directory.
	Root string
}

// NewLocalSourceFS constructs a LocalSourceFS rooted at the given directory.
func NewLocalSourceFS(root string) *LocalSourceFS {
	return &LocalSourceFS{Root: root}
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(a.resolve(path))
}

// EnsureDir creates the directory if it does not exist yet.
func (a *LocalSourceFS) EnsureDir(dir string) error {
	return os.MkdirAll(dir, reportDirPerm)
}

// RemoveFile deletes the file, ignoring a missing one.
func (a *LocalSourceFS) RemoveFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}

// FileExists reports whether path is an existing regular file.
func (a *LocalSourceFS) FileExists(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.Mode().IsRegular()
}

func (a *LocalSourceFS) resolve(path string) string {
	if a.Root == "" || filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(a.Root, path)
}
