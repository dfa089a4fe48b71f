package coverdata

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrNoDataToCombine is returned when no input data files were found.
var ErrNoDataToCombine = errors.New("no data files to combine")

// CombineOptions controls the combine operation.
type CombineOptions struct {
	// Keep leaves the input files in place instead of removing them after a
	// successful combine.
	Keep bool

	// Append merges the existing target data file into the result instead of
	// replacing it.
	Append bool
}

// Combine union-merges the data files named by paths into the data file at
// target. Directory paths are expanded to the data files they contain.
// Unreadable or malformed inputs are an error; a partial combine never
// overwrites the target.
func Combine(target string, paths []string, opts CombineOptions) error {
	if len(paths) == 0 {
		paths = []string{filepath.Dir(target)}
	}

	inputs, err := expandDataPaths(target, paths)
	if err != nil {
		return err
	}

	if len(inputs) == 0 {
		return ErrNoDataToCombine
	}

	stores := make([]*Store, len(inputs))

	var group errgroup.Group

	for i, input := range inputs {
		group.Go(func() error {
			store, err := Load(input)
			if err != nil {
				return err
			}

			stores[i] = store

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("combine: %w", err)
	}

	combined := NewStore()

	if opts.Append {
		existing, err := Load(target)
		if err != nil && !errors.Is(err, ErrNoDataFile) {
			return fmt.Errorf("combine: %w", err)
		}

		if existing != nil {
			combined.SetMode(existing.Mode())
			combined.Union(existing)
		}
	}

	for _, store := range stores {
		combined.SetMode(store.Mode())
		combined.Union(store)
	}

	if err := combined.Write(target); err != nil {
		return fmt.Errorf("combine: %w", err)
	}

	if !opts.Keep {
		for _, input := range inputs {
			if err := os.Remove(input); err != nil {
				return fmt.Errorf("combine: remove input: %w", err)
			}
		}
	}

	return nil
}

// expandDataPaths resolves the combine arguments to concrete data files.
// A directory contributes every data file inside it except the target.
func expandDataPaths(target string, paths []string) ([]string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("combine: %w", err)
	}

	var inputs []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("combine: input path: %w", err)
		}

		if !info.IsDir() {
			inputs = append(inputs, path)

			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, fmt.Errorf("combine: read dir: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !isDataFileName(entry.Name()) {
				continue
			}

			full := filepath.Join(path, entry.Name())

			abs, err := filepath.Abs(full)
			if err != nil {
				return nil, fmt.Errorf("combine: %w", err)
			}

			if abs == absTarget {
				continue
			}

			inputs = append(inputs, full)
		}
	}

	return inputs, nil
}

// isDataFileName recognizes parallel-run data files (.covcode.<suffix>) and
// Go coverprofiles.
func isDataFileName(name string) bool {
	if strings.HasPrefix(name, DefaultDataFile+".") || name == DefaultDataFile {
		return true
	}

	return strings.HasSuffix(name, ".out") || strings.HasSuffix(name, ".coverprofile")
}
