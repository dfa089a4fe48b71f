// Package coverdata owns the measured coverage data: loading profiles,
// combining data files, and answering the per-file queries the report
// layers need.
package coverdata

import (
	"fmt"
	"io"
	"regexp"
	"sort"

	m "github.com/nedbat/covcode/internal/model"
)

// Measurement modes, matching Go coverprofile headers.
const (
	ModeSet    = "set"
	ModeCount  = "count"
	ModeAtomic = "atomic"
)

// Store holds line execution counts and branch arcs per measured file.
// Counts are recorded per execution context; the unnamed default context
// is the empty string.
type Store struct {
	mode          string
	files         map[string]*fileData
	queryContexts []*regexp.Regexp
}

type fileData struct {
	lines map[int]map[string]int
	arcs  map[m.Arc]map[string]int
}

// NewStore creates an empty Store in set mode.
func NewStore() *Store {
	return &Store{
		mode:  ModeSet,
		files: make(map[string]*fileData),
	}
}

// Mode returns the measurement mode of the data in the store.
func (s *Store) Mode() string {
	return s.mode
}

// SetMode records the measurement mode. Count-like modes sum on merge, set
// mode keeps the maximum.
func (s *Store) SetMode(mode string) {
	if mode != "" {
		s.mode = mode
	}
}

func (s *Store) fileEntry(file string) *fileData {
	fd, ok := s.files[file]
	if !ok {
		fd = &fileData{
			lines: make(map[int]map[string]int),
			arcs:  make(map[m.Arc]map[string]int),
		}
		s.files[file] = fd
	}

	return fd
}

// AddLineCount records an execution count for one line under a context.
func (s *Store) AddLineCount(file string, line int, context string, count int) {
	fd := s.fileEntry(file)

	byContext, ok := fd.lines[line]
	if !ok {
		byContext = make(map[string]int)
		fd.lines[line] = byContext
	}

	byContext[context] = mergeCount(s.mode, byContext[context], count)
}

// AddArcCount records an execution count for one branch arc under a context.
func (s *Store) AddArcCount(file string, arc m.Arc, context string, count int) {
	fd := s.fileEntry(file)

	byContext, ok := fd.arcs[arc]
	if !ok {
		byContext = make(map[string]int)
		fd.arcs[arc] = byContext
	}

	byContext[context] = mergeCount(s.mode, byContext[context], count)
}

func mergeCount(mode string, a, b int) int {
	if mode == ModeSet {
		if b > a {
			return b
		}

		return a
	}

	return a + b
}

// IsEmpty reports whether the store has no measured files.
func (s *Store) IsEmpty() bool {
	return len(s.files) == 0
}

// MeasuredFiles returns the sorted list of files with recorded data.
func (s *Store) MeasuredFiles() []string {
	files := make([]string, 0, len(s.files))
	for file := range s.files {
		files = append(files, file)
	}

	sort.Strings(files)

	return files
}

// HasArcs reports whether any file carries branch arc data.
func (s *Store) HasArcs() bool {
	for _, fd := range s.files {
		if len(fd.arcs) > 0 {
			return true
		}
	}

	return false
}

// MeasuredContexts returns the sorted distinct contexts seen in the data.
func (s *Store) MeasuredContexts() []string {
	seen := make(map[string]struct{})

	for _, fd := range s.files {
		for _, byContext := range fd.lines {
			for ctx := range byContext {
				seen[ctx] = struct{}{}
			}
		}

		for _, byContext := range fd.arcs {
			for ctx := range byContext {
				seen[ctx] = struct{}{}
			}
		}
	}

	contexts := make([]string, 0, len(seen))
	for ctx := range seen {
		contexts = append(contexts, ctx)
	}

	sort.Strings(contexts)

	return contexts
}

// SetQueryContexts restricts subsequent count queries to contexts matching
// any of the given regular expressions. An empty list removes the filter.
func (s *Store) SetQueryContexts(patterns []string) error {
	if len(patterns) == 0 {
		s.queryContexts = nil

		return nil
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid context pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	s.queryContexts = compiled

	return nil
}

func (s *Store) contextMatches(context string) bool {
	if s.queryContexts == nil {
		return true
	}

	for _, re := range s.queryContexts {
		if re.MatchString(context) {
			return true
		}
	}

	return false
}

// LineCounts returns every recorded line for the file with its count summed
// over the matching contexts. Lines executed only under filtered-out
// contexts appear with a zero count.
func (s *Store) LineCounts(file string) map[int]int {
	fd, ok := s.files[file]
	if !ok {
		return nil
	}

	counts := make(map[int]int, len(fd.lines))

	for line, byContext := range fd.lines {
		total := 0

		for ctx, count := range byContext {
			if s.contextMatches(ctx) {
				total += count
			}
		}

		counts[line] = total
	}

	return counts
}

// ArcCounts returns every recorded arc for the file with its count summed
// over the matching contexts.
func (s *Store) ArcCounts(file string) map[m.Arc]int {
	fd, ok := s.files[file]
	if !ok {
		return nil
	}

	counts := make(map[m.Arc]int, len(fd.arcs))

	for arc, byContext := range fd.arcs {
		total := 0

		for ctx, count := range byContext {
			if s.contextMatches(ctx) {
				total += count
			}
		}

		counts[arc] = total
	}

	return counts
}

// ContextsByLine returns, per line, the sorted contexts that executed it.
func (s *Store) ContextsByLine(file string) map[int][]string {
	fd, ok := s.files[file]
	if !ok {
		return nil
	}

	byLine := make(map[int][]string, len(fd.lines))

	for line, byContext := range fd.lines {
		var contexts []string

		for ctx, count := range byContext {
			if count > 0 && s.contextMatches(ctx) {
				contexts = append(contexts, ctx)
			}
		}

		sort.Strings(contexts)
		byLine[line] = contexts
	}

	return byLine
}

// Union merges another store into this one. Counts combine according to
// this store's mode.
func (s *Store) Union(other *Store) {
	for file, fd := range other.files {
		for line, byContext := range fd.lines {
			for ctx, count := range byContext {
				s.AddLineCount(file, line, ctx, count)
			}
		}

		for arc, byContext := range fd.arcs {
			for ctx, count := range byContext {
				s.AddArcCount(file, arc, ctx, count)
			}
		}
	}
}

// AddDataToHash writes a canonical serialization of one file's coverage data
// to the hash writer. Two stores with identical data for the file produce
// identical bytes regardless of insertion order.
func (s *Store) AddDataToHash(file string, w io.Writer) {
	fd, ok := s.files[file]
	if !ok {
		return
	}

	lines := make([]int, 0, len(fd.lines))
	for line := range fd.lines {
		lines = append(lines, line)
	}

	sort.Ints(lines)

	for _, line := range lines {
		fmt.Fprintf(w, "l%d:", line)
		writeContextCounts(w, fd.lines[line])
	}

	arcs := make([]m.Arc, 0, len(fd.arcs))
	for arc := range fd.arcs {
		arcs = append(arcs, arc)
	}

	sort.Slice(arcs, func(i, j int) bool {
		if arcs[i].From != arcs[j].From {
			return arcs[i].From < arcs[j].From
		}

		return arcs[i].To < arcs[j].To
	})

	for _, arc := range arcs {
		fmt.Fprintf(w, "a%d>%d:", arc.From, arc.To)
		writeContextCounts(w, fd.arcs[arc])
	}
}

func writeContextCounts(w io.Writer, byContext map[string]int) {
	contexts := make([]string, 0, len(byContext))
	for ctx := range byContext {
		contexts = append(contexts, ctx)
	}

	sort.Strings(contexts)

	for _, ctx := range contexts {
		fmt.Fprintf(w, "%q=%d;", ctx, byContext[ctx])
	}
}
