package coverdata

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"sort"

	m "github.com/nedbat/covcode/internal/model"
)

// DefaultExcludePattern is the directive that removes a source line from
// measurement.
const DefaultExcludePattern = `covcode:ignore`

// CompileExcludePatterns compiles exclusion regexps, falling back to the
// default directive when none are configured.
func CompileExcludePatterns(patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultExcludePattern}
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, err
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

// ExcludedLines returns the sorted line numbers of source lines matching any
// exclusion pattern.
func ExcludedLines(source []byte, patterns []*regexp.Regexp) []int {
	var excluded []int

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0

	for scanner.Scan() {
		lineno++

		for _, re := range patterns {
			if re.Match(scanner.Bytes()) {
				excluded = append(excluded, lineno)

				break
			}
		}
	}

	return excluded
}

// Analyze produces the per-file analysis view for reporting. Excluded lines
// win over every other classification; branch numbers only count lines with
// more than one recorded exit.
func (s *Store) Analyze(file string, source []byte, exclude []*regexp.Regexp) m.Analysis {
	counts := s.LineCounts(file)
	excluded := ExcludedLines(source, exclude)

	excludedSet := make(map[int]struct{}, len(excluded))
	for _, line := range excluded {
		excludedSet[line] = struct{}{}
	}

	var statements, executed, missing []int

	missingSet := make(map[int]struct{})

	for line, count := range counts {
		if _, ok := excludedSet[line]; ok {
			continue
		}

		statements = append(statements, line)

		if count > 0 {
			executed = append(executed, line)
		} else {
			missing = append(missing, line)
			missingSet[line] = struct{}{}
		}
	}

	sort.Ints(statements)
	sort.Ints(executed)
	sort.Ints(missing)

	arcs := s.ArcCounts(file)

	outgoing := make(map[int][]m.Arc)
	for arc := range arcs {
		outgoing[arc.From] = append(outgoing[arc.From], arc)
	}

	nBranches := 0
	nMissingBranches := 0
	missingBranchArcs := make(map[int][]int)

	for from, fromArcs := range outgoing {
		if len(fromArcs) < 2 {
			continue
		}

		if _, ok := excludedSet[from]; ok {
			continue
		}

		nBranches += len(fromArcs)

		// Arcs out of a line that never ran are implied by the missing
		// line itself and aren't counted as missed branches.
		if _, ok := missingSet[from]; ok {
			continue
		}

		for _, arc := range fromArcs {
			if arcs[arc] == 0 {
				nMissingBranches++

				missingBranchArcs[from] = append(missingBranchArcs[from], arc.To)
			}
		}
	}

	for from := range missingBranchArcs {
		sort.Ints(missingBranchArcs[from])
	}

	return m.Analysis{
		Filename:          file,
		Statements:        statements,
		Executed:          executed,
		Missing:           missing,
		Excluded:          excluded,
		MissingBranchArcs: missingBranchArcs,
		HasArcs:           len(arcs) > 0,
		Nums: m.Numbers{
			NFiles:           1,
			NStatements:      len(statements),
			NExcluded:        len(excluded),
			NMissing:         len(missing),
			NBranches:        nBranches,
			NPartialBranches: len(missingBranchArcs),
			NMissingBranches: nMissingBranches,
		},
	}
}

// FileFingerprint hashes the decoded source together with the file's
// coverage data. Equal fingerprints across runs guarantee byte-identical
// report pages.
func FileFingerprint(source []byte, store *Store, file string) string {
	h := sha256.New()
	h.Write(source)
	store.AddDataToHash(file, h)

	return hex.EncodeToString(h.Sum(nil))
}
