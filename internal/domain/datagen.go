package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/nedbat/covcode/internal/coverdata"
	m "github.com/nedbat/covcode/internal/model"
)

// EmptyContextLabel is shown when a line only ran under the unnamed
// default context.
const EmptyContextLabel = "(empty)"

// DataGenerator turns a file's analysis into per-line display records.
type DataGenerator struct {
	store        *coverdata.Store
	showContexts bool
}

// NewDataGenerator creates a generator over the given data store.
func NewDataGenerator(store *coverdata.Store, showContexts bool) *DataGenerator {
	return &DataGenerator{store: store, showContexts: showContexts}
}

// DataForFile classifies every source line and attaches branch annotations
// and context labels. Classification precedence: excluded, then missing,
// then partial branch, then executed; the first match wins.
func (g *DataGenerator) DataForFile(analysis m.Analysis, source []byte) m.FileData {
	excluded := lineSet(analysis.Excluded)
	missing := lineSet(analysis.Missing)
	statements := lineSet(analysis.Statements)

	var contextsByLine map[int][]string
	if g.showContexts {
		contextsByLine = g.store.ContextsByLine(analysis.Filename)
	}

	sourceLines := strings.Split(strings.TrimSuffix(string(source), "\n"), "\n")
	lines := make([]m.LineData, 0, len(sourceLines))

	for i, text := range sourceLines {
		lineno := i + 1

		line := m.LineData{
			Number:    lineno,
			Text:      text,
			Statement: contains(statements, lineno),
		}

		switch {
		case contains(excluded, lineno):
			line.Category = m.CategoryExcluded
		case contains(missing, lineno):
			line.Category = m.CategoryMissing
		case analysis.HasArcs && len(analysis.MissingBranchArcs[lineno]) > 0:
			line.Category = m.CategoryPartial

			for _, target := range analysis.MissingBranchArcs[lineno] {
				if target < 0 {
					line.ShortAnnotations = append(line.ShortAnnotations, "exit")
				} else {
					line.ShortAnnotations = append(line.ShortAnnotations, strconv.Itoa(target))
				}

				line.LongAnnotations = append(line.LongAnnotations, analysis.MissingArcDescription(lineno, target))
			}
		case line.Statement:
			line.Category = m.CategoryRun
		}

		if line.Category != m.CategoryNone && g.showContexts {
			line.Contexts, line.ContextsLabel, line.ContextList = contextLabels(contextsByLine[lineno])
		}

		lines = append(lines, line)
	}

	return m.FileData{
		RelativePath: analysis.Filename,
		Nums:         analysis.Nums,
		Lines:        lines,
	}
}

// contextLabels renders the display form of a line's executed contexts: a
// fixed marker when only the default context ran it, otherwise a count
// label plus the full sorted list.
func contextLabels(raw []string) (contexts []string, label string, contextList []string) {
	if len(raw) == 0 {
		return nil, "", nil
	}

	contexts = make([]string, 0, len(raw))

	for _, ctx := range raw {
		if ctx == "" {
			ctx = EmptyContextLabel
		}

		contexts = append(contexts, ctx)
	}

	sort.Strings(contexts)

	if len(contexts) == 1 && contexts[0] == EmptyContextLabel {
		return contexts, EmptyContextLabel, nil
	}

	return contexts, fmt.Sprintf("%d ctx", len(contexts)), contexts
}

func lineSet(lines []int) map[int]struct{} {
	set := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		set[line] = struct{}{}
	}

	return set
}

func contains(set map[int]struct{}, line int) bool {
	_, ok := set[line]

	return ok
}
