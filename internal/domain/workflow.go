package domain

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nedbat/covcode/internal/adapter"
	"github.com/nedbat/covcode/internal/coverdata"
	m "github.com/nedbat/covcode/internal/model"
)

// ErrNoDataToReport is returned when the data store has no measured files
// left after filtering.
var ErrNoDataToReport = errors.New("no data to report")

// ErrFailUnder is returned when total coverage lands below the configured
// threshold.
var ErrFailUnder = errors.New("coverage below threshold")

const htmlExt = ".html"

// ReportOptions control one reporting pass.
type ReportOptions struct {
	// Dir is the output directory for HTML reports.
	Dir string
	// Title is the report heading.
	Title string
	// Precision is the number of decimal digits in percentages.
	Precision int

	// Include and Omit are glob patterns filtering measured files.
	Include []string
	Omit    []string

	// ExcludePatterns are regexes marking source lines to exclude.
	ExcludePatterns []string
	// Contexts are regexes restricting measurement to matching contexts.
	Contexts []string

	SkipCovered  bool
	SkipEmpty    bool
	ShowContexts bool
	IgnoreErrors bool
}

// Workflow is the set of operations the commands dispatch to.
type Workflow interface {
	HTMLReport(store *coverdata.Store, opts ReportOptions) (float64, error)
	TextReport(store *coverdata.Store, opts ReportOptions) ([]m.FileSummary, m.Numbers, error)
	FileView(store *coverdata.Store, file string, opts ReportOptions) (m.FileData, error)
	Combine(target string, paths []string, opts coverdata.CombineOptions) error
	Erase(dataFile string) error
}

type workflow struct {
	fs  adapter.SourceFS
	log *slog.Logger
}

// NewWorkflow creates a Workflow reading sources through fs.
func NewWorkflow(fs adapter.SourceFS, log *slog.Logger) Workflow {
	if log == nil {
		log = slog.Default()
	}

	return &workflow{fs: fs, log: log}
}

// analyzedFile carries one file through the report pass.
type analyzedFile struct {
	path     string
	source   []byte
	analysis m.Analysis
	rootName string
}

// selectFiles filters, reads and analyzes the measured files. Unreadable
// sources are an error unless IgnoreErrors is set, in which case they are
// dropped with a warning.
func (w *workflow) selectFiles(store *coverdata.Store, opts ReportOptions) ([]analyzedFile, error) {
	if len(opts.Contexts) > 0 {
		if err := store.SetQueryContexts(opts.Contexts); err != nil {
			return nil, err
		}
	}

	exclude, err := coverdata.CompileExcludePatterns(excludeOrDefault(opts.ExcludePatterns))
	if err != nil {
		return nil, err
	}

	var files []analyzedFile

	for _, path := range store.MeasuredFiles() {
		if !included(path, opts.Include, opts.Omit) {
			continue
		}

		source, err := w.fs.ReadFile(path)
		if err != nil {
			if opts.IgnoreErrors {
				w.log.Warn("could not read source, skipping", "file", path, "error", err)

				continue
			}

			return nil, fmt.Errorf("read source %s: %w", path, err)
		}

		files = append(files, analyzedFile{
			path:     path,
			source:   source,
			analysis: store.Analyze(path, source, exclude),
			rootName: m.FlatRootName(path),
		})
	}

	return files, nil
}

// HTMLReport writes the report pages for every measured file, reusing
// cached pages for files whose inputs have not changed, and returns the
// total percentage covered.
func (w *workflow) HTMLReport(store *coverdata.Store, opts ReportOptions) (float64, error) {
	files, err := w.selectFiles(store, opts)
	if err != nil {
		return 0, err
	}

	if err := w.fs.EnsureDir(opts.Dir); err != nil {
		return 0, fmt.Errorf("report directory: %w", err)
	}

	renderer, err := adapter.NewHTMLRenderer(opts.Dir, adapter.RenderOptions{
		Title:        opts.Title,
		Precision:    opts.Precision,
		ShowContexts: opts.ShowContexts,
		HasArcs:      store.HasArcs(),
	})
	if err != nil {
		return 0, err
	}

	status := adapter.NewStatusStore(opts.Dir)
	status.Load()
	status.CheckGlobals(
		renderer.TemplateSource(),
		strconv.FormatBool(opts.ShowContexts),
		strings.Join(opts.Contexts, "\x00"),
		opts.Title,
		strconv.Itoa(opts.Precision),
	)

	gen := NewDataGenerator(store, opts.ShowContexts)

	var (
		records  []m.FileRecord
		totals   m.Numbers
		skipped  int
		rendered int
	)

	for _, file := range files {
		nums := file.analysis.Nums
		htmlFilename := file.rootName + htmlExt

		if skipFile(nums, opts) {
			if err := renderer.RemovePage(htmlFilename); err != nil {
				return 0, err
			}

			continue
		}

		fingerprint := coverdata.FileFingerprint(file.source, store, file.path)

		rec := m.FileRecord{
			RelativePath: file.path,
			HTMLFilename: htmlFilename,
			Nums:         nums,
		}

		cached, haveCached := status.IndexInfo(file.rootName)
		if status.CanSkip(file.rootName, fingerprint) && haveCached && renderer.PageExists(htmlFilename) {
			rec = cached
			skipped++
		} else {
			fd := gen.DataForFile(file.analysis, file.source)
			if err := renderer.WriteFilePage(fd, htmlFilename); err != nil {
				return 0, err
			}

			rendered++
		}

		status.SetIndexInfo(file.rootName, rec)

		records = append(records, rec)
		totals = totals.Add(rec.Nums)
	}

	if len(records) == 0 {
		return 0, ErrNoDataToReport
	}

	if err := renderer.WriteIndex(records, totals); err != nil {
		return 0, err
	}

	tree := NewPackageTree()
	for _, rec := range records {
		tree.Insert(rec)
	}

	tree.Sum()
	tree.MergeSingleDirs()

	if err := renderer.WriteTree(tree.Flatten(), totals); err != nil {
		return 0, err
	}

	if err := renderer.WriteStatic(); err != nil {
		return 0, err
	}

	if err := status.Persist(); err != nil {
		return 0, err
	}

	w.log.Debug("html report written",
		"dir", opts.Dir, "files", len(records), "rendered", rendered, "skipped", skipped)

	return totals.PercentCovered(), nil
}

// TextReport produces the per-file summary rows for the terminal report.
func (w *workflow) TextReport(store *coverdata.Store, opts ReportOptions) ([]m.FileSummary, m.Numbers, error) {
	files, err := w.selectFiles(store, opts)
	if err != nil {
		return nil, m.Numbers{}, err
	}

	var (
		rows   []m.FileSummary
		totals m.Numbers
	)

	for _, file := range files {
		nums := file.analysis.Nums
		if skipFile(nums, opts) {
			continue
		}

		rows = append(rows, m.FileSummary{
			Name:    file.path,
			Nums:    nums,
			Missing: m.FormatLineRanges(file.analysis.Missing),
		})
		totals = totals.Add(nums)
	}

	if len(rows) == 0 {
		return nil, m.Numbers{}, ErrNoDataToReport
	}

	return rows, totals, nil
}

// FileView classifies a single file's lines for terminal display.
func (w *workflow) FileView(store *coverdata.Store, file string, opts ReportOptions) (m.FileData, error) {
	if len(opts.Contexts) > 0 {
		if err := store.SetQueryContexts(opts.Contexts); err != nil {
			return m.FileData{}, err
		}
	}

	exclude, err := coverdata.CompileExcludePatterns(excludeOrDefault(opts.ExcludePatterns))
	if err != nil {
		return m.FileData{}, err
	}

	source, err := w.fs.ReadFile(file)
	if err != nil {
		return m.FileData{}, fmt.Errorf("read source %s: %w", file, err)
	}

	analysis := store.Analyze(file, source, exclude)
	gen := NewDataGenerator(store, opts.ShowContexts)

	return gen.DataForFile(analysis, source), nil
}

// Combine merges parallel data files into the target data file.
func (w *workflow) Combine(target string, paths []string, opts coverdata.CombineOptions) error {
	return coverdata.Combine(target, paths, opts)
}

// Erase removes the data file.
func (w *workflow) Erase(dataFile string) error {
	return coverdata.Erase(dataFile)
}

// CheckFailUnder compares total coverage against the threshold, truncating
// at the display precision so the check never contradicts the printed
// number.
func CheckFailUnder(percent, failUnder float64, precision int) error {
	if failUnder <= 0 {
		return nil
	}

	scale := math.Pow(10, float64(precision))
	if math.Floor(percent*scale)/scale < failUnder {
		return fmt.Errorf("%w: total %s%% is less than %s%%",
			ErrFailUnder,
			m.DisplayCovered(percent, precision),
			strconv.FormatFloat(failUnder, 'f', -1, 64))
	}

	return nil
}

func skipFile(nums m.Numbers, opts ReportOptions) bool {
	if opts.SkipCovered && nums.NStatements > 0 && nums.NMissing == 0 && nums.NPartialBranches == 0 {
		return true
	}

	if opts.SkipEmpty && nums.NStatements == 0 {
		return true
	}

	return false
}

func excludeOrDefault(patterns []string) []string {
	if len(patterns) == 0 {
		return []string{coverdata.DefaultExcludePattern}
	}

	return patterns
}

// included applies the include and omit glob filters to a measured path.
// Patterns match against the full slash-normalized path.
func included(path string, include, omit []string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")

	if len(include) > 0 && !matchAny(normalized, include) {
		return false
	}

	return !matchAny(normalized, omit)
}

func matchAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, path); err == nil && ok {
			return true
		}
	}

	return false
}
