package adapter

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	m "github.com/nedbat/covcode/internal/model"
	"github.com/nedbat/covcode/internal/version"
)

const htmlFilePerm = 0o644

// Names of the non-page files written into the report directory.
const (
	IndexFilename = "index.html"
	TreeFilename  = "package_tree.html"
	styleFilename = "style.css"
)

// RenderOptions are the report-wide settings shared by every page.
type RenderOptions struct {
	Title        string
	Precision    int
	ShowContexts bool
	HasArcs      bool
}

// HTMLRenderer fills the file, index and tree templates and writes
// normalized HTML into the report directory.
type HTMLRenderer struct {
	dir  string
	opts RenderOptions

	fileTmpl  *template.Template
	indexTmpl *template.Template
	treeTmpl  *template.Template

	timestamp string
}

// NewHTMLRenderer parses the templates and prepares a renderer for the
// given report directory.
func NewHTMLRenderer(dir string, opts RenderOptions) (*HTMLRenderer, error) {
	if opts.Title == "" {
		opts.Title = "Coverage report"
	}

	r := &HTMLRenderer{
		dir:       dir,
		opts:      opts,
		timestamp: time.Now().Format("2006-01-02 15:04"),
	}

	funcs := template.FuncMap{
		"pc": func(nums m.Numbers) string {
			return m.DisplayCovered(nums.PercentCovered(), opts.Precision)
		},
		"ratio": func(nums m.Numbers) string {
			covered, total := nums.Ratio()

			return fmt.Sprintf("%d %d", covered, total)
		},
		"comma": func(n int) string {
			return humanize.Comma(int64(n))
		},
	}

	var err error

	r.fileTmpl, err = template.New("file").Funcs(funcs).Parse(filePageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse file template: %w", err)
	}

	r.indexTmpl, err = template.New("index").Funcs(funcs).Parse(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	r.treeTmpl, err = template.New("tree").Funcs(funcs).Parse(treeTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse tree template: %w", err)
	}

	return r, nil
}

// TemplateSource returns the raw template text. It participates in the
// global fingerprint: editing a template invalidates every cached page.
func (r *HTMLRenderer) TemplateSource() string {
	return filePageTemplate + indexTemplate + treeTemplate + styleCSS
}

// PagePath returns the on-disk path for a generated page name.
func (r *HTMLRenderer) PagePath(filename string) string {
	return filepath.Join(r.dir, filename)
}

// PageExists reports whether the page is already present on disk.
func (r *HTMLRenderer) PageExists(filename string) bool {
	info, err := os.Stat(r.PagePath(filename))

	return err == nil && info.Mode().IsRegular()
}

// RemovePage deletes a page that is no longer reported (skip-covered,
// skip-empty). A missing page is fine.
func (r *HTMLRenderer) RemovePage(filename string) error {
	err := os.Remove(r.PagePath(filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove page: %w", err)
	}

	return nil
}

// pageLine is the view of one source line handed to the file template.
type pageLine struct {
	Number        int
	Text          string
	CSSClass      string
	Annotate      template.HTML
	AnnotateLong  string
	ContextsLabel string
	ContextList   []string
}

// pageContext is the shared context every template receives.
type pageContext struct {
	Title        string
	Version      string
	URL          string
	TimeStamp    string
	ShowContexts bool
	HasArcs      bool
}

// cssClasses maps a line category to the classes that drive default
// highlighting and the keyboard filters.
var cssClasses = map[m.LineCategory]string{
	m.CategoryExcluded: "exc show_exc",
	m.CategoryMissing:  "mis show_mis",
	m.CategoryPartial:  "par run show_par",
	m.CategoryRun:      "run",
}

func (r *HTMLRenderer) pageContext() pageContext {
	return pageContext{
		Title:        r.opts.Title,
		Version:      version.Version,
		URL:          version.URL,
		TimeStamp:    r.timestamp,
		ShowContexts: r.opts.ShowContexts,
		HasArcs:      r.opts.HasArcs,
	}
}

// WriteFilePage renders one source file's page.
func (r *HTMLRenderer) WriteFilePage(fd m.FileData, filename string) error {
	lines := make([]pageLine, 0, len(fd.Lines))

	for _, ld := range fd.Lines {
		line := pageLine{
			Number:        ld.Number,
			Text:          ld.Text,
			CSSClass:      "pln",
			ContextsLabel: ld.ContextsLabel,
			ContextList:   ld.ContextList,
		}

		if cls, ok := cssClasses[ld.Category]; ok {
			line.CSSClass = cls
		}

		if len(ld.ShortAnnotations) > 0 {
			line.Annotate = shortAnnotationHTML(ld.Number, ld.ShortAnnotations)
		}

		line.AnnotateLong = longAnnotationText(ld.LongAnnotations)

		lines = append(lines, line)
	}

	data := struct {
		pageContext
		RelativePath string
		Nums         m.Numbers
		Lines        []pageLine
	}{
		pageContext:  r.pageContext(),
		RelativePath: fd.RelativePath,
		Nums:         fd.Nums,
		Lines:        lines,
	}

	return r.render(r.fileTmpl, filename, data)
}

// shortAnnotationHTML joins the branch destinations into the "12 ↛ 14"
// markers shown at the right edge of a partial line. 202F is a narrow
// no-break space, 219B a rightwards arrow with stroke.
func shortAnnotationHTML(lineno int, annotations []string) template.HTML {
	parts := make([]string, 0, len(annotations))

	for _, annotation := range annotations {
		parts = append(parts, fmt.Sprintf("%d&#x202F;&#x219B;&#x202F;%s", lineno, template.HTMLEscapeString(annotation)))
	}

	return template.HTML(strings.Join(parts, ",&nbsp;&nbsp; "))
}

// longAnnotationText renders the hover text for a partial line.
func longAnnotationText(annotations []string) string {
	switch len(annotations) {
	case 0:
		return ""
	case 1:
		return annotations[0]
	}

	parts := make([]string, 0, len(annotations))
	for i, annotation := range annotations {
		parts = append(parts, fmt.Sprintf("%d) %s", i+1, annotation))
	}

	return fmt.Sprintf("%d missed branches: %s", len(annotations), strings.Join(parts, ", "))
}

// indexRow pairs a file record with its display fields for the index page.
type indexRow struct {
	Record  m.FileRecord
	Missing int
}

// WriteIndex renders the index page listing every reported file.
func (r *HTMLRenderer) WriteIndex(records []m.FileRecord, totals m.Numbers) error {
	rows := make([]indexRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, indexRow{Record: rec, Missing: rec.Nums.NMissing})
	}

	data := struct {
		pageContext
		Files  []indexRow
		Totals m.Numbers
	}{
		pageContext: r.pageContext(),
		Files:       rows,
		Totals:      totals,
	}

	return r.render(r.indexTmpl, IndexFilename, data)
}

// treeRow is the view of one tree node handed to the tree template.
type treeRow struct {
	Node     *m.TreeNode
	Depth    int
	IsModule bool
}

// WriteTree renders the collapsible package tree page.
func (r *HTMLRenderer) WriteTree(nodes []*m.TreeNode, totals m.Numbers) error {
	rows := make([]treeRow, 0, len(nodes))

	for _, node := range nodes {
		rows = append(rows, treeRow{
			Node:     node,
			Depth:    strings.Count(node.NodeID, "."),
			IsModule: !node.IsPackage,
		})
	}

	data := struct {
		pageContext
		Files  []treeRow
		Totals m.Numbers
	}{
		pageContext: r.pageContext(),
		Files:       rows,
		Totals:      totals,
	}

	return r.render(r.treeTmpl, TreeFilename, data)
}

// WriteStatic writes the stylesheet the pages link to. Static files are
// rewritten every run.
func (r *HTMLRenderer) WriteStatic() error {
	path := filepath.Join(r.dir, styleFilename)

	if err := os.WriteFile(path, []byte(styleCSS), htmlFilePerm); err != nil {
		return fmt.Errorf("write static: %w", err)
	}

	return nil
}

func (r *HTMLRenderer) render(tmpl *template.Template, filename string, data any) error {
	var buf strings.Builder

	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", filename, err)
	}

	return writeHTML(r.PagePath(filename), buf.String())
}

// writeHTML writes normalized page output: template indentation and
// trailing whitespace are stripped per line so identical inputs produce
// byte-identical pages.
func writeHTML(path, html string) error {
	lines := strings.Split(html, "\n")

	var out strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		out.WriteString(trimmed)
		out.WriteByte('\n')
	}

	if err := os.WriteFile(path, []byte(out.String()), htmlFilePerm); err != nil {
		return fmt.Errorf("write html: %w", err)
	}

	return nil
}
