package model

// LineCategory classifies a source line for report display. A line gets at
// most one category; classification precedence is excluded, then missing,
// then partial branch, then executed.
type LineCategory string

const (
	// CategoryExcluded marks lines removed from measurement by a directive.
	CategoryExcluded LineCategory = "exc"
	// CategoryMissing marks statements that never ran.
	CategoryMissing LineCategory = "mis"
	// CategoryPartial marks executed lines with unexecuted branch exits.
	CategoryPartial LineCategory = "par"
	// CategoryRun marks fully executed statements.
	CategoryRun LineCategory = "run"
	// CategoryNone marks lines that are not statements.
	CategoryNone LineCategory = ""
)

// LineData is the display record computed for one source line.
type LineData struct {
	Number           int
	Text             string
	Category         LineCategory
	Statement        bool
	ShortAnnotations []string
	LongAnnotations  []string
	Contexts         []string
	ContextsLabel    string
	ContextList      []string
}

// FileData bundles the per-line records for one file's report page.
type FileData struct {
	RelativePath string
	Nums         Numbers
	Lines        []LineData
}
