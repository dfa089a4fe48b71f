package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nedbat/covcode/internal/adapter"
	"github.com/nedbat/covcode/internal/domain"
	m "github.com/nedbat/covcode/internal/model"
)

var htmlDirFlag string
var htmlTitleFlag string
var htmlPrecisionFlag int
var htmlFailUnderFlag float64
var htmlSkipCoveredFlag bool
var htmlSkipEmptyFlag bool
var htmlShowContextsFlag bool
var htmlIgnoreErrorsFlag bool
var htmlIncludeFlags []string
var htmlOmitFlags []string
var htmlContextsFlags []string

// htmlCmd represents the html command.
var htmlCmd = newHTMLCmd()

func newHTMLCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "html [patterns...]",
		Short: "Create an HTML report",
		Long: `Create an HTML report of coverage results.

Each measured source file gets an annotated page, plus an index and a
collapsible package tree. Pages for files whose coverage data, source
text and report settings are unchanged since the previous run are
reused instead of regenerated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			opts := reportOptions()
			opts.Dir = cfg.HTML.Dir
			opts.Title = cfg.HTML.Title
			opts.ShowContexts = cfg.HTML.ShowContexts || htmlShowContextsFlag

			applyHTMLFlags(cmd, &opts)

			// Positional patterns narrow the report like --include.
			opts.Include = append(opts.Include, args...)

			percent, err := workflow.HTMLReport(store, opts)
			if err != nil {
				return err
			}

			cmd.Printf("Wrote HTML report to %s\n", filepath.Join(opts.Dir, adapter.IndexFilename))
			cmd.Printf("Total coverage: %s%%\n", m.DisplayCovered(percent, opts.Precision))

			return domain.CheckFailUnder(percent, failUnder(cmd, htmlFailUnderFlag), opts.Precision)
		},
	}
	cmd.Flags().StringVarP(&htmlDirFlag, "directory", "d", "", "directory to write the report to")
	cmd.Flags().StringVar(&htmlTitleFlag, "title", "", "title text for the report")
	cmd.Flags().IntVar(&htmlPrecisionFlag, "precision", 0, "number of decimal digits in coverage percentages")
	cmd.Flags().Float64Var(&htmlFailUnderFlag, "fail-under", 0, "exit with status 2 if total coverage is below this")
	cmd.Flags().BoolVar(&htmlSkipCoveredFlag, "skip-covered", false, "skip files with 100% coverage")
	cmd.Flags().BoolVar(&htmlSkipEmptyFlag, "skip-empty", false, "skip files with no statements")
	cmd.Flags().BoolVar(&htmlShowContextsFlag, "show-contexts", false, "annotate lines with the contexts that ran them")
	cmd.Flags().BoolVarP(&htmlIgnoreErrorsFlag, "ignore-errors", "i", false, "ignore errors while reading source files")
	cmd.Flags().StringSliceVar(&htmlIncludeFlags, "include", nil, "include only files matching these patterns")
	cmd.Flags().StringSliceVar(&htmlOmitFlags, "omit", nil, "omit files matching these patterns")
	cmd.Flags().StringSliceVar(&htmlContextsFlags, "contexts", nil, "only report data from these contexts (regex)")

	return cmd
}

// applyHTMLFlags overrides configured values with any flags the user set.
func applyHTMLFlags(cmd *cobra.Command, opts *domain.ReportOptions) {
	if cmd.Flags().Changed("directory") {
		opts.Dir = htmlDirFlag
	}

	if cmd.Flags().Changed("title") {
		opts.Title = htmlTitleFlag
	}

	if cmd.Flags().Changed("precision") {
		opts.Precision = htmlPrecisionFlag
	}

	if cmd.Flags().Changed("skip-covered") {
		opts.SkipCovered = htmlSkipCoveredFlag
	}

	if cmd.Flags().Changed("skip-empty") {
		opts.SkipEmpty = htmlSkipEmptyFlag
	}

	if cmd.Flags().Changed("ignore-errors") {
		opts.IgnoreErrors = htmlIgnoreErrorsFlag
	}

	if cmd.Flags().Changed("include") {
		opts.Include = htmlIncludeFlags
	}

	if cmd.Flags().Changed("omit") {
		opts.Omit = htmlOmitFlags
	}

	if cmd.Flags().Changed("contexts") {
		opts.Contexts = htmlContextsFlags
	}
}

// failUnder picks the flag value when set, otherwise the configured one.
func failUnder(cmd *cobra.Command, flagValue float64) float64 {
	if cmd.Flags().Changed("fail-under") {
		return flagValue
	}

	return cfg.Report.FailUnder
}

func init() {
	rootCmd.AddCommand(htmlCmd)
}
