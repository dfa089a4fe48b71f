package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/nedbat/covcode/internal/controller"
	"github.com/nedbat/covcode/internal/domain"
	m "github.com/nedbat/covcode/internal/model"
)

var reportShowMissingFlag bool
var reportSortFlag string
var reportPrecisionFlag int
var reportFailUnderFlag float64
var reportSkipCoveredFlag bool
var reportSkipEmptyFlag bool
var reportIgnoreErrorsFlag bool
var reportIncludeFlags []string
var reportOmitFlags []string
var reportContextsFlags []string

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report coverage summary to the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			opts := reportOptions()

			if cmd.Flags().Changed("precision") {
				opts.Precision = reportPrecisionFlag
			}

			if cmd.Flags().Changed("skip-covered") {
				opts.SkipCovered = reportSkipCoveredFlag
			}

			if cmd.Flags().Changed("skip-empty") {
				opts.SkipEmpty = reportSkipEmptyFlag
			}

			if cmd.Flags().Changed("ignore-errors") {
				opts.IgnoreErrors = reportIgnoreErrorsFlag
			}

			if cmd.Flags().Changed("include") {
				opts.Include = reportIncludeFlags
			}

			if cmd.Flags().Changed("omit") {
				opts.Omit = reportOmitFlags
			}

			if cmd.Flags().Changed("contexts") {
				opts.Contexts = reportContextsFlags
			}

			rows, totals, err := workflow.TextReport(store, opts)
			if err != nil {
				return err
			}

			if err := sortSummaries(rows, reportSortFlag); err != nil {
				return err
			}

			showMissing := cfg.Report.ShowMissing || reportShowMissingFlag

			summaryErr := ui.Summary(rows, totals, controller.SummaryOptions{
				Precision:   opts.Precision,
				ShowMissing: showMissing,
				HasArcs:     store.HasArcs(),
			})
			if summaryErr != nil {
				return summaryErr
			}

			return domain.CheckFailUnder(totals.PercentCovered(), failUnder(cmd, reportFailUnderFlag), opts.Precision)
		},
	}
	cmd.Flags().BoolVarP(&reportShowMissingFlag, "show-missing", "m", false, "show line numbers of missing statements")
	cmd.Flags().StringVar(&reportSortFlag, "sort", "name", "column to sort the report by: name, stmts, miss, cover")
	cmd.Flags().IntVar(&reportPrecisionFlag, "precision", 0, "number of decimal digits in coverage percentages")
	cmd.Flags().Float64Var(&reportFailUnderFlag, "fail-under", 0, "exit with status 2 if total coverage is below this")
	cmd.Flags().BoolVar(&reportSkipCoveredFlag, "skip-covered", false, "skip files with 100% coverage")
	cmd.Flags().BoolVar(&reportSkipEmptyFlag, "skip-empty", false, "skip files with no statements")
	cmd.Flags().BoolVarP(&reportIgnoreErrorsFlag, "ignore-errors", "i", false, "ignore errors while reading source files")
	cmd.Flags().StringSliceVar(&reportIncludeFlags, "include", nil, "include only files matching these patterns")
	cmd.Flags().StringSliceVar(&reportOmitFlags, "omit", nil, "omit files matching these patterns")
	cmd.Flags().StringSliceVar(&reportContextsFlags, "contexts", nil, "only report data from these contexts (regex)")

	return cmd
}

// sortSummaries orders the report rows by the requested column. Rows come
// in sorted by name; the other orders put the worst-covered files last so
// they end up next to the TOTAL footer.
func sortSummaries(rows []m.FileSummary, column string) error {
	switch column {
	case "", "name":
		return nil
	case "stmts":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Nums.NStatements < rows[j].Nums.NStatements
		})
	case "miss":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Nums.NMissing < rows[j].Nums.NMissing
		})
	case "cover":
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].Nums.PercentCovered() > rows[j].Nums.PercentCovered()
		})
	default:
		return fmt.Errorf("invalid sort column %q", column)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
