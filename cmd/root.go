// Package cmd provides the root command and CLI setup for covcode.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nedbat/covcode/internal/adapter"
	"github.com/nedbat/covcode/internal/config"
	"github.com/nedbat/covcode/internal/controller"
	"github.com/nedbat/covcode/internal/coverdata"
	"github.com/nedbat/covcode/internal/domain"
	"github.com/nedbat/covcode/internal/version"
)

// Exit codes. Failing the fail-under threshold is distinguished from
// ordinary errors so CI scripts can tell the two apart.
const (
	exitOK        = 0
	exitError     = 1
	exitFailUnder = 2
)

var cfg *config.Config
var logger *slog.Logger
var sourceFS adapter.SourceFS
var workflow domain.Workflow
var ui controller.UI

var configFlag string
var dataFileFlag string
var debugFlag bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "covcode",
		Short:   "Code coverage measurement and reporting",
		Version: version.String(),
		Long: `Covcode reports code coverage from recorded execution data.

It reads a coverage data file (either covcode's own format or a Go
coverprofile), analyzes which lines and branches ran, and produces
terminal summaries or an annotated HTML report. HTML reports are
incremental: pages for unchanged files are reused across runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setup(cmd)
		},
	}
	cmd.PersistentFlags().StringVar(&configFlag, "rcfile", "", "configuration file to read (default .covcode.yaml)")
	cmd.PersistentFlags().StringVar(&dataFileFlag, "data-file", "", "coverage data file to read")
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	return cmd
}

// setup loads configuration and wires the adapters. It runs before every
// subcommand.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	cfg = loaded

	if dataFileFlag != "" {
		cfg.DataFile = dataFileFlag
	}

	if debugFlag {
		cfg.Logging.Level = "debug"
	}

	logger = config.NewLogger(cmd.ErrOrStderr(), cfg.Logging)
	sourceFS = adapter.NewLocalSourceFS(cfg.Source)
	workflow = domain.NewWorkflow(sourceFS, logger)
	ui = controller.NewUI(cmd, controller.IsTTY(os.Stdout))

	return nil
}

// loadStore reads the coverage data file. A missing or empty file is the
// "no data to report" condition.
func loadStore() (*coverdata.Store, error) {
	store, err := coverdata.Load(cfg.DataFile)
	if err != nil {
		if errors.Is(err, coverdata.ErrNoDataFile) {
			return nil, domain.ErrNoDataToReport
		}

		return nil, err
	}

	if store.IsEmpty() {
		return nil, domain.ErrNoDataToReport
	}

	return store, nil
}

// reportOptions merges the configuration with the per-command overrides.
func reportOptions() domain.ReportOptions {
	return domain.ReportOptions{
		Precision:       cfg.Report.Precision,
		Include:         cfg.Report.Include,
		Omit:            cfg.Report.Omit,
		ExcludePatterns: cfg.Report.ExcludeLines,
		Contexts:        cfg.Report.Contexts,
		SkipCovered:     cfg.Report.SkipCovered,
		SkipEmpty:       cfg.Report.SkipEmpty,
		IgnoreErrors:    cfg.Report.IgnoreErrors,
	}
}

// Execute runs the root command and maps errors to exit codes.
// This is called by main.main().
func Execute() {
	os.Exit(execute(rootCmd))
}

func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return exitOK
	}

	fmt.Fprintln(cmd.ErrOrStderr(), err)

	if errors.Is(err, domain.ErrFailUnder) {
		return exitFailUnder
	}

	return exitError
}
