package cmd

import (
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "github.com/nedbat/covcode/internal/model"
)

// debugCmd represents the debug command.
var debugCmd = newDebugCmd()

func newDebugCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debug [data|config]",
		Short: "Display diagnostic information",
		Long: `Display internal information for diagnosing problems.

"covcode debug data" dumps a summary of the coverage data file: the
measurement mode, the measured contexts, and per-file line and branch
counts. "covcode debug config" dumps the effective configuration after
merging the config file, environment and defaults.`,
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"data", "config"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && args[0] == "config" {
				return dumpConfig(cmd)
			}

			store, err := loadStore()
			if err != nil {
				return err
			}

			cmd.Printf("path: %s\n", cfg.DataFile)
			cmd.Printf("mode: %s\n", store.Mode())
			cmd.Printf("has_arcs: %v\n", store.HasArcs())

			contexts := store.MeasuredContexts()
			cmd.Printf("contexts: %d\n", len(contexts))

			for _, context := range contexts {
				if context == "" {
					context = "(empty)"
				}

				cmd.Printf("    %s\n", context)
			}

			files := store.MeasuredFiles()
			cmd.Printf("files: %d\n", len(files))

			for _, file := range files {
				lines := sortedLineNumbers(store.LineCounts(file))
				cmd.Printf("    %s: %d lines", file, len(lines))

				if arcs := store.ArcCounts(file); len(arcs) > 0 {
					cmd.Printf(", %d arcs", len(arcs))
				}

				cmd.Printf(" [%s]\n", m.FormatLineRanges(lines))
			}

			return nil
		},
	}

	return cmd
}

func dumpConfig(cmd *cobra.Command) error {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	cmd.Printf("%s", out)

	return nil
}

func sortedLineNumbers(counts map[int]int) []int {
	lines := make([]int, 0, len(counts))
	for line := range counts {
		lines = append(lines, line)
	}

	sort.Ints(lines)

	return lines
}

func init() {
	rootCmd.AddCommand(debugCmd)
}
