package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nedbat/covcode/internal/coverdata"
)

var combineKeepFlag bool
var combineAppendFlag bool

// combineCmd represents the combine command.
var combineCmd = newCombineCmd()

func newCombineCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "combine [paths...]",
		Short: "Combine coverage data from parallel runs",
		Long: `Combine data from multiple coverage files into one data file.

Each argument is a data file or a directory to search for data files.
With no arguments, the directory of the data file is searched. Input
files are removed after combining unless --keep is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := workflow.Combine(cfg.DataFile, args, coverdata.CombineOptions{
				Keep:   combineKeepFlag,
				Append: combineAppendFlag,
			})
			if err != nil {
				return err
			}

			cmd.Printf("Combined data into %s\n", cfg.DataFile)

			return nil
		},
	}
	cmd.Flags().BoolVar(&combineKeepFlag, "keep", false, "keep input data files after combining")
	cmd.Flags().BoolVarP(&combineAppendFlag, "append", "a", false, "merge into existing data instead of replacing it")

	return cmd
}

func init() {
	rootCmd.AddCommand(combineCmd)
}
