package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nedbat/covcode/internal/controller"
)

var viewShowContextsFlag bool
var viewContextsFlags []string

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view FILE",
		Short: "View one file's annotated coverage in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := loadStore()
			if err != nil {
				return err
			}

			opts := reportOptions()
			opts.ShowContexts = viewShowContextsFlag

			if cmd.Flags().Changed("contexts") {
				opts.Contexts = viewContextsFlags
			}

			fd, err := workflow.FileView(store, args[0], opts)
			if err != nil {
				return err
			}

			return ui.Browse(fd, controller.SummaryOptions{
				Precision: opts.Precision,
				HasArcs:   store.HasArcs(),
			})
		},
	}
	cmd.Flags().BoolVar(&viewShowContextsFlag, "show-contexts", false, "annotate lines with the contexts that ran them")
	cmd.Flags().StringSliceVar(&viewContextsFlags, "contexts", nil, "only report data from these contexts (regex)")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
