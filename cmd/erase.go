package cmd

import (
	"github.com/spf13/cobra"
)

// eraseCmd represents the erase command.
var eraseCmd = newEraseCmd()

func newEraseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "erase",
		Short: "Erase previously collected coverage data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := workflow.Erase(cfg.DataFile); err != nil {
				return err
			}

			cmd.Printf("Erased %s\n", cfg.DataFile)

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(eraseCmd)
}
