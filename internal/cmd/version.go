package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dendrascience/gdcsort/version"
)

// NewVersionCmd creates and returns the version subcommand for the gdcsort CLI.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version, commit and build date",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version.PrintVersion(cmd.OutOrStdout(), "gdcsort")
		},
	}
}
