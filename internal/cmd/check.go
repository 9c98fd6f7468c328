package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dendrascience/gdcsort/gdc"
)

// NewCheckCmd creates and returns the check subcommand for the gdcsort CLI.
// It checks a download without writing or moving anything.
func NewCheckCmd(a *app) *cobra.Command {
	var (
		manifestPath string
		sheetPath    string
		dir          string
		verify       bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that every file in the manifest was downloaded",
		Long: `Check that every file listed in the manifest exists as <file_id>/<file_name>.

With --verify each file's MD5 is also compared with the manifest. Nothing is
written or moved. The command exits with an error when any file is missing or
corrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _, err := gdc.Load(manifestPath, sheetPath)
			if err != nil {
				return err
			}
			report, err := checkAndReport(cmd.OutOrStdout(), a.logger, t, gdc.CheckOptions{Base: dir, Verify: verify})
			if err != nil {
				return err
			}
			if !report.Success() {
				return fmt.Errorf("%d of %d files are missing or corrupted", report.NotOK(), report.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Path to the GDC manifest file (required)")
	cmd.Flags().StringVarP(&sheetPath, "samplesheet", "s", "", "Path to the GDC sample sheet file")
	cmd.Flags().StringVarP(&dir, "dir", "d", a.opts.Dir, "Directory holding the downloaded <file_id>/ directories")
	cmd.Flags().BoolVar(&verify, "verify", a.opts.Verify, "Verify MD5 checksums")

	cmd.MarkFlagRequired("manifest")

	return cmd
}
