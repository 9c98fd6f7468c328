package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/gdcsort/gdc"
)

// NewVerifyCmd creates and returns the verify subcommand for the gdcsort CLI.
// It re-checks an organized tree against the final table of a previous run.
func NewVerifyCmd(a *app) *cobra.Command {
	var (
		dir       string
		tablePath string
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify an organized tree against info_final.tsv",
		Long: `Verify an organized tree against the info_final.tsv written by sort.

Every newpath in the table must exist under --dir and match the md5 recorded
for it. This is useful after a copy or move, and after moving the organized
tree somewhere else. The command exits with an error when any file fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tablePath == "" {
				tablePath = filepath.Join(dir, gdc.FinalTableFile)
			}
			return runVerify(cmd.OutOrStdout(), a.logger, dir, tablePath, verbose)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", a.opts.Dir, "Root of the organized tree")
	cmd.Flags().StringVarP(&tablePath, "table", "t", "", "Path to info_final.tsv (default <dir>/info_final.tsv)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

func runVerify(out io.Writer, log *logrus.Logger, dir, tablePath string, verbose bool) error {
	f, err := os.Open(tablePath)
	if err != nil {
		return err
	}
	defer f.Close()
	t, err := gdc.ReadFinalTable(f)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(out, "Verifying %d files under %s\n", t.Len(), dir)
	}
	report := gdc.CheckOrganized(t, dir)
	for _, problem := range report.Problems {
		log.Warn(problem)
	}

	fmt.Fprintf(out, "\nVerification complete:\n")
	fmt.Fprintf(out, "  Files checked: %d\n", report.Total)
	fmt.Fprintf(out, "  Missing: %d\n", report.Missing)
	fmt.Fprintf(out, "  Corrupted: %d\n", report.Corrupted)

	if !report.Success() {
		return fmt.Errorf("%d of %d organized files failed verification", report.NotOK(), report.Total)
	}
	return nil
}
