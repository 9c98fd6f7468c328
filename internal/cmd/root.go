package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/gdcsort/internal/config"
	"github.com/dendrascience/gdcsort/version"
)

// app carries the settings and logger shared by the subcommands. Options
// hold the environment defaults; each command binds them to its flags.
type app struct {
	opts    config.Options
	loadErr error
	logger  *logrus.Logger
}

// NewRootCmd creates and returns the root cobra command for the gdcsort CLI.
// It loads the environment defaults and sets up all subcommands.
func NewRootCmd() *cobra.Command {
	a := &app{}
	a.opts, a.loadErr = config.Load()
	if a.loadErr != nil {
		// keep flags usable; the error is reported when a command runs
		a.opts = config.Options{Action: "none", Cut: "36", Dir: ".", LogLevel: "info"}
	}

	rootCmd := &cobra.Command{
		Use:   "gdcsort",
		Short: "gdcsort - organize files downloaded from the GDC data portal",
		Long: `gdcsort reorganizes files downloaded in bulk from the GDC data portal.

It joins the download manifest with the sample sheet, checks that every file
was downloaded (optionally verifying MD5 checksums), and then copies or moves
each file into a <Data_Category>/<Data_Type>/ tree, renamed so it starts with
its case id.

Run it from the directory holding the downloaded <file_id>/ directories, or
point --dir at it.

Use subcommands to perform different operations:
  - sort: check the download and organize it
  - check: only check that the download is complete
  - verify: re-check an organized tree against info_final.tsv
  - seed: generate a synthetic download to try the tool on
  - version: print version information`,
		Version:       version.GetFullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.loadErr != nil {
				return a.loadErr
			}
			if err := a.opts.Validate(); err != nil {
				return err
			}
			a.logger = a.opts.Logger(cmd.ErrOrStderr())
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.opts.LogLevel, "log-level", a.opts.LogLevel, "Log level (silent, error, warn, info, debug)")

	groupOrganize := "organize"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupOrganize,
		Title: "Organizing",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	sortCmd := NewSortCmd(a)
	checkCmd := NewCheckCmd(a)
	verifyCmd := NewVerifyCmd(a)
	seedCmd := NewSeedCmd(a)
	versionCmd := NewVersionCmd()

	sortCmd.GroupID = groupOrganize
	checkCmd.GroupID = groupUtilities
	verifyCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(sortCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}
