package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/gdcsort/gdc"
	"github.com/dendrascience/gdcsort/internal/progress"
)

type sortParams struct {
	manifest string
	sheet    string
	action   string
	cut      string
	verify   bool
	dir      string
}

// NewSortCmd creates and returns the sort subcommand for the gdcsort CLI.
// It runs the whole pipeline: load, check, plan and organize.
func NewSortCmd(a *app) *cobra.Command {
	var p sortParams

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Check a GDC download and organize it by category and type",
		Long: `Check a GDC download and organize it by data category and data type.

The manifest and sample sheet are joined on file id. Every file must be present
(and, with --verify, match its MD5) before anything is moved: otherwise the run
stops after writing allfiles.md5 and info_initial.tsv.

Each file is renamed to <case id>_<n><rest of name>, where <n> numbers the files
of one case within a category/type directory and the rest of the name is what
remains after --cut is applied. Cases listed together in one Case ID cell are
named MULTIPLE.

With the default action "none" nothing is copied or moved; the planned layout
is still written to info_final.tsv.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSort(cmd.OutOrStdout(), a.logger, p)
		},
	}

	cmd.Flags().StringVarP(&p.manifest, "manifest", "m", "", "Path to the GDC manifest file (required)")
	cmd.Flags().StringVarP(&p.sheet, "samplesheet", "s", "", "Path to the GDC sample sheet file")
	cmd.Flags().StringVarP(&p.action, "action", "a", a.opts.Action, "Action to perform with the files (none, copy or move)")
	cmd.Flags().StringVarP(&p.cut, "cut", "c", a.opts.Cut, "Prefixes to strip from file names, then the number of leading characters to drop (e.g. \"TCGA-,36\")")
	cmd.Flags().BoolVar(&p.verify, "verify", a.opts.Verify, "Verify MD5 checksums before organizing")
	cmd.Flags().StringVarP(&p.dir, "dir", "d", a.opts.Dir, "Directory holding the downloaded <file_id>/ directories")

	cmd.MarkFlagRequired("manifest")

	return cmd
}

func runSort(out io.Writer, log *logrus.Logger, p sortParams) error {
	started := time.Now()

	action, err := gdc.ParseAction(p.action)
	if err != nil {
		return err
	}
	cut, err := gdc.ParseCut(p.cut)
	if err != nil {
		return err
	}

	log.Info("Loading info...")
	t, unmatched, err := gdc.Load(p.manifest, p.sheet)
	if err != nil {
		return err
	}
	if len(unmatched) > 0 {
		log.WithField("count", len(unmatched)).Warn("Sample sheet rows without a manifest entry were dropped")
		for _, id := range unmatched {
			log.WithField("file_id", id).Debug("Dropped sample sheet row")
		}
	}

	report, err := checkAndReport(out, log, t, gdc.CheckOptions{Base: p.dir, Verify: p.verify})
	if err != nil {
		return err
	}

	log.Infof("Saving md5sums to '%s'", gdc.ChecksumFile)
	err = gdc.WriteFile(filepath.Join(p.dir, gdc.ChecksumFile), func(w io.Writer) error {
		return gdc.WriteChecksums(w, t)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", gdc.ChecksumFile, err)
	}
	log.Infof("Saving the table to '%s'", gdc.InitialTableFile)
	err = gdc.WriteFile(filepath.Join(p.dir, gdc.InitialTableFile), func(w io.Writer) error {
		return gdc.WriteTable(w, t, false)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", gdc.InitialTableFile, err)
	}

	if !report.Success() {
		log.Warn("Not all files were downloaded successfully, nothing was organized. Download the missing files and run again.")
		return nil
	}
	if p.sheet == "" {
		log.Warn("No sample sheet given, files cannot be renamed. Nothing was organized.")
		return nil
	}

	if err := gdc.Plan(t, cut); err != nil {
		return err
	}

	created, err := gdc.EnsureDirs(t, p.dir)
	for _, dir := range created {
		log.Infof("Creating folder %s", dir)
	}
	if err != nil {
		return err
	}

	log.Infof("%s files...", action.Verb())
	display := progress.New(out)
	if err := gdc.Execute(t, p.dir, action, display.Step); err != nil {
		return err
	}

	log.Infof("Saving the table to '%s'", gdc.FinalTableFile)
	err = gdc.WriteFile(filepath.Join(p.dir, gdc.FinalTableFile), func(w io.Writer) error {
		return gdc.WriteTable(w, t, true)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", gdc.FinalTableFile, err)
	}

	meta := gdc.NewMetadata(action, cut, started)
	meta.Finish(t, report, time.Now())
	if err := meta.Save(filepath.Join(p.dir, gdc.MetadataFile)); err != nil {
		return fmt.Errorf("writing %s: %w", gdc.MetadataFile, err)
	}
	log.WithFields(logrus.Fields{
		"run_id":  meta.RunID,
		"files":   meta.TotalFiles,
		"buckets": meta.Buckets,
		"action":  action,
	}).Info("Done")
	return nil
}

// checkAndReport runs the presence/integrity check and prints the counts.
func checkAndReport(out io.Writer, log *logrus.Logger, t *gdc.Table, opts gdc.CheckOptions) (gdc.CheckReport, error) {
	if opts.Verify {
		log.Info("Checking if data was downloaded successfully (verifying md5 checksums):")
	} else {
		log.Info("Checking if data was downloaded successfully:")
	}
	report := gdc.Check(t, opts)
	for _, problem := range report.Problems {
		log.Warn(problem)
	}
	if _, err := fmt.Fprintf(out, "OK: %d\nNot OK: %d\n", report.OK, report.NotOK()); err != nil {
		return report, err
	}
	return report, nil
}
