package cmd

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"encoding/csv"
	"fmt"
	"io"
	mrand "math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/dendrascience/gdcsort/gdc"
)

// Names of the seeded input files.
const (
	SeedManifestFile = "gdc_manifest.txt"
	SeedSheetFile    = "gdc_sample_sheet.tsv"
)

// seedKind is one data category/type pair and the file name suffix GDC uses
// for it.
type seedKind struct {
	category string
	dataType string
	suffix   string
}

var seedKinds = []seedKind{
	{"Transcriptome Profiling", "Gene Expression Quantification", ".rna_seq.augmented_star_gene_counts.tsv"},
	{"Simple Nucleotide Variation", "Masked Somatic Mutation", ".wxs.aliquot_ensemble_masked.maf.gz"},
	{"Copy Number Variation", "Gene Level Copy Number", ".wgs.ascat2.gene_level.copy_number_variation.tsv"},
	{"DNA Methylation", "Methylation Beta Value", ".methylation_array.sesame.level3betas.txt"},
}

type seedResult struct {
	ManifestPath string
	SheetPath    string
	Files        int
}

// NewSeedCmd creates and returns the seed subcommand for the gdcsort CLI.
// It generates a synthetic GDC download to try the other commands on.
func NewSeedCmd(a *app) *cobra.Command {
	var (
		outputPath string
		fileCount  int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic GDC download",
		Long: `Generate a synthetic GDC download for trying gdcsort.

Creates <file_id>/<file_name> directories with UUID file ids, a manifest
(gdc_manifest.txt) with their MD5 checksums and a sample sheet
(gdc_sample_sheet.tsv). Cases repeat within a category and type, and some
rows list two cases, so the renaming rules are exercised. A non-zero --seed
makes the output reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := runSeed(a.logger, outputPath, fileCount, seed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d files in %s\n", res.Files, outputPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Try: gdcsort sort -d %s -m %s -s %s\n", outputPath, res.ManifestPath, res.SheetPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to output directory (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "n", 20, "Number of files to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Random seed, 0 for a random one")

	cmd.MarkFlagRequired("output")

	return cmd
}

func newSeedSource(seed uint64) (*mrand.ChaCha8, error) {
	var key [32]byte
	if seed == 0 {
		if _, err := rand.Read(key[:]); err != nil {
			return nil, err
		}
	} else {
		binary.LittleEndian.PutUint64(key[:], seed)
	}
	return mrand.NewChaCha8(key), nil
}

func runSeed(log *logrus.Logger, outputPath string, fileCount int, seed uint64) (seedResult, error) {
	if fileCount < 1 {
		return seedResult{}, fmt.Errorf("count must be at least 1, got %d", fileCount)
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return seedResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	src, err := newSeedSource(seed)
	if err != nil {
		return seedResult{}, err
	}
	rng := mrand.New(src)

	cases := make([]string, max(1, fileCount/3))
	for i := range cases {
		cases[i] = fmt.Sprintf("TCGA-%02d-%04d", rng.IntN(100), i)
	}

	manifest := [][]string{{"id", "filename", "md5", "size", "state"}}
	sheet := [][]string{{"File ID", "File Name", "Data Category", "Data Type", "Project ID", "Case ID", "Sample ID", "Sample Type"}}

	for i := range fileCount {
		id, err := uuid.NewRandomFromReader(src)
		if err != nil {
			return seedResult{}, err
		}
		kind := seedKinds[rng.IntN(len(seedKinds))]
		name := id.String() + kind.suffix

		caseID := cases[rng.IntN(len(cases))]
		if i%7 == 6 && len(cases) > 1 {
			other := cases[(slices.Index(cases, caseID)+1)%len(cases)]
			caseID = caseID + ", " + other
		}
		sampleIDs := make([]string, 0, 2)
		for _, c := range strings.Split(caseID, ", ") {
			sampleIDs = append(sampleIDs, c+"-01A")
		}

		var content strings.Builder
		content.WriteString("gene_id\tcount\n")
		for range 5 + rng.IntN(20) {
			fmt.Fprintf(&content, "ENSG%011d\t%d\n", rng.IntN(100000), rng.IntN(5000))
		}
		data := []byte(content.String())

		dir := filepath.Join(outputPath, id.String())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return seedResult{}, err
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return seedResult{}, err
		}
		sum, err := gdc.HashMD5(bytes.NewReader(data))
		if err != nil {
			return seedResult{}, err
		}

		manifest = append(manifest, []string{id.String(), name, sum, strconv.Itoa(len(data)), "released"})
		sheet = append(sheet, []string{
			id.String(), name, kind.category, kind.dataType, "TCGA-BRCA",
			caseID, strings.Join(sampleIDs, ", "), "Primary Tumor",
		})

		if log != nil && (i+1)%1000 == 0 {
			log.Infof("Created %d/%d files...", i+1, fileCount)
		}
	}

	res := seedResult{
		ManifestPath: filepath.Join(outputPath, SeedManifestFile),
		SheetPath:    filepath.Join(outputPath, SeedSheetFile),
		Files:        fileCount,
	}
	if err := writeTSVFile(res.ManifestPath, manifest); err != nil {
		return seedResult{}, err
	}
	if err := writeTSVFile(res.SheetPath, sheet); err != nil {
		return seedResult{}, err
	}
	return res, nil
}

func writeTSVFile(path string, rows [][]string) error {
	return gdc.WriteFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		cw.Comma = '\t'
		if err := cw.WriteAll(rows); err != nil {
			return err
		}
		return cw.Error()
	})
}
