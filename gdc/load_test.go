package gdc

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const sampleManifest = "id\tfilename\tmd5\tsize\tstate\n" +
	"f1\tf1.counts.tsv\taaa\t10\treleased\n" +
	"f2\tf2.maf.gz\tbbb\t20\treleased\n" +
	"f3\tf3.txt\tccc\t30\treleased\n"

const sampleSheet = "File ID\tFile Name\tData Category\tData Type\tProject ID\tCase ID\tSample ID\tSample Type\n" +
	"f1\tf1.counts.tsv\tTranscriptome Profiling\tGene Expression Quantification\tTCGA-BRCA\tcaseA\tcaseA-01A\tPrimary Tumor\n" +
	"f2\tf2.maf.gz\tSimple Nucleotide Variation\tMasked Somatic Mutation\tTCGA-BRCA\tcaseA, caseB\tcaseA-01A, caseB-01A\tPrimary Tumor\n" +
	"f9\tf9.txt\tClinical\tClinical Supplement\tTCGA-BRCA\tcaseZ\tcaseZ-01A\tPrimary Tumor\n"

func TestReadManifest(t *testing.T) {
	entries, err := ReadManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	want := []ManifestEntry{
		{ID: "f1", FileName: "f1.counts.tsv", MD5: "aaa"},
		{ID: "f2", FileName: "f2.maf.gz", MD5: "bbb"},
		{ID: "f3", FileName: "f3.txt", MD5: "ccc"},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("ReadManifest() mismatch (-want +got):\n%s", diff)
	}
}

func TestReadManifest_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyTable,
		},
		{
			name:    "missing md5 column",
			input:   "id\tfilename\nf1\tf1.txt\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "duplicate id",
			input:   "id\tfilename\tmd5\nf1\ta\tx\nf1\tb\ty\n",
			wantErr: ErrDuplicateFileID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadManifest(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadManifest() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadSampleSheet_Normalizes(t *testing.T) {
	sheet, err := ReadSampleSheet(strings.NewReader(sampleSheet))
	require.NoError(t, err)
	require.Equal(t, []string{
		"File_ID", "File_Name", "Data_Category", "Data_Type",
		"Project_ID", "Case_ID", "Sample_ID", "Sample_Type",
	}, sheet.Columns)
	require.Len(t, sheet.Rows, 3)
	require.Equal(t, "Transcriptome_Profiling", sheet.Rows[0][ColCategory])
	require.Equal(t, "Gene_Expression_Quantification", sheet.Rows[0][ColDataType])
	// other values keep their spaces
	require.Equal(t, "Primary Tumor", sheet.Rows[0]["Sample_Type"])
}

func TestReadSampleSheet_MissingColumn(t *testing.T) {
	_, err := ReadSampleSheet(strings.NewReader("File ID\tFile Name\tCase ID\nf1\ta\tc\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
}

func TestJoin_RightJoinOnManifest(t *testing.T) {
	manifest, err := ReadManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)
	sheet, err := ReadSampleSheet(strings.NewReader(sampleSheet))
	require.NoError(t, err)

	table, unmatched := Join(manifest, sheet)
	require.Equal(t, 3, table.Len())
	require.Equal(t, []string{"f9"}, unmatched)

	first := table.Get(0)
	require.Equal(t, "f1", first.FileID)
	require.Equal(t, "aaa", first.MD5)
	require.Equal(t, "./f1/f1.counts.tsv", first.Path)
	require.Equal(t, "caseA-01A", first.Value("Sample_ID"))
	require.True(t, first.HasMetadata())

	// no sample sheet row: manifest name, no metadata
	third := table.Get(2)
	require.Equal(t, "f3.txt", third.FileName)
	require.Equal(t, "./f3/f3.txt", third.Path)
	require.False(t, third.HasMetadata())
}

func TestSynthesizeSampleSheet(t *testing.T) {
	manifest, err := ReadManifest(strings.NewReader(sampleManifest))
	require.NoError(t, err)

	table, unmatched := Join(manifest, SynthesizeSampleSheet(manifest))
	require.Empty(t, unmatched)
	require.Equal(t, []string{ColFileID, ColFileName}, table.Columns())
	for r := range table.Iterate {
		require.False(t, r.HasMetadata(), "record %s should not be renamable", r.FileID)
		require.Equal(t, "./"+r.FileID+"/"+r.FileName, r.Path)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	manifestPath, sheetPath := writeDownload(t, dir, []fixtureFile{
		{id: fileID(1), name: fileID(1) + ".tsv", content: "a", caseID: "caseA", category: "Transcriptome Profiling", dataType: "Gene Expression Quantification"},
	})

	table, unmatched, err := Load(manifestPath, sheetPath)
	require.NoError(t, err)
	require.Empty(t, unmatched)
	require.Equal(t, 1, table.Len())
	require.Equal(t, md5Hex("a"), table.Get(0).MD5)

	table, _, err = Load(manifestPath, "")
	require.NoError(t, err)
	require.False(t, table.Get(0).HasMetadata())

	_, _, err = Load(manifestPath, sheetPath+".missing")
	require.Error(t, err)
}
