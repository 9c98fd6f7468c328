package cmd

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/gdcsort/gdc"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// seedDownload creates a reproducible synthetic download in a temp dir.
func seedDownload(t *testing.T, count int) (string, seedResult) {
	t.Helper()
	dir := t.TempDir()
	res, err := runSeed(quietLogger(), dir, count, 42)
	require.NoError(t, err)
	return dir, res
}

func sortOpts(dir string, res seedResult, action string) sortParams {
	return sortParams{
		manifest: res.ManifestPath,
		sheet:    res.SheetPath,
		action:   action,
		cut:      "36",
		verify:   true,
		dir:      dir,
	}
}

func readFinal(t *testing.T, dir string) *gdc.Table {
	t.Helper()
	f, err := os.Open(filepath.Join(dir, gdc.FinalTableFile))
	require.NoError(t, err)
	defer f.Close()
	table, err := gdc.ReadFinalTable(f)
	require.NoError(t, err)
	return table
}

// organizedFiles hashes every file under the category directories.
func organizedFiles(t *testing.T, dir string, table *gdc.Table) map[string]string {
	t.Helper()
	files := make(map[string]string)
	for _, category := range table.Categories() {
		root := filepath.Join(dir, category)
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			sum, err := gdc.FileMD5(path)
			files[path] = sum
			return err
		})
		require.NoError(t, err)
	}
	return files
}

func TestRunSort_Copy(t *testing.T) {
	dir, res := seedDownload(t, 30)

	var out bytes.Buffer
	require.NoError(t, runSort(&out, quietLogger(), sortOpts(dir, res, "copy")))
	require.Contains(t, out.String(), "OK: 30\nNot OK: 0\n")
	require.Contains(t, out.String(), "30 / 30 Copying from: ")

	for _, name := range []string{gdc.ChecksumFile, gdc.InitialTableFile, gdc.FinalTableFile, gdc.MetadataFile} {
		require.FileExists(t, filepath.Join(dir, name))
	}

	table := readFinal(t, dir)
	require.Equal(t, 30, table.Len())
	for r := range table.Iterate {
		require.FileExists(t, r.SourcePath(dir), "copy keeps the download")
		require.True(t, strings.HasPrefix(r.NewName, r.UniqueID))
		if strings.Contains(r.CaseID, ",") {
			require.True(t, strings.HasPrefix(r.UniqueID, gdc.MultipleCaseID+"_"), "unique id %s", r.UniqueID)
		}
	}

	var verifyOut bytes.Buffer
	require.NoError(t, runVerify(&verifyOut, quietLogger(), dir, filepath.Join(dir, gdc.FinalTableFile), false))
	require.Contains(t, verifyOut.String(), "Files checked: 30")
}

func TestRunSort_Move(t *testing.T) {
	dir, res := seedDownload(t, 12)

	require.NoError(t, runSort(io.Discard, quietLogger(), sortOpts(dir, res, "move")))
	table := readFinal(t, dir)
	for r := range table.Iterate {
		require.NoFileExists(t, r.SourcePath(dir))
		require.FileExists(t, filepath.Join(dir, r.NewPath))
	}
	require.NoError(t, runVerify(io.Discard, quietLogger(), dir, filepath.Join(dir, gdc.FinalTableFile), true))
}

func TestRunSort_NoneRerunAfterCopy(t *testing.T) {
	dir, res := seedDownload(t, 15)
	require.NoError(t, runSort(io.Discard, quietLogger(), sortOpts(dir, res, "copy")))
	table := readFinal(t, dir)
	before := organizedFiles(t, dir, table)

	finalBefore, err := os.ReadFile(filepath.Join(dir, gdc.FinalTableFile))
	require.NoError(t, err)

	require.NoError(t, runSort(io.Discard, quietLogger(), sortOpts(dir, res, "none")))
	if diff := cmp.Diff(before, organizedFiles(t, dir, table)); diff != "" {
		t.Errorf("rerun with none changed the organized tree (-before +after):\n%s", diff)
	}
	finalAfter, err := os.ReadFile(filepath.Join(dir, gdc.FinalTableFile))
	require.NoError(t, err)
	require.Equal(t, string(finalBefore), string(finalAfter), "the plan is deterministic")
}

func TestRunSort_MissingFileStopsBeforeOrganizing(t *testing.T) {
	dir, res := seedDownload(t, 10)
	initial, _, err := gdc.Load(res.ManifestPath, res.SheetPath)
	require.NoError(t, err)
	require.NoError(t, os.Remove(initial.Get(3).SourcePath(dir)))

	var out bytes.Buffer
	require.NoError(t, runSort(&out, quietLogger(), sortOpts(dir, res, "copy")))
	require.Contains(t, out.String(), "OK: 9\nNot OK: 1\n")
	require.FileExists(t, filepath.Join(dir, gdc.ChecksumFile))
	require.FileExists(t, filepath.Join(dir, gdc.InitialTableFile))
	require.NoFileExists(t, filepath.Join(dir, gdc.FinalTableFile))

	data, err := os.ReadFile(filepath.Join(dir, gdc.InitialTableFile))
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(string(data), "\tfalse\n"))
}

func TestRunSort_CorruptedFileStopsWithVerify(t *testing.T) {
	dir, res := seedDownload(t, 10)
	initial, _, err := gdc.Load(res.ManifestPath, res.SheetPath)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(initial.Get(0).SourcePath(dir), []byte("truncated"), 0o644))

	var out bytes.Buffer
	require.NoError(t, runSort(&out, quietLogger(), sortOpts(dir, res, "copy")))
	require.Contains(t, out.String(), "Not OK: 1\n")
	require.NoFileExists(t, filepath.Join(dir, gdc.FinalTableFile))
}

func TestRunSort_WithoutSampleSheet(t *testing.T) {
	dir, res := seedDownload(t, 5)
	p := sortOpts(dir, res, "copy")
	p.sheet = ""

	require.NoError(t, runSort(io.Discard, quietLogger(), p))
	require.FileExists(t, filepath.Join(dir, gdc.InitialTableFile))
	require.NoFileExists(t, filepath.Join(dir, gdc.FinalTableFile))
}

func TestRunSort_InvalidOptions(t *testing.T) {
	dir, res := seedDownload(t, 3)

	p := sortOpts(dir, res, "link")
	require.ErrorIs(t, runSort(io.Discard, quietLogger(), p), gdc.ErrInvalidAction)

	p = sortOpts(dir, res, "copy")
	p.cut = "-4"
	require.ErrorIs(t, runSort(io.Discard, quietLogger(), p), gdc.ErrInvalidCut)
}

func TestRunVerify_DetectsCorruption(t *testing.T) {
	dir, res := seedDownload(t, 8)
	require.NoError(t, runSort(io.Discard, quietLogger(), sortOpts(dir, res, "copy")))
	table := readFinal(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, table.Get(2).NewPath), []byte("bad"), 0o644))

	var out bytes.Buffer
	err := runVerify(&out, quietLogger(), dir, filepath.Join(dir, gdc.FinalTableFile), false)
	require.Error(t, err)
	require.Contains(t, out.String(), "Corrupted: 1")
}
