package gdc

import (
	"crypto/md5"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fixtureFile is one downloaded file plus its sample sheet metadata.
type fixtureFile struct {
	id       string
	name     string
	content  string
	caseID   string
	category string
	dataType string
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// writeDownload lays out <dir>/<id>/<name> for every fixture and returns the
// manifest and sample sheet paths.
func writeDownload(t *testing.T, dir string, files []fixtureFile) (string, string) {
	t.Helper()
	var manifest, sheet strings.Builder
	manifest.WriteString("id\tfilename\tmd5\tsize\tstate\n")
	sheet.WriteString("File ID\tFile Name\tData Category\tData Type\tProject ID\tCase ID\tSample ID\tSample Type\n")
	for _, f := range files {
		if err := os.MkdirAll(filepath.Join(dir, f.id), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, f.id, f.name), []byte(f.content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		manifest.WriteString(strings.Join([]string{f.id, f.name, md5Hex(f.content), "1", "released"}, "\t") + "\n")
		sheet.WriteString(strings.Join([]string{f.id, f.name, f.category, f.dataType, "TCGA-BRCA", f.caseID, "S1", "Primary Tumor"}, "\t") + "\n")
	}
	manifestPath := filepath.Join(dir, "manifest.txt")
	sheetPath := filepath.Join(dir, "sheet.tsv")
	if err := os.WriteFile(manifestPath, []byte(manifest.String()), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if err := os.WriteFile(sheetPath, []byte(sheet.String()), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	return manifestPath, sheetPath
}

// fileID builds a 36-character id that sorts by n.
func fileID(n int) string {
	s := strings.Repeat("0", 36)
	d := []byte(s)
	d[35] = byte('0' + n%10)
	d[34] = byte('0' + (n/10)%10)
	return string(d)
}
