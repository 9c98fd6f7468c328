package gdc

import (
	"fmt"
	"os"
	"path/filepath"
)

type (
	// CheckOptions controls Check.
	CheckOptions struct {
		// Base is the directory holding the downloaded <file_id>/ directories.
		Base string
		// Verify also compares each file's MD5 with the manifest.
		Verify bool
	}

	// CheckReport summarizes a presence/integrity check.
	CheckReport struct {
		Total     int
		OK        int
		Missing   int
		Corrupted int
		Verified  bool
		// Problems has one line per file that is not ok.
		Problems []string
	}
)

// NotOK is the number of files that are missing or corrupted.
func (c CheckReport) NotOK() int {
	return c.Missing + c.Corrupted
}

// Success reports whether every file passed.
func (c CheckReport) Success() bool {
	return c.NotOK() == 0
}

// Check looks for <base>/<file_id>/<file_name> for every record, optionally
// verifies its checksum, and sets each record's OK flag. Failures are
// counted on the report rather than returned.
func Check(t *Table, opts CheckOptions) CheckReport {
	base := opts.Base
	if base == "" {
		base = "."
	}
	report := CheckReport{Verified: opts.Verify}
	for r := range t.Iterate {
		r.OK = report.add(r.SourcePath(base), r.Path, r.MD5, opts.Verify)
	}
	return report
}

// CheckOrganized verifies an organized tree: every record's newpath under
// base must exist and match its checksum. Records are not modified.
func CheckOrganized(t *Table, base string) CheckReport {
	if base == "" {
		base = "."
	}
	report := CheckReport{Verified: true}
	for r := range t.Iterate {
		report.add(filepath.Join(base, r.NewPath), r.NewPath, r.MD5, true)
	}
	return report
}

// add checks one file, counts the outcome and reports whether it passed.
// name is how the file is referred to in problem lines.
func (c *CheckReport) add(path, name, want string, verify bool) bool {
	c.Total++
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		c.Missing++
		c.Problems = append(c.Problems, fmt.Sprintf("missing: %s", name))
		return false
	}
	if verify {
		sum, err := FileMD5(path)
		if err != nil {
			c.Corrupted++
			c.Problems = append(c.Problems, fmt.Sprintf("unreadable: %s: %v", name, err))
			return false
		}
		if !SameDigest(sum, want) {
			c.Corrupted++
			c.Problems = append(c.Problems, fmt.Sprintf("checksum mismatch: %s: expected %s, got %s", name, want, sum))
			return false
		}
	}
	c.OK++
	return true
}
