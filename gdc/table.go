package gdc

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"
)

// Sample sheet columns, after spaces are replaced with underscores.
const (
	ColFileID   = "File_ID"
	ColFileName = "File_Name"
	ColCaseID   = "Case_ID"
	ColCategory = "Data_Category"
	ColDataType = "Data_Type"
)

// Derived columns appended to the output tables.
const (
	ColMD5      = "md5"
	ColPath     = "path"
	ColOK       = "ok"
	ColUniqueID = "unique_id"
	ColNewName  = "newname"
	ColNewPath  = "newpath"
)

type (
	// Record is one manifest entry joined with its sample sheet row.
	Record struct {
		FileID   string // manifest id, also the download directory name
		FileName string // original file name inside the download directory
		CaseID   string // raw Case_ID cell, possibly a comma-joined list
		Category string // Data_Category with spaces replaced
		DataType string // Data_Type with spaces replaced
		MD5      string // expected checksum from the manifest
		Path     string // ./<file_id>/<file_name>
		OK       bool   // present on disk, and checksum-verified when requested

		UniqueID string // case id plus a counter, unique within the bucket
		NewName  string // destination file name
		NewPath  string // <category>/<type>/<newname>

		// Fields holds every sample sheet cell by normalized column name,
		// including columns the tool does not interpret.
		Fields map[string]string
	}

	// Bucket identifies one destination directory.
	Bucket struct {
		Category string
		DataType string
	}

	// Table is the in-memory join that every stage mutates in place.
	Table struct {
		columns []string
		records []Record
	}
)

// NewTable returns a table whose sample sheet columns are columns.
func NewTable(columns []string) *Table {
	return &Table{columns: slices.Clone(columns)}
}

// Dir is the bucket's directory relative to the organized root.
func (b Bucket) Dir() string {
	return filepath.Join(b.Category, b.DataType)
}

// Bucket returns the destination bucket of the record.
func (r Record) Bucket() Bucket {
	return Bucket{Category: r.Category, DataType: r.DataType}
}

// HasMetadata reports whether the record carries everything needed to rename it.
func (r Record) HasMetadata() bool {
	return NormalizeCaseID(r.CaseID) != "" && r.Category != "" && r.DataType != ""
}

// SourcePath joins the record's relative source path onto base.
func (r Record) SourcePath(base string) string {
	return filepath.Join(base, r.FileID, r.FileName)
}

// Value returns the cell for column col as it is written to the output tables.
func (r Record) Value(col string) string {
	switch col {
	case ColFileID:
		return r.FileID
	case ColFileName:
		return r.FileName
	case ColCaseID:
		return r.CaseID
	case ColCategory:
		return r.Category
	case ColDataType:
		return r.DataType
	case ColMD5:
		return r.MD5
	case ColPath:
		return r.Path
	case ColOK:
		return strconv.FormatBool(r.OK)
	case ColUniqueID:
		return r.UniqueID
	case ColNewName:
		return r.NewName
	case ColNewPath:
		return r.NewPath
	}
	return r.Fields[col]
}

// Columns returns the sample sheet columns in sheet order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

func (t *Table) Add(r Record) {
	t.records = append(t.records, r)
}

func (t *Table) Len() int {
	return len(t.records)
}

// Get returns a copy of the record at index, or the zero Record when out of range.
func (t *Table) Get(index int) Record {
	if index < 0 || index >= len(t.records) {
		return Record{}
	}
	return t.records[index]
}

// Iterate yields a pointer to each record in table order so stages can
// fill in derived columns.
func (t *Table) Iterate(yield func(*Record) bool) {
	for i := range t.records {
		if !yield(&t.records[i]) {
			return
		}
	}
}

// Buckets returns the distinct buckets sorted by category, then type.
func (t *Table) Buckets() []Bucket {
	seen := make(map[Bucket]bool)
	var out []Bucket
	for r := range t.Iterate {
		b := r.Bucket()
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b Bucket) int {
		if c := cmp.Compare(a.Category, b.Category); c != 0 {
			return c
		}
		return cmp.Compare(a.DataType, b.DataType)
	})
	return out
}

// Categories returns the distinct categories in sorted order.
func (t *Table) Categories() []string {
	var out []string
	for _, b := range t.Buckets() {
		if len(out) == 0 || out[len(out)-1] != b.Category {
			out = append(out, b.Category)
		}
	}
	return out
}

// CountOK returns how many records are flagged ok.
func (t *Table) CountOK() int {
	n := 0
	for r := range t.Iterate {
		if r.OK {
			n++
		}
	}
	return n
}
