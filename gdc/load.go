package gdc

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Manifest columns as exported by the GDC portal.
const (
	manifestID       = "id"
	manifestFileName = "filename"
	manifestMD5      = "md5"
)

type (
	// ManifestEntry is one row of a GDC manifest.
	ManifestEntry struct {
		ID       string
		FileName string
		MD5      string
	}

	// SampleSheet holds a sample sheet with normalized column names.
	SampleSheet struct {
		Columns []string
		Rows    []map[string]string
	}
)

// NormalizeName replaces spaces with underscores, the way sample sheet
// column names and the category and type values are stored.
func NormalizeName(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}

func newTSVReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// readTSV returns the header and the data rows of a tab-separated table.
// Short rows are padded so every row is as wide as the header.
func readTSV(r io.Reader) ([]string, [][]string, error) {
	cr := newTSVReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil, ErrEmptyTable
	}
	if err != nil {
		return nil, nil, err
	}
	var rows [][]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		for len(row) < len(header) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

func columnIndex(header []string, names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for i, h := range header {
		idx[h] = i
	}
	for _, name := range names {
		if _, ok := idx[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return idx, nil
}

// ReadManifest parses a tab-separated GDC manifest.
func ReadManifest(r io.Reader) ([]ManifestEntry, error) {
	header, rows, err := readTSV(r)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	idx, err := columnIndex(header, manifestID, manifestFileName, manifestMD5)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	seen := make(map[string]bool, len(rows))
	entries := make([]ManifestEntry, 0, len(rows))
	for _, row := range rows {
		e := ManifestEntry{
			ID:       strings.TrimSpace(row[idx[manifestID]]),
			FileName: strings.TrimSpace(row[idx[manifestFileName]]),
			MD5:      strings.TrimSpace(row[idx[manifestMD5]]),
		}
		if e.ID == "" {
			continue
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("reading manifest: %w: %s", ErrDuplicateFileID, e.ID)
		}
		seen[e.ID] = true
		entries = append(entries, e)
	}
	return entries, nil
}

// ReadSampleSheet parses a tab-separated GDC sample sheet. Column names and
// the Data_Category and Data_Type values have their spaces replaced with
// underscores.
func ReadSampleSheet(r io.Reader) (SampleSheet, error) {
	header, rows, err := readTSV(r)
	if err != nil {
		return SampleSheet{}, fmt.Errorf("reading sample sheet: %w", err)
	}
	for i := range header {
		header[i] = NormalizeName(header[i])
	}
	if _, err := columnIndex(header, ColFileID, ColFileName, ColCaseID, ColCategory, ColDataType); err != nil {
		return SampleSheet{}, fmt.Errorf("reading sample sheet: %w", err)
	}

	sheet := SampleSheet{Columns: header}
	seen := make(map[string]bool, len(rows))
	for _, row := range rows {
		fields := make(map[string]string, len(header))
		for i, col := range header {
			fields[col] = strings.TrimSpace(row[i])
		}
		fields[ColCategory] = NormalizeName(fields[ColCategory])
		fields[ColDataType] = NormalizeName(fields[ColDataType])
		id := fields[ColFileID]
		if id == "" {
			continue
		}
		if seen[id] {
			return SampleSheet{}, fmt.Errorf("reading sample sheet: %w: %s", ErrDuplicateFileID, id)
		}
		seen[id] = true
		sheet.Rows = append(sheet.Rows, fields)
	}
	return sheet, nil
}

// SynthesizeSampleSheet builds the degenerate sheet used when no sample sheet
// was supplied: file ids and names only, so nothing can be renamed.
func SynthesizeSampleSheet(manifest []ManifestEntry) SampleSheet {
	sheet := SampleSheet{Columns: []string{ColFileID, ColFileName}}
	for _, e := range manifest {
		sheet.Rows = append(sheet.Rows, map[string]string{
			ColFileID:   e.ID,
			ColFileName: e.FileName,
		})
	}
	return sheet
}

// Join right-joins the sample sheet onto the manifest by file id. The table
// has one record per manifest entry, in manifest order. The second return
// value lists sample sheet file ids that are not in the manifest; those rows
// are dropped.
func Join(manifest []ManifestEntry, sheet SampleSheet) (*Table, []string) {
	byID := make(map[string]map[string]string, len(sheet.Rows))
	for _, row := range sheet.Rows {
		byID[row[ColFileID]] = row
	}

	t := NewTable(sheet.Columns)
	inManifest := make(map[string]bool, len(manifest))
	for _, e := range manifest {
		inManifest[e.ID] = true
		fields, ok := byID[e.ID]
		if !ok {
			fields = map[string]string{ColFileID: e.ID}
		}
		r := Record{
			FileID:   e.ID,
			FileName: fields[ColFileName],
			CaseID:   fields[ColCaseID],
			Category: fields[ColCategory],
			DataType: fields[ColDataType],
			MD5:      e.MD5,
			Fields:   fields,
		}
		if r.FileName == "" {
			r.FileName = e.FileName
			fields[ColFileName] = e.FileName
		}
		r.Path = "./" + r.FileID + "/" + r.FileName
		t.Add(r)
	}

	var unmatched []string
	for _, row := range sheet.Rows {
		if !inManifest[row[ColFileID]] {
			unmatched = append(unmatched, row[ColFileID])
		}
	}
	return t, unmatched
}

// Load reads the manifest and, when sheetPath is not empty, the sample sheet,
// and joins them. Without a sample sheet a degenerate one is synthesized from
// the manifest.
func Load(manifestPath, sheetPath string) (*Table, []string, error) {
	mf, err := os.Open(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	defer mf.Close()
	manifest, err := ReadManifest(mf)
	if err != nil {
		return nil, nil, err
	}

	if sheetPath == "" {
		t, unmatched := Join(manifest, SynthesizeSampleSheet(manifest))
		return t, unmatched, nil
	}

	sf, err := os.Open(sheetPath)
	if err != nil {
		return nil, nil, err
	}
	defer sf.Close()
	sheet, err := ReadSampleSheet(sf)
	if err != nil {
		return nil, nil, err
	}
	t, unmatched := Join(manifest, sheet)
	return t, unmatched, nil
}
