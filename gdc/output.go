package gdc

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
)

// Files written next to the downloads.
const (
	ChecksumFile     = "allfiles.md5"
	InitialTableFile = "info_initial.tsv"
	FinalTableFile   = "info_final.tsv"
	MetadataFile     = "run_metadata.json"
)

var (
	checkColumns = []string{ColMD5, ColPath, ColOK}
	planColumns  = []string{ColUniqueID, ColNewName, ColNewPath}
)

// WriteChecksums writes one "<md5>  <path>" line per record, the format
// md5sum -c reads.
func WriteChecksums(w io.Writer, t *Table) error {
	bw := bufio.NewWriter(w)
	for r := range t.Iterate {
		if _, err := fmt.Fprintf(bw, "%s  %s\n", r.MD5, r.Path); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TableColumns lists the output table header: the sample sheet columns,
// then md5, path and ok, then unique_id, newname and newpath when final.
func TableColumns(t *Table, final bool) []string {
	cols := append(t.Columns(), checkColumns...)
	if final {
		cols = append(cols, planColumns...)
	}
	return cols
}

// WriteTable writes the table as tab-separated values.
func WriteTable(w io.Writer, t *Table, final bool) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	cols := TableColumns(t, final)
	if err := cw.Write(cols); err != nil {
		return err
	}
	row := make([]string, len(cols))
	for r := range t.Iterate {
		for i, col := range cols {
			row[i] = r.Value(col)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadFinalTable parses a table written by WriteTable with final set.
func ReadFinalTable(r io.Reader) (*Table, error) {
	header, rows, err := readTSV(r)
	if err != nil {
		return nil, fmt.Errorf("reading final table: %w", err)
	}
	idx, err := columnIndex(header, ColFileID, ColMD5, ColPath, ColNewPath)
	if err != nil {
		return nil, fmt.Errorf("reading final table: %w", err)
	}
	var sheetCols []string
	for _, col := range header {
		if !slices.Contains(checkColumns, col) && !slices.Contains(planColumns, col) {
			sheetCols = append(sheetCols, col)
		}
	}

	_, hasOK := idx[ColOK]

	t := NewTable(sheetCols)
	for n, row := range rows {
		cells := make(map[string]string, len(header))
		for i, col := range header {
			cells[col] = row[i]
		}
		var ok bool
		if hasOK {
			if ok, err = strconv.ParseBool(cells[ColOK]); err != nil {
				return nil, fmt.Errorf("reading final table: row %d: %s: %w", n+2, ColOK, err)
			}
		}
		fields := make(map[string]string, len(sheetCols))
		for _, col := range sheetCols {
			fields[col] = cells[col]
		}
		t.Add(Record{
			FileID:   cells[ColFileID],
			FileName: cells[ColFileName],
			CaseID:   cells[ColCaseID],
			Category: cells[ColCategory],
			DataType: cells[ColDataType],
			MD5:      cells[ColMD5],
			Path:     cells[ColPath],
			OK:       ok,
			UniqueID: cells[ColUniqueID],
			NewName:  cells[ColNewName],
			NewPath:  cells[ColNewPath],
			Fields:   fields,
		})
	}
	return t, nil
}

// WriteFile creates path and hands a buffered writer to write.
func WriteFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteJSONFile writes any value as indented JSON to path.
func WriteJSONFile(path string, v any) error {
	return WriteFile(path, func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	})
}
