// Package ingest parses tabular uploads into normalized row sets.
package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is a parsed tabular file before column reconciliation: trimmed
// header names plus the raw cell grid.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Parse decodes content according to the extension hint. ext should include
// the leading dot (e.g. ".csv"). The format is chosen from the hint alone,
// never sniffed from content. Returns ErrUnsupportedFormat for an
// unrecognized extension and a *ParseError for undecodable content.
func Parse(content []byte, ext string) (*Table, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		return parseCSV(content)
	case ".xls", ".xlsx":
		return parseSpreadsheet(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(content []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(content))
	// Rows shorter or longer than the header are padded/ignored downstream,
	// matching the blanket empty-cell fill.
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, &ParseError{Format: "csv", Err: err}
	}
	return tableFromGrid(records), nil
}

func parseSpreadsheet(content []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, &ParseError{Format: "spreadsheet", Err: err}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, &ParseError{Format: "spreadsheet", Err: fmt.Errorf("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ParseError{Format: "spreadsheet", Err: fmt.Errorf("get rows for sheet %q: %w", sheets[0], err)}
	}
	return tableFromGrid(rows), nil
}

// tableFromGrid splits a cell grid into a header and data rows, trimming
// whitespace from every header cell.
func tableFromGrid(grid [][]string) *Table {
	t := &Table{}
	if len(grid) == 0 {
		return t
	}
	t.Columns = make([]string, len(grid[0]))
	for i, name := range grid[0] {
		t.Columns[i] = strings.TrimSpace(name)
	}
	t.Rows = grid[1:]
	return t
}
