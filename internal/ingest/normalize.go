package ingest

import (
	"strings"

	"github.com/pictriage/pictriage/internal/models"
)

// recognizedColumns lists the canonical column names in output order.
// userId and url are required; title and content fill with empty strings
// when absent.
var recognizedColumns = []string{
	models.ColumnUserID,
	models.ColumnURL,
	models.ColumnTitle,
	models.ColumnContent,
}

var requiredColumns = map[string]bool{
	models.ColumnUserID: true,
	models.ColumnURL:    true,
}

// ColumnResolution records how one recognized column was matched against the
// input header. Index is -1 and Source is "" when the column is missing.
type ColumnResolution struct {
	Name   string
	Source string
	Index  int
}

// Resolved reports whether the column was found in the input.
func (r ColumnResolution) Resolved() bool {
	return r.Index >= 0
}

// Normalize reconciles a parsed table against the four recognized columns
// and returns one Row per data row. Resolution is exact-match first, then
// the first case-insensitive match. A required column that stays unresolved
// returns a *MissingColumnError. Every absent cell, including cells of rows
// shorter than the header, becomes an empty string. Unrecognized columns are
// dropped.
func Normalize(t *Table) (models.RowSet, error) {
	resolutions, err := resolveColumns(t.Columns)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(resolutions))
	for _, res := range resolutions {
		idx[res.Name] = res.Index
	}

	rows := make(models.RowSet, 0, len(t.Rows))
	for _, cells := range t.Rows {
		rows = append(rows, models.Row{
			UserID:  cellAt(cells, idx[models.ColumnUserID]),
			URL:     cellAt(cells, idx[models.ColumnURL]),
			Title:   cellAt(cells, idx[models.ColumnTitle]),
			Content: cellAt(cells, idx[models.ColumnContent]),
		})
	}
	return rows, nil
}

// ResolveColumns exposes the header reconciliation outcome for diagnostics.
func ResolveColumns(columns []string) ([]ColumnResolution, error) {
	return resolveColumns(columns)
}

func resolveColumns(columns []string) ([]ColumnResolution, error) {
	resolutions := make([]ColumnResolution, 0, len(recognizedColumns))
	for _, name := range recognizedColumns {
		pos, source := findColumn(columns, name)
		if pos < 0 && requiredColumns[name] {
			return nil, &MissingColumnError{Column: name}
		}
		resolutions = append(resolutions, ColumnResolution{Name: name, Source: source, Index: pos})
	}
	return resolutions, nil
}

func findColumn(columns []string, name string) (int, string) {
	for i, c := range columns {
		if c == name {
			return i, c
		}
	}
	for i, c := range columns {
		if strings.EqualFold(c, name) {
			return i, c
		}
	}
	return -1, ""
}

func cellAt(cells []string, pos int) string {
	if pos < 0 || pos >= len(cells) {
		return ""
	}
	return cells[pos]
}
