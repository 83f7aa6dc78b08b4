package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/pictriage/pictriage/internal/models"
)

func TestNormalize_exactColumns(t *testing.T) {
	table := &Table{
		Columns: []string{"userId", "url", "title", "content"},
		Rows: [][]string{
			{"u1", "http://a", "T1", "desc"},
			{"u1", "http://b", "T1", ""},
		},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := models.RowSet{
		{UserID: "u1", URL: "http://a", Title: "T1", Content: "desc"},
		{UserID: "u1", URL: "http://b", Title: "T1", Content: ""},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("rows = %+v, want %+v", rows, want)
	}
}

func TestNormalize_caseInsensitiveRename(t *testing.T) {
	// Mixed-case header (whitespace already trimmed by Parse).
	table := &Table{
		Columns: []string{"UserID", "URL", "Title", "CONTENT"},
		Rows:    [][]string{{"u1", "http://a", "T1", "d"}},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rows[0].UserID != "u1" || rows[0].URL != "http://a" || rows[0].Title != "T1" || rows[0].Content != "d" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}

func TestNormalize_exactMatchWins(t *testing.T) {
	// An exact-cased column must win over an earlier case-insensitive one.
	table := &Table{
		Columns: []string{"USERID", "userId", "url"},
		Rows:    [][]string{{"loud", "quiet", "http://a"}},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rows[0].UserID != "quiet" {
		t.Errorf("UserID = %q, want %q", rows[0].UserID, "quiet")
	}
}

func TestNormalize_missingRequiredColumn(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		missing string
	}{
		{"no userId", []string{"url", "title", "content"}, "userId"},
		{"no url", []string{"userId", "title", "content"}, "url"},
		{"empty header", nil, "userId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(&Table{Columns: tt.columns})
			var missingErr *MissingColumnError
			if !errors.As(err, &missingErr) {
				t.Fatalf("expected *MissingColumnError, got %v", err)
			}
			if missingErr.Column != tt.missing {
				t.Errorf("Column = %q, want %q", missingErr.Column, tt.missing)
			}
		})
	}
}

func TestNormalize_optionalColumnsFillEmpty(t *testing.T) {
	table := &Table{
		Columns: []string{"userId", "url"},
		Rows:    [][]string{{"u1", "http://a"}},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rows[0].Title != "" || rows[0].Content != "" {
		t.Errorf("rows[0] = %+v, want empty title/content", rows[0])
	}
}

func TestNormalize_shortRowsFillEmpty(t *testing.T) {
	table := &Table{
		Columns: []string{"userId", "url", "title", "content"},
		Rows:    [][]string{{"u1", "http://a"}},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := models.Row{UserID: "u1", URL: "http://a", Title: "", Content: ""}
	if rows[0] != want {
		t.Errorf("rows[0] = %+v, want %+v", rows[0], want)
	}
}

func TestNormalize_unrecognizedColumnsDropped(t *testing.T) {
	table := &Table{
		Columns: []string{"notes", "userId", "url"},
		Rows:    [][]string{{"ignore me", "u1", "http://a"}},
	}
	rows, err := Normalize(table)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if rows[0].UserID != "u1" || rows[0].URL != "http://a" {
		t.Errorf("rows[0] = %+v", rows[0])
	}
}

func TestResolveColumns(t *testing.T) {
	resolutions, err := ResolveColumns([]string{"UserID", "url", "extra"})
	if err != nil {
		t.Fatalf("ResolveColumns: %v", err)
	}
	byName := map[string]ColumnResolution{}
	for _, r := range resolutions {
		byName[r.Name] = r
	}
	if r := byName[models.ColumnUserID]; !r.Resolved() || r.Source != "UserID" || r.Index != 0 {
		t.Errorf("userId resolution = %+v", r)
	}
	if r := byName[models.ColumnTitle]; r.Resolved() {
		t.Errorf("title should be unresolved, got %+v", r)
	}
}
