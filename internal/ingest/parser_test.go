package ingest

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParse_csv(t *testing.T) {
	content := []byte("userId,url,title,content\nu1,http://a,T1,desc\nu1,http://b,T1,\n")
	table, err := Parse(content, ".csv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"userId", "url", "title", "content"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if !reflect.DeepEqual(table.Rows[0], []string{"u1", "http://a", "T1", "desc"}) {
		t.Errorf("Rows[0] = %v", table.Rows[0])
	}
}

func TestParse_csvTrimsHeaderWhitespace(t *testing.T) {
	content := []byte(" userId , url ,title,content\nu1,http://a,T1,d\n")
	table, err := Parse(content, ".csv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"userId", "url", "title", "content"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
}

func TestParse_csvRaggedRows(t *testing.T) {
	content := []byte("userId,url,title,content\nu1,http://a\n")
	table, err := Parse(content, ".csv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(table.Rows) != 1 || len(table.Rows[0]) != 2 {
		t.Errorf("Rows = %v", table.Rows)
	}
}

func TestParse_csvMalformed(t *testing.T) {
	content := []byte("userId,url\n\"unterminated,oops\n")
	_, err := Parse(content, ".csv")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if parseErr.Format != "csv" {
		t.Errorf("Format = %q", parseErr.Format)
	}
}

func TestParse_xlsx(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetRow("Sheet1", "A1", &[]interface{}{" UserID ", "url", "title", "content"})
	f.SetSheetRow("Sheet1", "A2", &[]interface{}{"u1", "http://a", "T1", "desc"})
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}

	table, err := Parse(buf.Bytes(), ".xlsx")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !reflect.DeepEqual(table.Columns, []string{"UserID", "url", "title", "content"}) {
		t.Errorf("Columns = %v", table.Columns)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(table.Rows))
	}
}

func TestParse_spreadsheetCorrupt(t *testing.T) {
	for _, ext := range []string{".xls", ".xlsx"} {
		_, err := Parse([]byte("definitely not a workbook"), ext)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Errorf("Parse(%s): expected *ParseError, got %v", ext, err)
		}
	}
}

func TestParse_unsupportedExtension(t *testing.T) {
	for _, ext := range []string{".pdf", ".txt", "", ".CSV.bak"} {
		_, err := Parse([]byte("x"), ext)
		if !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Parse(%q): expected ErrUnsupportedFormat, got %v", ext, err)
		}
	}
}

func TestParse_extensionCaseInsensitive(t *testing.T) {
	content := []byte("userId,url\nu1,http://a\n")
	if _, err := Parse(content, ".CSV"); err != nil {
		t.Errorf("Parse(.CSV): %v", err)
	}
}

func TestParse_emptyCSV(t *testing.T) {
	table, err := Parse(nil, ".csv")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(table.Columns) != 0 || len(table.Rows) != 0 {
		t.Errorf("empty input should yield empty table, got %+v", table)
	}
}
