// Package export serializes flat record lists into downloadable csv and xlsx
// byte streams.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/pictriage/pictriage/internal/models"
	"github.com/xuri/excelize/v2"
)

// Fixed download filenames and MIME types per format.
const (
	csvFilename  = "reviewed_images.csv"
	xlsxFilename = "reviewed_images.xlsx"

	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// columns is the fixed output column order for both formats.
var columns = []string{
	models.ColumnUserID,
	models.ColumnTitle,
	models.ColumnContent,
	models.ColumnURL,
	"is_defective",
	"review_comment",
}

// Serialize renders records in the given format. Zero records produce a
// valid header-only file, not an error.
func Serialize(records []models.FlatRecord, format string) ([]byte, error) {
	switch format {
	case models.FormatCSV:
		return WriteCSV(records)
	case models.FormatXLSX:
		return WriteXLSX(records)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteCSV renders records as RFC 4180 CSV with the fixed header row.
func WriteCSV(records []models.FlatRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.UserID,
			rec.Title,
			rec.Content,
			rec.URL,
			strconv.FormatBool(rec.IsDefective),
			rec.ReviewComment,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders records as a single-sheet workbook with the fixed header row.
func WriteXLSX(records []models.FlatRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(columns))
	for i, name := range columns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			rec.UserID,
			rec.Title,
			rec.Content,
			rec.URL,
			rec.IsDefective,
			rec.ReviewComment,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename returns the fixed download filename for format.
func Filename(format string) string {
	if format == models.FormatCSV {
		return csvFilename
	}
	return xlsxFilename
}

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	if format == models.FormatCSV {
		return csvContentType
	}
	return xlsxContentType
}
