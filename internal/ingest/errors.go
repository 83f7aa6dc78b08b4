package ingest

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat is returned when the file extension hint matches
// neither the delimited-text nor the spreadsheet family.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ParseError reports content that the format's decoder could not read, such
// as malformed CSV quoting or a corrupt workbook.
type ParseError struct {
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingColumnError reports a required column that could not be resolved
// even with case-insensitive matching. The hierarchy cannot be built without
// userId and url, so these fail ingestion rather than passing through.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}
