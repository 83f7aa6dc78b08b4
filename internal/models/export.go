package models

import "fmt"

// Export formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// FlatRecord is one exported row: an image re-linearized with its ancestors'
// keys and its annotation fields. Content is the prompt's content, not the
// image's resolved content.
type FlatRecord struct {
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Content       string `json:"content"`
	URL           string `json:"url"`
	IsDefective   bool   `json:"is_defective"`
	ReviewComment string `json:"review_comment"`
}

// ExportRequest is the body of an export request: the (possibly annotated)
// hierarchy plus output parameters.
type ExportRequest struct {
	Data         Hierarchy `json:"data"`
	Format       string    `json:"format,omitempty"`
	ReviewedOnly bool      `json:"reviewed_only,omitempty"`
}

// Validate normalizes the export parameters. Format defaults to xlsx when
// empty; an unrecognized format is an error.
func (r *ExportRequest) Validate() error {
	if r.Format == "" {
		r.Format = FormatXLSX
	}
	if r.Format != FormatCSV && r.Format != FormatXLSX {
		return fmt.Errorf("unsupported export format %q", r.Format)
	}
	return nil
}
