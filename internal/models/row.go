// Package models defines core data structures for rows, the review hierarchy, and exports.
package models

// Canonical column names recognized in input files. Matching is
// case-insensitive on ingest, but these exact casings are used everywhere
// downstream.
const (
	ColumnUserID  = "userId"
	ColumnURL     = "url"
	ColumnTitle   = "title"
	ColumnContent = "content"
)

// Row is one normalized input record. Missing cells are filled with empty
// strings on ingest, never left absent.
type Row struct {
	UserID  string `json:"userId"`
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// RowSet is the ordered result of ingestion, one Row per input row.
type RowSet []Row
