package models

import "testing"

func TestExportRequest_Validate(t *testing.T) {
	tests := []struct {
		name       string
		format     string
		wantErr    bool
		wantFormat string
	}{
		{"empty defaults to xlsx", "", false, FormatXLSX},
		{"csv accepted", "csv", false, FormatCSV},
		{"xlsx accepted", "xlsx", false, FormatXLSX},
		{"unknown rejected", "pdf", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ExportRequest{Format: tt.format}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && req.Format != tt.wantFormat {
				t.Errorf("Format = %q, want %q", req.Format, tt.wantFormat)
			}
		})
	}
}
