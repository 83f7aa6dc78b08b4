package watcher

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pictriage/pictriage/internal/hierarchy"
	"github.com/pictriage/pictriage/internal/ingest"
)

// ConvertSheet ingests the tabular file at path, builds the review
// hierarchy, and writes it as indented JSON. The output file takes the
// sheet's base name with a .json extension, placed in outputDir when given,
// otherwise next to the sheet. Returns the path written.
func ConvertSheet(path, outputDir string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read sheet: %w", err)
	}
	table, err := ingest.Parse(content, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return "", err
	}
	rows, err := ingest.Normalize(table)
	if err != nil {
		return "", err
	}
	h := hierarchy.Build(rows)

	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal hierarchy: %w", err)
	}
	out := outputPath(path, outputDir)
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("write hierarchy: %w", err)
	}
	return out, nil
}

func outputPath(path, outputDir string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".json"
	if outputDir != "" {
		return filepath.Join(outputDir, base)
	}
	return filepath.Join(filepath.Dir(path), base)
}
