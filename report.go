package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// reportFile is the batch report written next to the extracted segments.
type reportFile struct {
	GeneratedAt time.Time `json:"generated_at"`
	SourceDir   string    `json:"source_dir"`
	Report
}

// WriteReport persists the batch report as JSON in the output directory.
// The write is atomic (temp file + rename) so a crashed run never leaves
// a truncated report behind.
func WriteReport(outputDir, sourceDir string, report Report) (string, error) {
	if outputDir == "" {
		outputDir = "."
	}
	path := filepath.Join(outputDir, "eegslice-report.json")
	payload := reportFile{
		GeneratedAt: time.Now().UTC(),
		SourceDir:   sourceDir,
		Report:      report,
	}
	if err := writeJSON(path, payload); err != nil {
		return "", err
	}
	return path, nil
}

// writeJSON writes v as indented JSON using a temp file and rename.
func writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
