// Package flashcards moves vocabulary in and out of spreadsheet files.
package flashcards

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is a flashcard file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown flashcard format %q (want csv or xlsx)", s)
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%s: no file extension", path)
	}
	return ParseFormat(ext)
}

var header = []string{"Term", "Translation", "Part of speech", "Example"}
