package flashcards

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lingua/internal/vocab"
)

// SheetName is the worksheet written by XLSX exports.
const SheetName = "Flashcards"

// Export writes words to w with a header row.
func Export(w io.Writer, format Format, words []vocab.Word) error {
	switch format {
	case FormatCSV:
		return exportCSV(w, words)
	case FormatXLSX:
		return exportXLSX(w, words)
	}
	return fmt.Errorf("unknown flashcard format %q", format)
}

// ExportFile writes words to path, replacing any existing file.
func ExportFile(path string, format Format, words []vocab.Word) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Export(f, format, words); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportCSV(w io.Writer, words []vocab.Word) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	for _, wd := range words {
		if err := cw.Write([]string{wd.Term, wd.Translation, wd.PartOfSpeech, wd.ExampleSentence}); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func exportXLSX(w io.Writer, words []vocab.Word) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	hdr := make([]any, len(header))
	for i, h := range header {
		hdr[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for i, wd := range words {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{wd.Term, wd.Translation, wd.PartOfSpeech, wd.ExampleSentence}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(SheetName, "A", "B", 20); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(SheetName, "D", "D", 40); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}
