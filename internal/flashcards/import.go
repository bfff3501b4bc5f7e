package flashcards

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/abhisek/lingua/internal/store"
	"github.com/abhisek/lingua/internal/vocab"
)

// ImportConfig maps spreadsheet columns to word fields. Columns are
// letters as shown in a spreadsheet ("A", "B", ...). Empty optional
// columns are not read.
type ImportConfig struct {
	TermColumn         string
	TranslationColumn  string
	PartOfSpeechColumn string
	ExampleColumn      string

	// SheetName selects the XLSX worksheet; empty means the first one.
	SheetName string

	// StartRow is the 1-based first data row.
	StartRow int
}

// DefaultImportConfig reads the layout written by Export.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		TermColumn:         "A",
		TranslationColumn:  "B",
		PartOfSpeechColumn: "C",
		ExampleColumn:      "D",
		StartRow:           2,
	}
}

// ImportResult summarises an import.
type ImportResult struct {
	Processed int
	Created   int
	Updated   int
	Skipped   int
	Errors    []string
}

// Importer loads words into a WordRepo. Existing terms are updated in
// place; rows identical to what is stored are skipped.
type Importer struct {
	words store.WordRepo
	cfg   ImportConfig
	log   *zap.Logger

	cols columns
}

type columns struct {
	term, translation, pos, example int
}

// NewImporter validates cfg's column letters and returns an Importer.
func NewImporter(words store.WordRepo, cfg ImportConfig, log *zap.Logger) (*Importer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.StartRow < 1 {
		cfg.StartRow = 1
	}

	var cols columns
	var err error
	if cols.term, err = columnIndex(cfg.TermColumn, true); err != nil {
		return nil, fmt.Errorf("term column: %w", err)
	}
	if cols.translation, err = columnIndex(cfg.TranslationColumn, true); err != nil {
		return nil, fmt.Errorf("translation column: %w", err)
	}
	if cols.pos, err = columnIndex(cfg.PartOfSpeechColumn, false); err != nil {
		return nil, fmt.Errorf("part of speech column: %w", err)
	}
	if cols.example, err = columnIndex(cfg.ExampleColumn, false); err != nil {
		return nil, fmt.Errorf("example column: %w", err)
	}

	return &Importer{words: words, cfg: cfg, log: log.Named("flashcards"), cols: cols}, nil
}

// columnIndex converts a column letter to a 0-based index, or -1 for an
// empty optional column.
func columnIndex(col string, required bool) (int, error) {
	if strings.TrimSpace(col) == "" {
		if required {
			return 0, errors.New("column is required")
		}
		return -1, nil
	}
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(col))
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// ImportFile imports path, picking the reader from its extension.
func (im *Importer) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if format == FormatCSV {
		return im.ImportCSV(ctx, f)
	}
	return im.ImportXLSX(ctx, f)
}

// ImportCSV imports comma-separated rows from r.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	res := &ImportResult{}
	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read csv: %w", err)
		}
		if rowNum < im.cfg.StartRow {
			continue
		}
		if err := im.importRow(ctx, row, rowNum, res); err != nil {
			return res, err
		}
	}
	im.logResult(res)
	return res, nil
}

// ImportXLSX imports a workbook read from r.
func (im *Importer) ImportXLSX(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := im.cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	res := &ImportResult{}
	for i, row := range rows {
		rowNum := i + 1
		if rowNum < im.cfg.StartRow {
			continue
		}
		if err := im.importRow(ctx, row, rowNum, res); err != nil {
			return res, err
		}
	}
	im.logResult(res)
	return res, nil
}

// importRow records row-level problems in res and only returns errors
// that should abort the whole import.
func (im *Importer) importRow(ctx context.Context, row []string, rowNum int, res *ImportResult) error {
	w := vocab.Word{
		Term:            cell(row, im.cols.term),
		Translation:     cell(row, im.cols.translation),
		PartOfSpeech:    cell(row, im.cols.pos),
		ExampleSentence: cell(row, im.cols.example),
	}
	if w.Term == "" && w.Translation == "" && w.PartOfSpeech == "" && w.ExampleSentence == "" {
		return nil
	}
	res.Processed++

	switch {
	case w.Term == "":
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: term is empty", rowNum))
		return nil
	case w.Translation == "":
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: translation is empty", rowNum))
		return nil
	}

	existing, err := im.words.ByTerm(ctx, w.Term)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	if existing != nil && sameWord(*existing, w) {
		res.Skipped++
		return nil
	}

	_, created, err := im.words.Upsert(ctx, w)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		return nil
	}
	if created {
		res.Created++
	} else {
		res.Updated++
	}
	return nil
}

func (im *Importer) logResult(res *ImportResult) {
	im.log.Info("import finished",
		zap.Int("processed", res.Processed),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", len(res.Errors)),
	)
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func sameWord(a, b vocab.Word) bool {
	return a.Translation == b.Translation &&
		a.PartOfSpeech == b.PartOfSpeech &&
		a.ExampleSentence == b.ExampleSentence
}
