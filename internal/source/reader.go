// Package source reads sales exports (CSV or Excel) into raw date/amount rows.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingColumn is returned when neither the header name nor the
// positional fallback selects a column.
var ErrMissingColumn = errors.New("missing column")

// Columns selects the date and amount columns of an export.
type Columns struct {
	Date        string
	Amount      string
	DateIndex   int
	AmountIndex int
}

// RawRow is an unparsed (date, amount) pair from one data row.
type RawRow struct {
	Date   string
	Amount string
	Row    int // 1-based, header excluded
}

// ReadFile reads an export, dispatching on the file extension.
// .xlsx and .xlsm go through excelize; everything else is read as CSV.
func ReadFile(path string, cols Columns) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return readExcel(path, cols)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		return ReadCSV(f, cols)
	}
}

// ReadCSV reads CSV records from r. The first record is the header.
func ReadCSV(r io.Reader, cols Columns) ([]RawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // report exports pad trailing rows unevenly
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	return selectColumns(records, cols)
}

func readExcel(path string, cols Columns) ([]RawRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheets[0], err)
	}
	return selectColumns(rows, cols)
}

// selectColumns picks the date and amount cells from each data row.
func selectColumns(records [][]string, cols Columns) ([]RawRow, error) {
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	dateIdx, err := resolveColumn(header, cols.Date, cols.DateIndex)
	if err != nil {
		return nil, err
	}
	amountIdx, err := resolveColumn(header, cols.Amount, cols.AmountIndex)
	if err != nil {
		return nil, err
	}

	rows := make([]RawRow, 0, len(records)-1)
	for i, rec := range records[1:] {
		rows = append(rows, RawRow{
			Date:   cell(rec, dateIdx),
			Amount: cell(rec, amountIdx),
			Row:    i + 1,
		})
	}
	return rows, nil
}

func resolveColumn(header []string, name string, fallback int) (int, error) {
	if name != "" {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i, nil
			}
		}
	}
	if fallback >= 0 && fallback < len(header) {
		return fallback, nil
	}
	return -1, fmt.Errorf("%w: %q (no column at index %d either)", ErrMissingColumn, name, fallback)
}

func cell(rec []string, idx int) string {
	if idx < len(rec) {
		return rec[idx]
	}
	return ""
}
