// Package excel reads the investor's workbook tables into the typed records
// the core consumes, and writes the computed position sheets back out.
package excel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	SheetConfirmations  = "confirmations"
	SheetTrades         = "trades"
	SheetSubscriptions  = "subscriptions"
	SheetSplits         = "splits"
	SheetMergers        = "mergers"
	SheetSpinOffs       = "spinoffs"
	SheetStockDividends = "stock_dividends"
	SheetUSTrades       = "us_trades"
	SheetUSDividends    = "us_dividends"

	SheetPositions   = "positions"
	SheetUSPositions = "us_positions"
)

// Workbook wraps one xlsx file. Sheet headers are title case in the file
// ("Clearing fees") and snake case internally (clearing_fees).
type Workbook struct {
	f    *excelize.File
	path string
}

func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	return &Workbook{f: f, path: path}, nil
}

func New() *Workbook {
	return &Workbook{f: excelize.NewFile()}
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// OutputPath is where the computed workbook goes: next to the input, with a
// -positions suffix.
func (w *Workbook) OutputPath() string {
	ext := filepath.Ext(w.path)
	return strings.TrimSuffix(w.path, ext) + "-positions" + ext
}

func (w *Workbook) SaveAs(path string) error {
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	zap.L().Info("workbook saved", zap.String("path", path))
	return nil
}

// HasSheet reports whether the sheet exists; the US sheets are optional.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.f.GetSheetIndex(name)
	return err == nil && idx >= 0
}

func columnToSnakeCase(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

func columnToTitleCase(name string) string {
	s := strings.ReplaceAll(name, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// sheetRecords returns one map per data row, keyed by snake_case header.
// Short rows (excelize trims trailing empty cells) just leave keys absent.
func (w *Workbook) sheetRecords(sheet string) ([]map[string]string, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, name := range rows[0] {
		header[i] = columnToSnakeCase(strings.TrimSpace(name))
	}

	records := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		record := make(map[string]string, len(header))
		for i, cell := range row {
			if i < len(header) {
				record[header[i]] = strings.TrimSpace(cell)
			}
		}
		records = append(records, record)
	}
	return records, nil
}
