package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/stonksapp/stonks/portfolio"
)

// Accounting-style BRL format, same as the broker spreadsheets use.
const brlNumFmt = `_-"R$"\ * #,##0.00_-;\-"R$"\ * #,##0.00_-;_-"R$"\ * "-"??_-;_-@_-`

const moneyColWidth = 13.0

func cellRef(col, row int) (string, error) {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", name, row), nil
}

// replaceSheet drops any stale copy of the sheet and recreates it with the
// given header and rows. Decimals are written as numbers so the BRL format
// applies.
func (w *Workbook) replaceSheet(name string, header []string, rows [][]any) error {
	if w.HasSheet(name) {
		if err := w.f.DeleteSheet(name); err != nil {
			return fmt.Errorf("replacing sheet %s: %w", name, err)
		}
	}
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("creating sheet %s: %w", name, err)
	}

	for col, title := range header {
		ref, err := cellRef(col+1, 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellValue(name, ref, columnToTitleCase(title)); err != nil {
			return err
		}
	}

	for i, row := range rows {
		for col, value := range row {
			ref, err := cellRef(col+1, i+2)
			if err != nil {
				return err
			}
			if d, ok := value.(decimal.Decimal); ok {
				value, _ = d.Float64()
			}
			if err := w.f.SetCellValue(name, ref, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatBRLColumns applies the accounting format and a readable width to the
// given 1-based columns.
func (w *Workbook) formatBRLColumns(sheet string, nRows int, cols ...int) error {
	numFmt := brlNumFmt
	styleID, err := w.f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}

	for _, col := range cols {
		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := w.f.SetColWidth(sheet, name, name, moneyColWidth); err != nil {
			return err
		}
		top, err := cellRef(col, 2)
		if err != nil {
			return err
		}
		bottom, err := cellRef(col, nRows+1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, top, bottom, styleID); err != nil {
			return err
		}
	}
	return nil
}

// WriteConfirmations rewrites the confirmations sheet with the derived
// traded volume, costs and net amount columns filled in.
func (w *Workbook) WriteConfirmations(rows []portfolio.Confirmation) error {
	header := []string{"date", "broker", "sales", "purchases", "clearing_fees",
		"trading_fees", "brokerage_fees", "income_tax", "traded_volume", "costs", "amount"}
	data := make([][]any, len(rows))
	for i, row := range rows {
		data[i] = []any{
			row.Date.String(), row.Broker, row.Sales, row.Purchases,
			row.ClearingFees, row.TradingFees, row.BrokerageFees, row.IncomeTax,
			row.TradedVolume, row.Costs, row.Amount,
		}
	}
	if err := w.replaceSheet(SheetConfirmations, header, data); err != nil {
		return err
	}
	return w.formatBRLColumns(SheetConfirmations, len(rows), 3, 4, 5, 6, 7, 8, 9, 10, 11)
}

// WritePositions replaces the positions sheet with the computed snapshot.
func (w *Workbook) WritePositions(rows []portfolio.PositionRow) error {
	header := []string{"symbol", "quantity", "cost", "cost_per_share"}
	data := make([][]any, len(rows))
	for i, row := range rows {
		data[i] = []any{row.Symbol, row.Quantity, row.Cost, row.CostPerShare}
	}
	if err := w.replaceSheet(SheetPositions, header, data); err != nil {
		return err
	}
	return w.formatBRLColumns(SheetPositions, len(rows), 3, 4)
}

// WriteUSDividends rewrites the us_dividends sheet with the computed totals
// and BRL conversions filled in.
func (w *Workbook) WriteUSDividends(rows []portfolio.USDividend) error {
	header := []string{"date", "symbol", "amount", "taxes", "total", "ptax", "amount_brl", "taxes_brl", "total_brl"}
	data := make([][]any, len(rows))
	for i, row := range rows {
		data[i] = []any{
			row.Date.String(), row.Symbol, row.Amount, row.Taxes,
			row.Total, row.PTAX, row.AmountBRL, row.TaxesBRL, row.TotalBRL,
		}
	}
	if err := w.replaceSheet(SheetUSDividends, header, data); err != nil {
		return err
	}
	return w.formatBRLColumns(SheetUSDividends, len(rows), 7, 8, 9)
}

// WriteUSPositions replaces the us_positions sheet with the joined USD/BRL
// snapshot.
func (w *Workbook) WriteUSPositions(rows []portfolio.USPositionRow) error {
	header := []string{"symbol", "quantity", "cost", "cost_per_share", "cost_brl", "cost_per_share_brl"}
	data := make([][]any, len(rows))
	for i, row := range rows {
		data[i] = []any{row.Symbol, row.Quantity, row.Cost, row.CostPerShare, row.CostBRL, row.CostPerShareBRL}
	}
	if err := w.replaceSheet(SheetUSPositions, header, data); err != nil {
		return err
	}
	return w.formatBRLColumns(SheetUSPositions, len(rows), 5, 6)
}
