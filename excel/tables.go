package excel

import (
	"github.com/stonksapp/stonks/portfolio"
)

func (w *Workbook) Confirmations() ([]portfolio.Confirmation, error) {
	return readSheet(w, SheetConfirmations, func(r *record) portfolio.Confirmation {
		return portfolio.Confirmation{
			Date:          r.date("date"),
			Broker:        r.requiredStr("broker"),
			Sales:         r.nonNegativeDecimal("sales"),
			Purchases:     r.nonNegativeDecimal("purchases"),
			ClearingFees:  r.nonNegativeDecimal("clearing_fees"),
			TradingFees:   r.nonNegativeDecimal("trading_fees"),
			BrokerageFees: r.nonNegativeDecimal("brokerage_fees"),
			IncomeTax:     r.nonNegativeDecimal("income_tax"),
		}
	})
}

func (w *Workbook) Trades() ([]portfolio.Trade, error) {
	return readSheet(w, SheetTrades, func(r *record) portfolio.Trade {
		return portfolio.Trade{
			Date:     r.date("date"),
			Broker:   r.requiredStr("broker"),
			Symbol:   r.requiredStr("symbol"),
			Action:   r.action("type"),
			Quantity: r.positiveDecimal("quantity"),
			Price:    r.nonNegativeDecimal("price"),
		}
	})
}

func (w *Workbook) Rights() ([]portfolio.Right, error) {
	return readSheet(w, SheetSubscriptions, func(r *record) portfolio.Right {
		return portfolio.Right{
			Date:      r.date("date"),
			Broker:    r.requiredStr("broker"),
			Symbol:    r.requiredStr("symbol"),
			Shares:    r.positiveDecimal("shares"),
			Exercised: r.positiveDecimal("exercised"),
			Price:     r.positiveDecimal("price"),
			IssueDate: r.dateOrNil("issue_date"),
		}
	})
}

func (w *Workbook) Splits() ([]portfolio.Split, error) {
	return readSheet(w, SheetSplits, func(r *record) portfolio.Split {
		return portfolio.Split{
			Date:   r.date("date"),
			Symbol: r.requiredStr("symbol"),
			Ratio:  r.ratio("ratio"),
		}
	})
}

func (w *Workbook) Mergers() ([]portfolio.Merger, error) {
	return readSheet(w, SheetMergers, func(r *record) portfolio.Merger {
		return portfolio.Merger{
			Date:     r.date("date"),
			Symbol:   r.requiredStr("symbol"),
			Acquirer: r.requiredStr("acquirer"),
			Ratio:    r.ratio("ratio"),
		}
	})
}

func (w *Workbook) SpinOffs() ([]portfolio.SpinOff, error) {
	return readSheet(w, SheetSpinOffs, func(r *record) portfolio.SpinOff {
		return portfolio.SpinOff{
			Date:       r.date("date"),
			Symbol:     r.requiredStr("symbol"),
			NewCompany: r.requiredStr("new_company"),
			Ratio:      r.ratio("ratio"),
			CostBasis:  r.fraction("cost_basis"),
		}
	})
}

func (w *Workbook) StockDividends() ([]portfolio.StockDividend, error) {
	return readSheet(w, SheetStockDividends, func(r *record) portfolio.StockDividend {
		return portfolio.StockDividend{
			Date:     r.date("date"),
			Symbol:   r.requiredStr("symbol"),
			Quantity: r.positiveDecimal("quantity"),
			Cost:     r.positiveDecimal("cost"),
		}
	})
}

func (w *Workbook) USTrades() ([]portfolio.USTrade, error) {
	return readSheet(w, SheetUSTrades, func(r *record) portfolio.USTrade {
		return portfolio.USTrade{
			Date:       r.date("date"),
			Symbol:     r.requiredStr("symbol"),
			Action:     r.action("type"),
			Quantity:   r.positiveDecimal("quantity"),
			Price:      r.nonNegativeDecimal("price"),
			Commission: r.nonNegativeDecimal("commission"),
			RegFee:     r.nonNegativeDecimal("reg_fee"),
			Amount:     r.nonNegativeDecimal("amount"),
		}
	})
}

func (w *Workbook) USDividends() ([]portfolio.USDividend, error) {
	return readSheet(w, SheetUSDividends, func(r *record) portfolio.USDividend {
		return portfolio.USDividend{
			Date:   r.date("date"),
			Symbol: r.requiredStr("symbol"),
			Amount: r.positiveDecimal("amount"),
			Taxes:  r.nonNegativeDecimal("taxes"),
		}
	})
}
