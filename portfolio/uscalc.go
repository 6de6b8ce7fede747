package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
	"github.com/stonksapp/stonks/fx"
	"github.com/stonksapp/stonks/util"
)

// USTrade is one trade on a US broker, in USD. Costs, PTAX and the BRL
// fields are derived by ComputeUSTradeCosts.
type USTrade struct {
	Date       date.Date
	Symbol     string
	Action     TradeAction
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Commission decimal.Decimal
	RegFee     decimal.Decimal
	Amount     decimal.Decimal

	Costs     decimal.Decimal
	PTAX      decimal.Decimal
	PriceBRL  decimal.Decimal
	AmountBRL decimal.Decimal
}

// usd and brl are the two replay views of the same trade: identical except
// that the brl view swaps price and amount for their converted counterparts.

func (t USTrade) usd() Trade {
	return Trade{Date: t.Date, Symbol: t.Symbol, Action: t.Action,
		Quantity: t.Quantity, Price: t.Price, Costs: t.Costs, Amount: t.Amount}
}

func (t USTrade) brl() Trade {
	return Trade{Date: t.Date, Symbol: t.Symbol, Action: t.Action,
		Quantity: t.Quantity, Price: t.PriceBRL, Costs: t.Costs, Amount: t.AmountBRL}
}

// USPositionRow is a snapshot line carrying both currencies: quantity and
// USD costs from the primary replay, BRL costs from the converted one.
type USPositionRow struct {
	Symbol          string
	Quantity        decimal.Decimal
	Cost            decimal.Decimal
	CostPerShare    decimal.Decimal
	CostBRL         decimal.Decimal
	CostPerShareBRL decimal.Decimal
}

// USDividend is one cash dividend from a US stock. Total, PTAX and the BRL
// fields are derived by ComputeUSDividends.
type USDividend struct {
	Date   date.Date
	Symbol string
	Amount decimal.Decimal
	Taxes  decimal.Decimal

	Total     decimal.Decimal
	PTAX      decimal.Decimal
	AmountBRL decimal.Decimal
	TaxesBRL  decimal.Decimal
	TotalBRL  decimal.Decimal
}

// ComputeUSTradeCosts fills each USD trade's costs, PTAX and BRL economics.
//
// The per-share price reported by the broker is off by a few cents for
// dividend reinvestment trades; the amount is authoritative, so the price is
// recomputed as amount / quantity before converting.
func ComputeUSTradeCosts(trades []USTrade, rates *fx.Table) ([]USTrade, error) {
	out := make([]USTrade, len(trades))
	for i, t := range trades {
		rate, err := rates.Rate(t.Date)
		if err != nil {
			return nil, err
		}

		priceAdjusted := t.Amount.Div(t.Quantity)
		t.Costs = t.Commission.Add(t.RegFee)
		t.PTAX = rate.SellingRate
		t.PriceBRL = rate.SellingRate.Mul(priceAdjusted).Round(2)
		t.AmountBRL = rate.SellingRate.Mul(t.Amount).Round(2)
		out[i] = t
	}
	return out, nil
}

// ComputeUSPositions replays the USD trades relevant at asOf twice, once per
// currency, and joins the two snapshots by symbol. Trades must already carry
// their BRL fields (ComputeUSTradeCosts).
func ComputeUSPositions(asOf date.Date, today date.Date, trades []USTrade) ([]USPositionRow, error) {
	ordered := make([]USTrade, len(trades))
	copy(ordered, trades)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	ledger := NewPositions()
	ledgerBRL := NewPositions()
	for _, t := range ordered {
		if t.Date.After(asOf) {
			continue
		}
		if err := ledger.Apply(t.usd(), today); err != nil {
			return nil, err
		}
		if err := ledgerBRL.Apply(t.brl(), today); err != nil {
			return nil, err
		}
	}

	brlRows := make(map[string]PositionRow)
	for _, row := range ledgerBRL.Snapshot() {
		brlRows[row.Symbol] = row
	}

	rows := ledger.Snapshot()
	out := make([]USPositionRow, len(rows))
	for i, row := range rows {
		brl, ok := brlRows[row.Symbol]
		util.Assertf(ok, "BRL snapshot is missing %s", row.Symbol)
		out[i] = USPositionRow{
			Symbol:          row.Symbol,
			Quantity:        row.Quantity,
			Cost:            row.Cost,
			CostPerShare:    row.CostPerShare,
			CostBRL:         brl.Cost,
			CostPerShareBRL: brl.CostPerShare,
		}
	}
	return out, nil
}

// ComputeUSDividends fills each dividend's net total and BRL conversion.
//
// Tax rules convert dividends with the PTAX of the last business day of the
// first fortnight of the month before the payment. With a forward-filled
// table the 15th itself resolves to exactly that quote, so no business-day
// calendar is needed.
func ComputeUSDividends(dividends []USDividend, rates *fx.Table) ([]USDividend, error) {
	out := make([]USDividend, len(dividends))
	for i, d := range dividends {
		rate, err := rates.Rate(date.PreviousMonth15th(d.Date))
		if err != nil {
			return nil, err
		}

		d.Total = d.Amount.Sub(d.Taxes)
		d.PTAX = rate.BuyingRate
		d.AmountBRL = d.Amount.Mul(rate.BuyingRate).Round(2)
		d.TaxesBRL = d.Taxes.Mul(rate.BuyingRate).Round(2)
		d.TotalBRL = d.Total.Mul(rate.BuyingRate).Round(2)
		out[i] = d
	}
	return out, nil
}
