package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/stonksapp/stonks/date"
	"github.com/stonksapp/stonks/fx"
)

// rateTable covers all of 2024 with a quote on every business day of
// January, so weekend trades exercise the forward fill.
func rateTable() *fx.Table {
	rates := []fx.DailyRate{
		{Date: date.New(2024, time.January, 2), BuyingRate: dec("4.85"), SellingRate: dec("4.86")},
		{Date: date.New(2024, time.January, 5), BuyingRate: dec("4.90"), SellingRate: dec("5")},
		{Date: date.New(2024, time.February, 15), BuyingRate: dec("5.10"), SellingRate: dec("5.12")},
	}
	return fx.NewTable(rates, date.New(2024, time.January, 1), date.New(2024, time.December, 31))
}

func usTrade(day int, symbol string, action TradeAction, quantity, price, amount string) USTrade {
	return USTrade{
		Date: mkDate(day), Symbol: symbol, Action: action,
		Quantity: dec(quantity), Price: dec(price), Amount: dec(amount),
	}
}

func TestComputeUSTradeCosts(t *testing.T) {
	trades := []USTrade{
		{
			Date: mkDate(2), Symbol: "VOO", Action: BUY,
			// DRIP trade: the reported per-share price is off by pennies,
			// the amount is the authoritative figure
			Quantity: dec("3"), Price: dec("33.42"), Amount: dec("100.30"),
			Commission: dec("1"), RegFee: dec("0.02"),
		},
	}

	trades, err := ComputeUSTradeCosts(trades, rateTable())
	require.NoError(t, err)

	tr := trades[0]
	rqDecEq(t, "1.02", tr.Costs)
	rqDecEq(t, "4.86", tr.PTAX)
	// 4.86 * (100.30 / 3), not 4.86 * 33.42
	rqDecEq(t, "162.49", tr.PriceBRL)
	rqDecEq(t, "487.46", tr.AmountBRL)
}

func TestComputeUSTradeCostsUsesForwardFilledRate(t *testing.T) {
	// Jan 6th 2024 is a Saturday; the Friday quote applies
	trades := []USTrade{usTrade(6, "VOO", BUY, "1", "100", "100")}

	trades, err := ComputeUSTradeCosts(trades, rateTable())
	require.NoError(t, err)
	rqDecEq(t, "5", trades[0].PTAX)
	rqDecEq(t, "500", trades[0].AmountBRL)
}

func TestComputeUSTradeCostsNoRate(t *testing.T) {
	trades := []USTrade{usTrade(1, "VOO", BUY, "1", "100", "100")}
	_, err := ComputeUSTradeCosts(trades, rateTable())
	// Jan 1st precedes the first published quote of the year
	require.Error(t, err)
}

func TestComputeUSPositions(t *testing.T) {
	trades := []USTrade{
		usTrade(2, "VOO", BUY, "8", "12.675", "101.4"),
		usTrade(5, "VOO", BUY, "8", "12.1075", "96.86"),
		usTrade(8, "VOO", SELL, "5", "19.786", "98.93"),
		usTrade(9, "VOO", BUY, "100", "1", "100"), // after the as-of date
	}
	var err error
	trades, err = ComputeUSTradeCosts(trades, rateTable())
	require.NoError(t, err)

	rows, err := ComputeUSPositions(mkDate(8), mkDate(30), trades)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	require.Equal(t, "VOO", row.Symbol)
	rqDecEq(t, "11", row.Quantity)
	rqDecEq(t, "136.3", row.Cost)
	rqDecEq(t, "12.39", row.CostPerShare)

	// BRL costs come from an independent replay over converted amounts:
	// buys 4.86*101.4=492.80 and 5*96.86=484.30, then 5 of 16 sold
	rqDecEq(t, "671.76", row.CostBRL)
	rqDecEq(t, "61.07", row.CostPerShareBRL)
}

func TestComputeUSPositionsBadData(t *testing.T) {
	trades := []USTrade{usTrade(2, "VOO", SELL, "1", "10", "10")}
	trades, err := ComputeUSTradeCosts(trades, rateTable())
	require.NoError(t, err)

	_, err = ComputeUSPositions(mkDate(8), mkDate(30), trades)
	var notOpen *PositionNotOpenError
	require.ErrorAs(t, err, &notOpen)
}

func TestComputeUSDividends(t *testing.T) {
	dividends := []USDividend{
		{Date: date.New(2024, time.March, 10), Symbol: "VOO", Amount: dec("10"), Taxes: dec("3")},
	}

	dividends, err := ComputeUSDividends(dividends, rateTable())
	require.NoError(t, err)

	d := dividends[0]
	// anchored on February 15th, buying rate
	rqDecEq(t, "5.10", d.PTAX)
	rqDecEq(t, "7", d.Total)
	rqDecEq(t, "51", d.AmountBRL)
	rqDecEq(t, "15.3", d.TaxesBRL)
	rqDecEq(t, "35.7", d.TotalBRL)
}

func TestComputeUSDividendsAnchorIsForwardFilled(t *testing.T) {
	// a mid-April dividend anchors on March 15th, which has no quote of its
	// own; the fill resolves it to the last February quote
	dividends := []USDividend{
		{Date: date.New(2024, time.April, 20), Symbol: "VOO", Amount: dec("10"), Taxes: dec("0")},
	}

	dividends, err := ComputeUSDividends(dividends, rateTable())
	require.NoError(t, err)
	rqDecEq(t, "5.10", dividends[0].PTAX)
}
