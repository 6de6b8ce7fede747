package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func confirmation(day int, broker, sales, purchases, clearing, trading, brokerage string) Confirmation {
	return Confirmation{
		Date: mkDate(day), Broker: broker,
		Sales: dec(sales), Purchases: dec(purchases),
		ClearingFees: dec(clearing), TradingFees: dec(trading), BrokerageFees: dec(brokerage),
	}
}

func TestComputeConfirmationCosts(t *testing.T) {
	confirmations := ComputeConfirmationCosts([]Confirmation{
		confirmation(1, "inter", "99.25", "196", "0.82", "0.3", "1.14"),
	})
	require.Len(t, confirmations, 1)

	c := confirmations[0]
	rqDecEq(t, "295.25", c.TradedVolume)
	rqDecEq(t, "2.26", c.Costs)
	// sales - purchases - costs can go negative on buy-heavy days
	rqDecEq(t, "-99.01", c.Amount)
}

func TestComputeTradeCosts(t *testing.T) {
	confirmations := ComputeConfirmationCosts([]Confirmation{
		confirmation(1, "inter", "0", "100", "0.6", "0.2", "0.6"),
		confirmation(2, "inter", "99.25", "0", "0.12", "0.05", "0.15"),
	})

	trades := []Trade{
		{Date: mkDate(1), Broker: "inter", Symbol: "FOO4", Action: BUY, Quantity: dec("8"), Price: dec("12.5")},
		{Date: mkDate(2), Broker: "inter", Symbol: "FOO4", Action: SELL, Quantity: dec("5"), Price: dec("19.85")},
	}

	trades, err := ComputeTradeCosts(trades, confirmations)
	require.NoError(t, err)

	// buy: principal 100, all of the confirmation's 1.4 in fees
	rqDecEq(t, "1.4", trades[0].Costs)
	rqDecEq(t, "101.4", trades[0].Amount)

	// sell: principal 99.25, costs flip sign in the net amount
	rqDecEq(t, "0.32", trades[1].Costs)
	rqDecEq(t, "98.93", trades[1].Amount)
}

func TestComputeTradeCostsProRata(t *testing.T) {
	// two buys under one confirmation split 1.00 of fees 1/3 to 2/3, with
	// broker-style rounding to centavos
	confirmations := ComputeConfirmationCosts([]Confirmation{
		confirmation(1, "inter", "0", "300", "1", "0", "0"),
	})
	trades := []Trade{
		{Date: mkDate(1), Broker: "inter", Symbol: "FOO4", Action: BUY, Quantity: dec("10"), Price: dec("10")},
		{Date: mkDate(1), Broker: "inter", Symbol: "BAR3", Action: BUY, Quantity: dec("10"), Price: dec("20")},
	}

	trades, err := ComputeTradeCosts(trades, confirmations)
	require.NoError(t, err)

	rqDecEq(t, "0.33", trades[0].Costs)
	rqDecEq(t, "100.33", trades[0].Amount)
	rqDecEq(t, "0.67", trades[1].Costs)
	rqDecEq(t, "200.67", trades[1].Amount)
}

func TestComputeTradeCostsMissingConfirmation(t *testing.T) {
	trades := []Trade{
		{Date: mkDate(1), Broker: "inter", Symbol: "FOO4", Action: BUY, Quantity: dec("1"), Price: dec("10")},
	}
	_, err := ComputeTradeCosts(trades, nil)
	var missing *MissingConfirmationError
	require.ErrorAs(t, err, &missing)
	require.Equal(t, "inter", missing.Broker)
}

func TestComputeRightAmounts(t *testing.T) {
	rights := ComputeRightAmounts([]Right{
		{Date: mkDate(1), Symbol: "FOO4", Exercised: dec("4"), Price: dec("10.5")},
	})
	rqDecEq(t, "42", rights[0].Amount)
}
