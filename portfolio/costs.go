package portfolio

import (
	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
)

// Confirmation is one trade confirmation ("nota de corretagem"): the
// per-day, per-broker document that totals the trades it covers. Brokers
// report per-document fees only; TradedVolume, Costs and Amount are derived
// by ComputeConfirmationCosts.
type Confirmation struct {
	Date          date.Date
	Broker        string
	Sales         decimal.Decimal
	Purchases     decimal.Decimal
	ClearingFees  decimal.Decimal
	TradingFees   decimal.Decimal
	BrokerageFees decimal.Decimal
	IncomeTax     decimal.Decimal

	TradedVolume decimal.Decimal
	Costs        decimal.Decimal
	Amount       decimal.Decimal
}

type confirmationKey struct {
	date   date.Date
	broker string
}

// ComputeConfirmationCosts fills the derived columns of each confirmation:
// traded volume (sales + purchases), total fees, and the net amount credited
// or debited to the account. Pure per-row arithmetic.
func ComputeConfirmationCosts(confirmations []Confirmation) []Confirmation {
	out := make([]Confirmation, len(confirmations))
	for i, c := range confirmations {
		c.TradedVolume = c.Sales.Add(c.Purchases)
		c.Costs = c.ClearingFees.Add(c.TradingFees).Add(c.BrokerageFees)
		c.Amount = c.Sales.Sub(c.Purchases).Sub(c.Costs)
		out[i] = c
	}
	return out
}

// ComputeTradeCosts fills each trade's pro-rata costs and net amount from its
// parent confirmation, joined by (date, broker). A trade without a
// confirmation is upstream data corruption and fails the computation.
//
// Costs are the trade's share of the confirmation's fees, proportional to its
// principal, rounded to centavos to match the broker's own statements. The
// net amount is principal + costs for buys and principal - costs for sells.
func ComputeTradeCosts(trades []Trade, confirmations []Confirmation) ([]Trade, error) {
	byKey := make(map[confirmationKey]Confirmation, len(confirmations))
	for _, c := range confirmations {
		byKey[confirmationKey{c.Date, c.Broker}] = c
	}

	out := make([]Trade, len(trades))
	for i, t := range trades {
		c, ok := byKey[confirmationKey{t.Date, t.Broker}]
		if !ok {
			return nil, &MissingConfirmationError{Date: t.Date, Broker: t.Broker}
		}

		principal := t.Quantity.Mul(t.Price)
		t.Costs = principal.Div(c.TradedVolume).Mul(c.Costs).Round(2)
		if t.Action == BUY {
			t.Amount = principal.Add(t.Costs)
		} else {
			t.Amount = principal.Sub(t.Costs)
		}
		out[i] = t
	}
	return out, nil
}

// ComputeRightAmounts fills each right's exercise amount: exercised shares
// times the subscription price. Fees are already embedded in the price.
func ComputeRightAmounts(rights []Right) []Right {
	out := make([]Right, len(rights))
	for i, r := range rights {
		r.Amount = r.Exercised.Mul(r.Price)
		out[i] = r
	}
	return out
}
