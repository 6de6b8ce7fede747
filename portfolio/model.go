package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
)

type TradeAction int

const (
	NO_ACTION TradeAction = iota
	BUY
	SELL
)

func (a TradeAction) String() string {
	switch a {
	case BUY:
		return "buy"
	case SELL:
		return "sell"
	default:
		return "<no action>"
	}
}

func ParseTradeAction(s string) (TradeAction, error) {
	switch s {
	case "buy":
		return BUY, nil
	case "sell":
		return SELL, nil
	default:
		return NO_ACTION, fmt.Errorf("invalid trade action %q", s)
	}
}

// Event is one dated record that mutates positions during a replay: a trade
// or a corporate action. The set of implementations is closed; the ledger
// dispatches on the concrete type and rejects anything outside the set.
type Event interface {
	// When is the economic date of the event, used to order the stream.
	When() date.Date
}

// Trade is a single buy or sell, joined to its confirmation by (date, broker).
// Costs and Amount are derived by ComputeTradeCosts.
type Trade struct {
	Date     date.Date
	Broker   string
	Symbol   string
	Action   TradeAction
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Costs    decimal.Decimal
	Amount   decimal.Decimal
}

func (t Trade) When() date.Date { return t.Date }

// Right is a subscription right: the option to buy additional shares at a
// fixed price. IssueDate is nil until the new shares formally vest; the
// ledger must not count unissued shares.
type Right struct {
	Date      date.Date
	Broker    string
	Symbol    string
	Shares    decimal.Decimal
	Exercised decimal.Decimal
	Price     decimal.Decimal
	Amount    decimal.Decimal
	IssueDate *date.Date
}

func (r Right) When() date.Date { return r.Date }

// Split multiplies the share quantity by the parsed ratio ("2:1" doubles).
type Split struct {
	Date   date.Date
	Symbol string
	Ratio  string
}

func (s Split) When() date.Date { return s.Date }

// Merger replaces the symbol with the acquirer's, dividing the quantity by
// the parsed ratio ("2:1" halves).
type Merger struct {
	Date     date.Date
	Symbol   string
	Acquirer string
	Ratio    string
}

func (m Merger) When() date.Date { return m.Date }

// SpinOff carves a new company out of an existing position. CostBasis is the
// fraction of the original cost basis transferred to the new company.
type SpinOff struct {
	Date       date.Date
	Symbol     string
	NewCompany string
	Ratio      string
	CostBasis  decimal.Decimal
}

func (s SpinOff) When() date.Date { return s.Date }

// StockDividend grants extra shares; Cost is the dividend's own cost per
// share, which increases the position's cost basis.
type StockDividend struct {
	Date     date.Date
	Symbol   string
	Quantity decimal.Decimal
	Cost     decimal.Decimal
}

func (s StockDividend) When() date.Date { return s.Date }

// Position is one open holding. Quantity of zero never appears here: selling
// out removes the position from the ledger entirely.
type Position struct {
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
	CostPerShare decimal.Decimal
}

// PositionRow is one line of a computed snapshot, with costs rounded to
// centavos. Quantity keeps full precision (US brokers allow fractional
// shares).
type PositionRow struct {
	Symbol       string
	Quantity     decimal.Decimal
	Cost         decimal.Decimal
	CostPerShare decimal.Decimal
}
