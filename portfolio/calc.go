package portfolio

import (
	"github.com/stonksapp/stonks/date"
)

// ComputePositions replays every event relevant at asOf and returns the
// resulting snapshot, ordered by symbol. Trades must already carry their
// computed costs and amounts (ComputeTradeCosts), and rights their exercise
// amounts (ComputeRightAmounts).
//
// today is the evaluation clock for the rights vesting guard. It is distinct
// from asOf on purpose: a right may have passed the as-of filter on its
// issue date and still not have vested by the time the computation runs.
func ComputePositions(
	asOf date.Date,
	today date.Date,
	trades []Trade,
	rights []Right,
	splits []Split,
	mergers []Merger,
	spinOffs []SpinOff,
	stockDividends []StockDividend,
) ([]PositionRow, error) {
	events := ConcatEvents(
		Events(trades),
		Events(rights),
		Events(splits),
		Events(mergers),
		Events(spinOffs),
		Events(stockDividends),
	)
	filtered := FilterByDate(events, asOf)

	ledger := NewPositions()
	for _, ev := range filtered {
		if err := ledger.Apply(ev, today); err != nil {
			return nil, err
		}
	}
	return ledger.Snapshot(), nil
}
