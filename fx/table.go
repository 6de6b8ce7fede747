package fx

import (
	"fmt"

	"github.com/stonksapp/stonks/date"
)

// Table holds daily rates over a closed date range, forward-filled so that
// weekends and holidays resolve to the last published quote. Lookups outside
// the range, or before the first observation, are errors.
type Table struct {
	start date.Date
	end   date.Date
	rates map[date.Date]DailyRate
}

// NewTable builds a forward-filled table covering [start, end] from the raw
// observations. Observations outside the range only matter insofar as an
// earlier one never seeds the fill: days before the first in-range
// observation stay absent.
func NewTable(rates []DailyRate, start, end date.Date) *Table {
	observed := make(map[date.Date]DailyRate, len(rates))
	for _, r := range rates {
		observed[r.Date] = r
	}

	filled := make(map[date.Date]DailyRate)
	var last DailyRate
	haveLast := false
	for d := start; !d.After(end); d = d.AddDays(1) {
		if r, ok := observed[d]; ok {
			last = r
			haveLast = true
		}
		if haveLast {
			r := last
			r.Date = d
			filled[d] = r
		}
	}

	return &Table{start: start, end: end, rates: filled}
}

// Rate returns the (possibly forward-filled) rate for d.
func (t *Table) Rate(d date.Date) (DailyRate, error) {
	r, ok := t.rates[d]
	if !ok {
		return DailyRate{}, fmt.Errorf("no exchange rate available for %s", d)
	}
	return r, nil
}
