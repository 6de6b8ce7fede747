package portfolio

import (
	"sort"

	"github.com/stonksapp/stonks/date"
)

// Events converts a concrete event slice into the generic stream type.
func Events[E Event](in []E) []Event {
	out := make([]Event, len(in))
	for i, ev := range in {
		out[i] = ev
	}
	return out
}

// ConcatEvents merges the per-kind event sets into one stream ordered by
// (date, original input order). The stable sort is what gives same-date
// events their input-order tie break; a buy and a sell of the same symbol on
// the same day replay in the order they appear, which changes the resulting
// cost per share.
func ConcatEvents(groups ...[]Event) []Event {
	events := make([]Event, 0)
	for _, group := range groups {
		events = append(events, group...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].When().Before(events[j].When())
	})
	return events
}

// FilterByDate keeps the event-stream prefix relevant to the as-of date.
// Rights are filtered on their issue date, not their economic date: the
// record date may precede the day the subscribed shares legally exist.
func FilterByDate(events []Event, asOf date.Date) []Event {
	kept := make([]Event, 0, len(events))
	for _, ev := range events {
		if r, ok := ev.(Right); ok {
			if r.IssueDate != nil && !r.IssueDate.After(asOf) {
				kept = append(kept, ev)
			}
			continue
		}
		if !ev.When().After(asOf) {
			kept = append(kept, ev)
		}
	}
	return kept
}
