package portfolio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConcatEventsOrdersByDate(t *testing.T) {
	events := ConcatEvents(
		Events([]Trade{buyEvent(5, "FOO4", "1", "10"), buyEvent(2, "FOO4", "1", "10")}),
		Events([]Split{{Date: mkDate(3), Symbol: "FOO4", Ratio: "2:1"}}),
	)

	require.Len(t, events, 3)
	require.Equal(t, mkDate(2), events[0].When())
	require.Equal(t, mkDate(3), events[1].When())
	require.Equal(t, mkDate(5), events[2].When())
}

func TestConcatEventsSameDateKeepsInputOrder(t *testing.T) {
	// a buy and a sell on the same day must replay in input order, in both
	// directions
	buy := buyEvent(1, "FOO4", "5", "50")
	sell := sellEvent(1, "FOO4", "5", "60")

	events := ConcatEvents(Events([]Trade{buy, sell}))
	require.Equal(t, []Event{buy, sell}, events)

	events = ConcatEvents(Events([]Trade{sell, buy}))
	require.Equal(t, []Event{sell, buy}, events)

	// across kinds, concatenation order is the tie break
	split := Split{Date: mkDate(1), Symbol: "FOO4", Ratio: "2:1"}
	events = ConcatEvents(Events([]Trade{buy}), Events([]Split{split}))
	require.Equal(t, []Event{buy, split}, events)
}

func TestFilterByDate(t *testing.T) {
	events := ConcatEvents(
		Events([]Trade{
			buyEvent(1, "FOO4", "1", "10"),
			buyEvent(10, "FOO4", "1", "10"),
			buyEvent(20, "FOO4", "1", "10"),
		}),
	)

	filtered := FilterByDate(events, mkDate(10))
	require.Len(t, filtered, 2)
	for _, ev := range filtered {
		require.False(t, ev.When().After(mkDate(10)))
	}
}

func TestFilterByDateAtBoundaryIsIdentity(t *testing.T) {
	issued := mkDate(4)
	events := ConcatEvents(
		Events([]Trade{buyEvent(1, "FOO4", "1", "10"), sellEvent(9, "FOO4", "1", "12")}),
		Events([]Right{rightEvent(2, "FOO4", &issued)}),
		Events([]Split{{Date: mkDate(9), Symbol: "FOO4", Ratio: "2:1"}}),
	)

	filtered := FilterByDate(events, mkDate(9))
	require.Equal(t, events, filtered)
}

func TestFilterRightsByIssueDate(t *testing.T) {
	issuedLate := mkDate(15)
	rights := []Right{
		rightEvent(1, "FOO4", nil),         // never issued
		rightEvent(1, "BAR3", &issuedLate), // issued after the as-of date
	}
	filtered := FilterByDate(ConcatEvents(Events(rights)), mkDate(10))
	require.Empty(t, filtered)

	// issue date on the as-of date is kept, even though the economic date
	// precedes it
	issuedOn := mkDate(10)
	filtered = FilterByDate(ConcatEvents(Events([]Right{rightEvent(1, "FOO4", &issuedOn)})), mkDate(10))
	require.Len(t, filtered, 1)
}

func TestComputePositionsReplaysWholeStream(t *testing.T) {
	issued := mkDate(6)
	trades := []Trade{
		buyEvent(1, "FOO4", "8", "101.4"),
		buyEvent(2, "FOO4", "8", "96.86"),
		sellEvent(3, "FOO4", "5", "98.93"),
		buyEvent(4, "ZZZ3", "10", "109"),
	}
	rights := []Right{rightEvent(5, "FOO4", &issued)}
	mergers := []Merger{{Date: mkDate(7), Symbol: "ZZZ3", Acquirer: "BAR3", Ratio: "2:1"}}

	rows, err := ComputePositions(mkDate(10), mkDate(10), trades, rights, nil, mergers, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "BAR3", rows[0].Symbol)
	rqDecEq(t, "5", rows[0].Quantity)
	rqDecEq(t, "109", rows[0].Cost)
	rqDecEq(t, "21.8", rows[0].CostPerShare)

	// 11 @ 12.39125 plus the 4 exercised at 10.5
	require.Equal(t, "FOO4", rows[1].Symbol)
	rqDecEq(t, "15", rows[1].Quantity)
	rqDecEq(t, "178.3", rows[1].Cost)
	rqDecEq(t, "11.89", rows[1].CostPerShare)
}

func TestComputePositionsAbortsOnBadData(t *testing.T) {
	trades := []Trade{sellEvent(1, "FOO4", "1", "10")}
	rows, err := ComputePositions(mkDate(10), mkDate(10), trades, nil, nil, nil, nil, nil)
	var notOpen *PositionNotOpenError
	require.ErrorAs(t, err, &notOpen)
	require.Nil(t, rows)
}

func TestParseRatio(t *testing.T) {
	cases := []struct {
		ratio    string
		expected string
	}{
		{"2:1", "2"},
		{"1:2", "0.5"},
		{"2,5:1", "2.5"},
		{"3:4", "0.75"},
		{"10:1", "10"},
	}
	for _, c := range cases {
		got, err := ParseRatio(c.ratio)
		require.NoError(t, err, c.ratio)
		rqDecEq(t, c.expected, got)
	}

	for _, bad := range []string{"", "2", "banana", "2:", ":1", "2:0", "0:2", "-1:2", "1:2:3"} {
		_, err := ParseRatio(bad)
		var invalid *InvalidRatioError
		require.ErrorAs(t, err, &invalid, bad)
	}
}
