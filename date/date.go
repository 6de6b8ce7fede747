package date

import (
	"fmt"
	"time"

	"github.com/stonksapp/stonks/util"
)

const DefaultFormat = "2006-01-02"

// Date represents a pure calendar date, with no effects from time zones or
// time of day. Represented in UTC time at 00:00:00.
type Date struct {
	time time.Time
}

func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func NewFromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

func (d Date) UTCTime() time.Time {
	return d.time
}

func (d Date) isPureUtcDate() bool {
	return d == NewFromTime(d.time)
}

// Parse parses dateStr with the given layout, rejecting layouts or strings
// that carry time-of-day or zone information.
func Parse(layout string, dateStr string) (Date, error) {
	tm, err := time.Parse(layout, dateStr)
	if err != nil {
		return Date{}, err
	}
	d := Date{tm}
	if !d.isPureUtcDate() {
		return Date{}, fmt.Errorf("format %v and string %v did not produce a pure date", layout, dateStr)
	}
	return d, nil
}

func MustParse(layout string, dateStr string) Date {
	d, err := Parse(layout, dateStr)
	util.Assertf(err == nil, "MustParse(%q, %q): %v", layout, dateStr, err)
	return d
}

func Today() Date {
	return NewFromTime(time.Now())
}

func (d Date) Equal(other Date) bool {
	return d.time.Equal(other.time)
}

// After reports whether the date instant d is after u.
func (d Date) After(u Date) bool {
	return d.time.After(u.time)
}

// Before reports whether the date instant d is before u.
func (d Date) Before(u Date) bool {
	return d.time.Before(u.time)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) AddDays(nDays int) Date {
	newDate := Date{d.time.AddDate(0, 0, nDays)}
	util.Assert(newDate.isPureUtcDate(), "time.Time.Add of days resulted in time-of-day change")
	return newDate
}

func (d Date) Year() int {
	return d.time.Year()
}

func (d Date) Parts() (int, time.Month, int) {
	return d.time.Date()
}

func (d Date) Format(layout string) string {
	return d.time.Format(layout)
}

func (d Date) String() string {
	year, month, day := d.time.Date()
	return fmt.Sprintf("%d-%02d-%02d", year, month, day)
}

// PreviousMonth15th returns the 15th of the month preceding d. US dividends
// are converted with the rate anchored on that day.
func PreviousMonth15th(d Date) Date {
	year, month, _ := d.time.Date()
	return Date{time.Date(year, month, 15, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)}
}
