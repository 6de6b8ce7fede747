package excel

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
	"github.com/stonksapp/stonks/portfolio"
)

// Date layouts accepted in cells, tried in order. excelize renders styled
// date cells with the second one.
var dateLayouts = []string{date.DefaultFormat, "01-02-06", "02/01/2006"}

type rowError struct {
	sheet string
	row   int
	err   error
}

func (e *rowError) Error() string {
	return fmt.Sprintf("sheet %s row %d: %v", e.sheet, e.row+2, e.err)
}

func (e *rowError) Unwrap() error { return e.err }

// record wraps one sheet row with fail-fast typed accessors. The first error
// sticks; callers check err once after reading every field.
type record struct {
	fields map[string]string
	err    error
}

func (r *record) str(key string) string {
	return r.fields[key]
}

func (r *record) date(key string) date.Date {
	if r.err != nil {
		return date.Date{}
	}
	raw := r.fields[key]
	for _, layout := range dateLayouts {
		if d, err := date.Parse(layout, raw); err == nil {
			return d
		}
	}
	r.err = fmt.Errorf("invalid date %q in column %q", raw, key)
	return date.Date{}
}

// dateOrNil is for the nullable issue date: empty cell means nil.
func (r *record) dateOrNil(key string) *date.Date {
	if r.err != nil || r.fields[key] == "" {
		return nil
	}
	d := r.date(key)
	if r.err != nil {
		return nil
	}
	return &d
}

func (r *record) decimal(key string) decimal.Decimal {
	if r.err != nil {
		return decimal.Zero
	}
	raw := r.fields[key]
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		r.err = fmt.Errorf("invalid number %q in column %q", raw, key)
		return decimal.Zero
	}
	return d
}

// The remaining accessors layer the range checks the tables must satisfy
// before any calculation runs. A blank cell reads as zero, so required
// positive columns also catch missing values.

func (r *record) requiredStr(key string) string {
	if r.err != nil {
		return ""
	}
	s := r.fields[key]
	if s == "" {
		r.err = fmt.Errorf("missing value in column %q", key)
	}
	return s
}

func (r *record) positiveDecimal(key string) decimal.Decimal {
	d := r.decimal(key)
	if r.err == nil && !d.IsPositive() {
		r.err = fmt.Errorf("column %q must be positive, got %s", key, d)
	}
	return d
}

func (r *record) nonNegativeDecimal(key string) decimal.Decimal {
	d := r.decimal(key)
	if r.err == nil && d.IsNegative() {
		r.err = fmt.Errorf("column %q must not be negative, got %s", key, d)
	}
	return d
}

// fraction is for the spin-off cost basis: the share of the original cost
// moved to the new company, in (0, 1].
func (r *record) fraction(key string) decimal.Decimal {
	d := r.positiveDecimal(key)
	if r.err == nil && d.GreaterThan(decimal.New(1, 0)) {
		r.err = fmt.Errorf("column %q must be a fraction in (0, 1], got %s", key, d)
	}
	return d
}

func (r *record) ratio(key string) string {
	if r.err != nil {
		return ""
	}
	raw := r.fields[key]
	if _, err := portfolio.ParseRatio(raw); err != nil {
		r.err = err
	}
	return raw
}

func (r *record) action(key string) portfolio.TradeAction {
	if r.err != nil {
		return portfolio.NO_ACTION
	}
	a, err := portfolio.ParseTradeAction(r.fields[key])
	if err != nil {
		r.err = err
	}
	return a
}

// readSheet maps every row of a sheet through parse, wrapping errors with
// sheet and row context.
func readSheet[T any](w *Workbook, sheet string, parse func(*record) T) ([]T, error) {
	records, err := w.sheetRecords(sheet)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for i, fields := range records {
		r := &record{fields: fields}
		v := parse(r)
		if r.err != nil {
			return nil, &rowError{sheet: sheet, row: i, err: r.err}
		}
		out = append(out, v)
	}
	return out, nil
}
