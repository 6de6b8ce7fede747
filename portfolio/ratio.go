package portfolio

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseRatio parses a corporate action ratio expressed as "A:B", with comma
// as the decimal separator, and returns A/B. A merger "2:1" (one new share
// for every two old) parses to 2; a split uses the same string the other way
// around.
func ParseRatio(ratio string) (decimal.Decimal, error) {
	terms := strings.Split(ratio, ":")
	if len(terms) != 2 {
		return decimal.Zero, &InvalidRatioError{Ratio: ratio}
	}

	parsed := make([]decimal.Decimal, 2)
	for i, term := range terms {
		d, err := decimal.NewFromString(strings.ReplaceAll(term, ",", "."))
		if err != nil || !d.IsPositive() {
			return decimal.Zero, &InvalidRatioError{Ratio: ratio}
		}
		parsed[i] = d
	}

	return parsed[0].Div(parsed[1]), nil
}
