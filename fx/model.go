package fx

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
)

// DailyRate is the PTAX USD/BRL quote for one day. Selling rate converts
// amounts the investor paid in USD; buying rate converts amounts received
// (dividends).
type DailyRate struct {
	Date        date.Date
	BuyingRate  decimal.Decimal
	SellingRate decimal.Decimal
}

func (r DailyRate) Equal(other DailyRate) bool {
	return r.Date.Equal(other.Date) &&
		r.BuyingRate.Equal(other.BuyingRate) &&
		r.SellingRate.Equal(other.SellingRate)
}

func (r DailyRate) String() string {
	return fmt.Sprintf("%s : %s/%s", r.Date, r.BuyingRate, r.SellingRate)
}
