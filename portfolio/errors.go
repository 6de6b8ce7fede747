package portfolio

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
)

// PositionNotOpenError signals an event against a symbol with no open
// position. The trade history upstream is incomplete or corrupt; the whole
// computation is aborted.
type PositionNotOpenError struct {
	Symbol string
}

func (e *PositionNotOpenError) Error() string {
	return fmt.Sprintf("position not open: %s", e.Symbol)
}

// UnknownEventError signals an event outside the closed kind set. This is a
// mapping bug, not bad user data.
type UnknownEventError struct {
	Event Event
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("unknown event type: %T", e.Event)
}

// MissingConfirmationError signals a trade whose (date, broker) pair matches
// no trade confirmation.
type MissingConfirmationError struct {
	Date   date.Date
	Broker string
}

func (e *MissingConfirmationError) Error() string {
	return fmt.Sprintf("no trade confirmation for %s/%s", e.Date, e.Broker)
}

// InvalidQuantityError signals an event whose share quantity leaves the
// position arithmetic undefined: a trade or exercise of zero or negative
// shares, or a corporate action whose truncated quantity is zero.
type InvalidQuantityError struct {
	Symbol   string
	Quantity decimal.Decimal
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %s for %s", e.Quantity, e.Symbol)
}

// InvalidRatioError signals a corporate action ratio that does not parse as
// "A:B".
type InvalidRatioError struct {
	Ratio string
}

func (e *InvalidRatioError) Error() string {
	return fmt.Sprintf("invalid ratio %q", e.Ratio)
}
