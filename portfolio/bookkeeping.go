package portfolio

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stonksapp/stonks/date"
)

// Positions is the in-memory ledger of open positions, keyed by symbol. A
// fresh ledger lives for exactly one replay pass; it is never persisted or
// shared.
type Positions struct {
	positions map[string]Position
}

func NewPositions() *Positions {
	return &Positions{positions: make(map[string]Position)}
}

func (p *Positions) IsOpen(symbol string) bool {
	_, ok := p.positions[symbol]
	return ok
}

func (p *Positions) Find(symbol string) (Position, bool) {
	pos, ok := p.positions[symbol]
	return pos, ok
}

// Apply replays one event against the ledger. today is the evaluation clock
// for the rights vesting guard; it is passed in rather than read from the
// wall clock so replays stay deterministic.
func (p *Positions) Apply(ev Event, today date.Date) error {
	switch e := ev.(type) {
	case Trade:
		if !e.Quantity.IsPositive() {
			return &InvalidQuantityError{Symbol: e.Symbol, Quantity: e.Quantity}
		}
		switch e.Action {
		case BUY:
			p.open(e.Symbol, e.Quantity, e.Amount)
			return nil
		case SELL:
			return p.sell(e)
		default:
			return &UnknownEventError{Event: ev}
		}
	case Right:
		return p.right(e, today)
	case Split:
		return p.split(e)
	case Merger:
		return p.merger(e)
	case SpinOff:
		return p.spinOff(e)
	case StockDividend:
		return p.stockDividend(e)
	default:
		return &UnknownEventError{Event: ev}
	}
}

// open opens a position or accumulates into it, keeping cost per share as the
// weighted average of everything paid so far.
func (p *Positions) open(symbol string, quantity, amount decimal.Decimal) {
	prev, ok := p.positions[symbol]
	if !ok {
		p.positions[symbol] = Position{
			Quantity:     quantity,
			Cost:         amount,
			CostPerShare: amount.Div(quantity),
		}
		return
	}

	newQuantity := prev.Quantity.Add(quantity)
	newCost := prev.Cost.Add(amount)
	p.positions[symbol] = Position{
		Quantity:     newQuantity,
		Cost:         newCost,
		CostPerShare: newCost.Div(newQuantity),
	}
}

func (p *Positions) sell(e Trade) error {
	prev, ok := p.positions[e.Symbol]
	if !ok {
		// safeguard against incorrect data
		return &PositionNotOpenError{Symbol: e.Symbol}
	}

	newQuantity := prev.Quantity.Sub(e.Quantity)
	if newQuantity.IsZero() {
		// sold all shares, closing position
		delete(p.positions, e.Symbol)
		return nil
	}

	// sells affect quantity and total cost, never cost per share
	p.positions[e.Symbol] = Position{
		Quantity:     newQuantity,
		Cost:         newQuantity.Mul(prev.CostPerShare),
		CostPerShare: prev.CostPerShare,
	}
	return nil
}

func (p *Positions) right(e Right, today date.Date) error {
	// rights not yet issued must not change current positions
	if e.IssueDate == nil || e.IssueDate.After(today) {
		return nil
	}
	if !e.Exercised.IsPositive() {
		return &InvalidQuantityError{Symbol: e.Symbol, Quantity: e.Exercised}
	}
	p.open(e.Symbol, e.Exercised, e.Amount)
	return nil
}

func (p *Positions) split(e Split) error {
	prev, ok := p.positions[e.Symbol]
	if !ok {
		return &PositionNotOpenError{Symbol: e.Symbol}
	}
	ratio, err := ParseRatio(e.Ratio)
	if err != nil {
		return err
	}

	// splits only affect quantity and cost per share
	newQuantity := prev.Quantity.Mul(ratio)
	p.positions[e.Symbol] = Position{
		Quantity:     newQuantity,
		Cost:         prev.Cost,
		CostPerShare: prev.Cost.Div(newQuantity),
	}
	return nil
}

func (p *Positions) merger(e Merger) error {
	prev, ok := p.positions[e.Symbol]
	if !ok {
		return &PositionNotOpenError{Symbol: e.Symbol}
	}
	ratio, err := ParseRatio(e.Ratio)
	if err != nil {
		return err
	}

	// quantity is truncated because fractional shares are not allowed on B3;
	// cost basis is not affected by the merger
	newQuantity := prev.Quantity.Div(ratio).Truncate(0)
	if newQuantity.IsZero() {
		// cost per share would be undefined
		return &InvalidQuantityError{Symbol: e.Symbol, Quantity: newQuantity}
	}

	delete(p.positions, e.Symbol)
	p.positions[e.Acquirer] = Position{
		Quantity:     newQuantity,
		Cost:         prev.Cost,
		CostPerShare: prev.Cost.Div(newQuantity),
	}
	return nil
}

func (p *Positions) spinOff(e SpinOff) error {
	prev, ok := p.positions[e.Symbol]
	if !ok {
		return &PositionNotOpenError{Symbol: e.Symbol}
	}
	ratio, err := ParseRatio(e.Ratio)
	if err != nil {
		return err
	}

	newcoQuantity := prev.Quantity.Div(ratio).Truncate(0)
	if newcoQuantity.IsZero() {
		return &InvalidQuantityError{Symbol: e.NewCompany, Quantity: newcoQuantity}
	}
	newcoCost := prev.Cost.Mul(e.CostBasis)
	p.positions[e.NewCompany] = Position{
		Quantity:     newcoQuantity,
		Cost:         newcoCost,
		CostPerShare: newcoCost.Div(newcoQuantity),
	}

	// the original position keeps its quantity; the transferred cost basis
	// leaves it
	newCost := prev.Cost.Sub(newcoCost)
	p.positions[e.Symbol] = Position{
		Quantity:     prev.Quantity,
		Cost:         newCost,
		CostPerShare: newCost.Div(prev.Quantity),
	}
	return nil
}

func (p *Positions) stockDividend(e StockDividend) error {
	prev, ok := p.positions[e.Symbol]
	if !ok {
		return &PositionNotOpenError{Symbol: e.Symbol}
	}
	if !e.Quantity.IsPositive() {
		return &InvalidQuantityError{Symbol: e.Symbol, Quantity: e.Quantity}
	}

	newQuantity := prev.Quantity.Add(e.Quantity)
	newCost := prev.Cost.Add(e.Quantity.Mul(e.Cost))
	p.positions[e.Symbol] = Position{
		Quantity:     newQuantity,
		Cost:         newCost,
		CostPerShare: newCost.Div(newQuantity),
	}
	return nil
}

// Snapshot returns the open positions ordered by symbol. Cost and cost per
// share are rounded to 2 decimal places here and nowhere else; rounding
// intermediate replay steps would compound the error.
func (p *Positions) Snapshot() []PositionRow {
	rows := make([]PositionRow, 0, len(p.positions))
	for symbol, pos := range p.positions {
		rows = append(rows, PositionRow{
			Symbol:       symbol,
			Quantity:     pos.Quantity,
			Cost:         pos.Cost.Round(2),
			CostPerShare: pos.CostPerShare.Round(2),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Symbol < rows[j].Symbol })
	return rows
}
