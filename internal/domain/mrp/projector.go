package mrp

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// Projection is the unrounded result of projecting one material's timeline.
// Presentation rounding (two decimals) is the aggregator's job; the shortage
// walk below must see unrounded running totals.
type Projection struct {
	CurrentStock  decimal.Decimal
	ToBeDelivered decimal.Decimal
	Reservations  decimal.Decimal
	FinalStock    decimal.Decimal
	ShortageDate  *time.Time
}

// Project derives current stock from the timeline boundary and simulates the
// future subsequence to find the first shortage.
//
// The current-stock anchor is only trustworthy adjacent to the as-of instant:
// the StockAfter of the last historical movement, or, with no history, the
// StockBefore of the first future movement. No movements at all means zero.
func Project(tl Timeline) Projection {
	var current decimal.Decimal
	switch {
	case len(tl.Historical) > 0:
		current = tl.Historical[len(tl.Historical)-1].StockAfter
	case len(tl.Future) > 0:
		current = tl.Future[0].StockBefore
	}

	var in, out decimal.Decimal
	for _, m := range tl.Future {
		in = in.Add(m.In)
		out = out.Add(m.Out)
	}

	return Projection{
		CurrentStock:  current,
		ToBeDelivered: in,
		Reservations:  out,
		FinalStock:    current.Add(in).Sub(out),
		ShortageDate:  firstShortageDate(tl.Future, current),
	}
}

// firstShortageDate walks the future movements in order, applying each net
// delta (In - Out) to the running stock, and returns the date of the first
// movement that drives it strictly negative. A single forward pass is
// required: a transient shortage can occur even when the final net stock is
// positive, so the final total alone proves nothing.
func firstShortageDate(future []entity.Movement, startingStock decimal.Decimal) *time.Time {
	running := startingStock
	for _, m := range future {
		running = running.Add(m.In).Sub(m.Out)
		if running.IsNegative() {
			d := m.Date
			return &d
		}
	}
	return nil
}
