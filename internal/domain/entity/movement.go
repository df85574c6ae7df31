package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement is one stock-affecting event for one material, as imported from
// the stock-movement workbook. Quantities are already normalized to decimals.
type Movement struct {
	MaterialID  string
	Date        time.Time // calendar day of the event
	Hour        string    // optional HH:MM:SS, orders events within a day
	Kind        string    // free-text classification: purchase order, reservation, correction, ...
	In          decimal.Decimal
	Out         decimal.Decimal
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
}

// Before reports whether m sorts before other under the (date, hour) key.
// Equal keys keep original input order (callers use a stable sort).
func (m Movement) Before(other Movement) bool {
	if !m.Date.Equal(other.Date) {
		return m.Date.Before(other.Date)
	}
	return m.Hour < other.Hour
}
