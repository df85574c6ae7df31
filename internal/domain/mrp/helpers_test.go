package mrp_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// asOf is the reference boundary used across the engine tests; day(n) is n
// calendar days after it.
var asOf = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return asOf.AddDate(0, 0, n)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// mov builds a movement with the quantity fields most tests care about.
func mov(id string, date time.Time, kind string, in, out string) entity.Movement {
	return entity.Movement{
		MaterialID: id,
		Date:       date,
		Kind:       kind,
		In:         dec(in),
		Out:        dec(out),
	}
}
