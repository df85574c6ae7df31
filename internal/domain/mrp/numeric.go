package mrp

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
)

// ParseQuantity converts a raw quantity cell into a decimal. The source
// workbooks use the European comma as decimal separator ("1,32" -> 1.32).
//
// Empty or whitespace-only input yields zero with no error: quantity columns
// are sparsely filled and an absent value means "no movement on this side",
// not bad data. Anything non-empty that still fails to parse after separator
// substitution is malformed source data and must abort the run.
func ParseQuantity(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, nil
	}

	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrMalformedQuantity, raw)
	}
	return d, nil
}
