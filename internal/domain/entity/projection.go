package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Historical-correction assessment labels.
const (
	AssessmentNoData         = "No data"
	AssessmentNoCorrections  = "No corrections"
	AssessmentSlitOutput     = "Slit output"
	AssessmentConsumedBySlit = "Consumed by slit"
	AssessmentNoMovement     = "Corrections with no movement"
)

// MaterialProjection is one material's forward-looking stock result.
// Quantities are presentation values, rounded to two decimal places;
// immutable once composed by the aggregator.
type MaterialProjection struct {
	MaterialID    string
	Meta          MaterialMeta
	CurrentStock  decimal.Decimal
	ToBeDelivered decimal.Decimal
	Reservations  decimal.Decimal
	FinalStock    decimal.Decimal // = CurrentStock + ToBeDelivered - Reservations
	ShortageDate  *time.Time      // first future day the simulated stock goes negative; nil = none
	Assessment    string
}

// FamilyGroup is one substrate family's summary: its materials in insertion
// order plus running totals accumulated from the rounded per-material values.
type FamilyGroup struct {
	Keyword       string
	Materials     []MaterialProjection
	MaterialCount int
	CurrentStock  decimal.Decimal
	ToBeDelivered decimal.Decimal
	Reservations  decimal.Decimal
	FinalStock    decimal.Decimal
}

// Add appends a material projection and folds its rounded values into the
// group totals. Summing the already-rounded values is deliberate: downstream
// consumers reconcile against these exact figures.
func (g *FamilyGroup) Add(p MaterialProjection) {
	g.Materials = append(g.Materials, p)
	g.MaterialCount++
	g.CurrentStock = g.CurrentStock.Add(p.CurrentStock)
	g.ToBeDelivered = g.ToBeDelivered.Add(p.ToBeDelivered)
	g.Reservations = g.Reservations.Add(p.Reservations)
	g.FinalStock = g.FinalStock.Add(p.FinalStock)
}
