package dto

import (
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// MaterialProjectionDTO is the wire shape of one material's projection.
// Field names match the documents the dashboard reads.
type MaterialProjectionDTO struct {
	MaterialID      string  `json:"material_id"`
	SupplierKeyword string  `json:"supplier_keyword"`
	Width           string  `json:"width"`
	Length          string  `json:"length"`
	RefAtSupplier   string  `json:"ref_at_supplier"`
	Description     string  `json:"description"`
	LeadTime        string  `json:"lead_time"`
	SafetyStock     int     `json:"safety_stock"`
	CurrentStock    float64 `json:"current_stock"`
	ToBeDelivered   float64 `json:"to_be_delivered"`
	Reservations    float64 `json:"reservations"`
	FinalStock      float64 `json:"final_stock"`
	ExpectedDate    *string `json:"expected_date"` // first shortage day, YYYY-MM-DD; null = none
	HistoricalSlit  string  `json:"historical_slit"`
}

// FamilyGroupDTO is one substrate family's document: its keyword, materials
// and accumulated totals.
type FamilyGroupDTO struct {
	Keyword            string                  `json:"keyword"`
	MaterialCount      int                     `json:"material_count"`
	CurrentStock       float64                 `json:"current_stock"`
	TotalToBeDelivered float64                 `json:"total_to_be_delivered"`
	TotalReservations  float64                 `json:"total_reservations"`
	TotalFinalStock    float64                 `json:"total_final_stock"`
	Materials          []MaterialProjectionDTO `json:"materials"`
}

// FromMaterialProjection maps the domain projection to its wire shape.
func FromMaterialProjection(p entity.MaterialProjection) MaterialProjectionDTO {
	var expected *string
	if p.ShortageDate != nil {
		s := p.ShortageDate.Format("2006-01-02")
		expected = &s
	}
	return MaterialProjectionDTO{
		MaterialID:      p.MaterialID,
		SupplierKeyword: p.Meta.SupplierKeyword,
		Width:           p.Meta.Width,
		Length:          p.Meta.Length,
		RefAtSupplier:   p.Meta.SupplierRef,
		Description:     p.Meta.Description,
		LeadTime:        p.Meta.LeadTime,
		SafetyStock:     p.Meta.SafetyStock,
		CurrentStock:    p.CurrentStock.InexactFloat64(),
		ToBeDelivered:   p.ToBeDelivered.InexactFloat64(),
		Reservations:    p.Reservations.InexactFloat64(),
		FinalStock:      p.FinalStock.InexactFloat64(),
		ExpectedDate:    expected,
		HistoricalSlit:  p.Assessment,
	}
}

// FromFamilyGroup maps a family group and its materials to the wire shape.
func FromFamilyGroup(g *entity.FamilyGroup) FamilyGroupDTO {
	materials := make([]MaterialProjectionDTO, 0, len(g.Materials))
	for _, p := range g.Materials {
		materials = append(materials, FromMaterialProjection(p))
	}
	return FamilyGroupDTO{
		Keyword:            g.Keyword,
		MaterialCount:      g.MaterialCount,
		CurrentStock:       g.CurrentStock.InexactFloat64(),
		TotalToBeDelivered: g.ToBeDelivered.InexactFloat64(),
		TotalReservations:  g.Reservations.InexactFloat64(),
		TotalFinalStock:    g.FinalStock.InexactFloat64(),
		Materials:          materials,
	}
}

// ErrorResponse HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
