package mrp

import (
	"strconv"
	"strings"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// MasterIndex resolves a material id to its rendered catalog metadata.
// Duplicate ids keep the first catalog row (first-match-wins, catalog order).
type MasterIndex struct {
	byID map[string]entity.MaterialMaster
}

// NewMasterIndex builds the index from the catalog snapshot.
func NewMasterIndex(catalog []entity.MaterialMaster) *MasterIndex {
	byID := make(map[string]entity.MaterialMaster, len(catalog))
	for _, row := range catalog {
		if _, ok := byID[row.MaterialID]; !ok {
			byID[row.MaterialID] = row
		}
	}
	return &MasterIndex{byID: byID}
}

// Resolve returns the metadata bundle for a material. A missing catalog row
// is not an error: the material still gets a projection, grouped under
// UNKNOWN with empty metadata and zero safety stock.
func (ix *MasterIndex) Resolve(materialID string) entity.MaterialMeta {
	row, ok := ix.byID[materialID]
	if !ok {
		return entity.MaterialMeta{Keyword: entity.UnknownKeyword, LeadTime: "n/a"}
	}

	keyword := strings.TrimSpace(row.Keyword)
	if keyword == "" {
		keyword = entity.UnknownKeyword
	}

	leadTime := "n/a"
	if row.LeadTimeDays != nil {
		leadTime = strconv.Itoa(*row.LeadTimeDays)
	}

	return entity.MaterialMeta{
		Keyword:         keyword,
		SupplierKeyword: strings.TrimSpace(row.SupplierKeyword),
		Width:           withUnit(row.Width),
		Length:          withUnit(row.Length),
		SupplierRef:     row.SupplierRef,
		Description:     row.Description,
		LeadTime:        leadTime,
		SafetyStock:     row.SafetyStock,
	}
}

// withUnit renders a dimension as "<value> mm", or empty when not maintained.
func withUnit(v string) string {
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v + " mm"
}
