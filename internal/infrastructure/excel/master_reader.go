package excel

import (
	"context"
	"fmt"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

var _ repository.MasterSource = (*MasterReader)(nil)

// MasterReader loads MaterialModule.xlsx, the material-master catalog.
// Only MaterialID is required; every other column is optional and defaults,
// since the catalog is maintained by hand and rarely complete.
type MasterReader struct {
	path string
}

func NewMasterReader(path string) *MasterReader {
	return &MasterReader{path: path}
}

// Catalog reads the catalog snapshot in sheet order (the lookup is
// first-match-wins, so order matters for duplicate ids).
func (r *MasterReader) Catalog(_ context.Context) ([]entity.MaterialMaster, error) {
	s, err := openSheet(r.path)
	if err != nil {
		return nil, err
	}

	materialCol, err := s.require("MaterialID")
	if err != nil {
		return nil, err
	}
	keywordCol := s.optional("MaterialKeyword")
	supplierCol := s.optional("SupplierKeyword")
	widthCol := s.optional("MaterialWidth")
	lengthCol := s.optional("MaterialLength")
	refCol := s.optional("RefSupplier")
	descCol := s.optional("MaterialDescription")
	leadCol := s.optional("LeadTime")
	minStockCol := s.optional("MinStock")

	catalog := make([]entity.MaterialMaster, 0, len(s.rows))
	for i, row := range s.rows {
		id := cell(row, materialCol)
		if id == "" {
			continue
		}
		rowNum := i + 2

		entry := entity.MaterialMaster{
			MaterialID:      id,
			Keyword:         cell(row, keywordCol),
			SupplierKeyword: cell(row, supplierCol),
			Width:           cell(row, widthCol),
			Length:          cell(row, lengthCol),
			SupplierRef:     cell(row, refCol),
			Description:     cell(row, descCol),
		}

		if raw := cell(row, leadCol); raw != "" {
			days, err := parseWholeNumber(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d material %s: LeadTime: %w", rowNum, id, err)
			}
			entry.LeadTimeDays = &days
		}
		if raw := cell(row, minStockCol); raw != "" {
			n, err := parseWholeNumber(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d material %s: MinStock: %w", rowNum, id, err)
			}
			entry.SafetyStock = n
		}

		catalog = append(catalog, entry)
	}
	return catalog, nil
}

// parseWholeNumber tolerates decimal notation on integer columns ("14,0"),
// which the workbook export produces for numerically-formatted cells.
func parseWholeNumber(raw string) (int, error) {
	d, err := mrp.ParseQuantity(raw)
	if err != nil {
		return 0, err
	}
	return int(d.IntPart()), nil
}
