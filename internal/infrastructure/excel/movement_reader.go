package excel

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

var _ repository.MovementSource = (*MovementReader)(nil)

// MovementReader loads MaterialStockMovement.xlsx. Decimal normalization
// (European comma separators) happens here, at ingestion, so the engine only
// ever sees canonical decimals.
type MovementReader struct {
	path string
}

func NewMovementReader(path string) *MovementReader {
	return &MovementReader{path: path}
}

// Movements reads the full movement snapshot in sheet order.
func (r *MovementReader) Movements(_ context.Context) ([]entity.Movement, error) {
	s, err := openSheet(r.path)
	if err != nil {
		return nil, err
	}

	materialCol, err := s.require("MaterialID")
	if err != nil {
		return nil, err
	}
	dateCol, err := s.require("Date")
	if err != nil {
		return nil, err
	}
	kindCol, err := s.require("KindOfMovement")
	if err != nil {
		return nil, err
	}
	inCol, err := s.require("In")
	if err != nil {
		return nil, err
	}
	outCol, err := s.require("Out")
	if err != nil {
		return nil, err
	}
	beforeCol, err := s.require("StockBefore")
	if err != nil {
		return nil, err
	}
	afterCol, err := s.require("StockAfter")
	if err != nil {
		return nil, err
	}
	hourCol := s.optional("Hour")

	movements := make([]entity.Movement, 0, len(s.rows))
	for i, row := range s.rows {
		id := cell(row, materialCol)
		if id == "" {
			continue // trailing blank rows
		}
		rowNum := i + 2 // 1-based, after the header

		date, err := parseDate(cell(row, dateCol))
		if err != nil {
			return nil, fmt.Errorf("row %d material %s: Date: %w", rowNum, id, err)
		}

		m := entity.Movement{
			MaterialID: id,
			Date:       date,
			Hour:       cell(row, hourCol),
			Kind:       cell(row, kindCol),
		}
		for _, q := range []struct {
			name string
			col  int
			dst  *decimal.Decimal
		}{
			{"In", inCol, &m.In},
			{"Out", outCol, &m.Out},
			{"StockBefore", beforeCol, &m.StockBefore},
			{"StockAfter", afterCol, &m.StockAfter},
		} {
			v, err := mrp.ParseQuantity(cell(row, q.col))
			if err != nil {
				return nil, fmt.Errorf("row %d material %s: %s: %w", rowNum, id, q.name, err)
			}
			*q.dst = v
		}

		movements = append(movements, m)
	}
	return movements, nil
}
