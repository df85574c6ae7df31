package memory

import (
	"context"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

var (
	_ repository.MovementSource = (*MovementSource)(nil)
	_ repository.MasterSource   = (*MasterSource)(nil)
)

// MovementSource serves a fixed movement snapshot from memory. Used in tests
// and for replaying exported data without the workbooks.
type MovementSource struct {
	movements []entity.Movement
}

func NewMovementSource(movements []entity.Movement) *MovementSource {
	return &MovementSource{movements: movements}
}

func (s *MovementSource) Movements(_ context.Context) ([]entity.Movement, error) {
	return s.movements, nil
}

// MasterSource serves a fixed catalog snapshot from memory.
type MasterSource struct {
	catalog []entity.MaterialMaster
}

func NewMasterSource(catalog []entity.MaterialMaster) *MasterSource {
	return &MasterSource{catalog: catalog}
}

func (s *MasterSource) Catalog(_ context.Context) ([]entity.MaterialMaster, error) {
	return s.catalog, nil
}
