package repository

import (
	"context"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// MovementSource supplies the complete movement snapshot for a run, already
// parsed and decimal-normalized. The core never reads files itself.
type MovementSource interface {
	Movements(ctx context.Context) ([]entity.Movement, error)
}

// MasterSource supplies the material-master catalog snapshot, in catalog order.
type MasterSource interface {
	Catalog(ctx context.Context) ([]entity.MaterialMaster, error)
}
