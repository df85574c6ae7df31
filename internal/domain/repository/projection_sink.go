package repository

import (
	"context"
	"time"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
)

// Snapshot is one completed aggregation pass handed to the sinks.
type Snapshot struct {
	RunID    string
	AsOf     time.Time
	Keywords []string // group keys in first-encounter order
	Groups   map[string]*entity.FamilyGroup
}

// Ordered returns the groups in Keywords order.
func (s Snapshot) Ordered() []*entity.FamilyGroup {
	out := make([]*entity.FamilyGroup, 0, len(s.Keywords))
	for _, k := range s.Keywords {
		out = append(out, s.Groups[k])
	}
	return out
}

// ProjectionSink persists a run's family groups (local backup, Firestore,
// Postgres). Sinks own their formats; the pipeline only hands them the snapshot.
type ProjectionSink interface {
	Name() string
	Store(ctx context.Context, snap Snapshot) error
}

// ProjectionStore is the read side served by the HTTP API.
type ProjectionStore interface {
	ListFamilies(ctx context.Context) ([]*entity.FamilyGroup, error)
	GetFamily(ctx context.Context, keyword string) (*entity.FamilyGroup, error)
}
