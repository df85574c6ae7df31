package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikkovaltonen/mrp-pipeline/internal/application/usecase"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
	"github.com/mikkovaltonen/mrp-pipeline/internal/infrastructure/memory"
	"github.com/mikkovaltonen/mrp-pipeline/pkg/logger"
)

var asOf = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

// recordSink captures stored snapshots instead of persisting them.
type recordSink struct {
	name   string
	stored []repository.Snapshot
}

func (s *recordSink) Name() string { return s.name }

func (s *recordSink) Store(_ context.Context, snap repository.Snapshot) error {
	s.stored = append(s.stored, snap)
	return nil
}

func quietLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "production", Level: "error"})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testMovements() []entity.Movement {
	return []entity.Movement{
		{
			MaterialID: "100026", Date: asOf, Kind: "Goods receipt",
			In: dec("40"), StockBefore: dec("0"), StockAfter: dec("40"),
		},
		{
			MaterialID: "100026", Date: asOf.AddDate(0, 0, 2), Kind: "Reservation",
			Out: dec("1.32"),
		},
		{
			MaterialID: "100059", Date: asOf.AddDate(0, 0, 1), Kind: "Reservation",
			Out: dec("5"), StockBefore: dec("2"),
		},
	}
}

func testCatalog() []entity.MaterialMaster {
	return []entity.MaterialMaster{
		{MaterialID: "100026", Keyword: "PET-CLEAR", SafetyStock: 100},
	}
}

func newPipeline(backup, sink *recordSink) *usecase.PipelineUseCase {
	var sinks []repository.ProjectionSink
	if sink != nil {
		sinks = append(sinks, sink)
	}
	var b repository.ProjectionSink
	if backup != nil {
		b = backup
	}
	return usecase.NewPipelineUseCase(
		memory.NewMovementSource(testMovements()),
		memory.NewMasterSource(testCatalog()),
		b, sinks,
		mrp.NewAggregator(nil),
		quietLogger(),
	)
}

func TestPipelineRun_FullSnapshot(t *testing.T) {
	backup := &recordSink{name: "backup"}
	sink := &recordSink{name: "remote"}

	report, err := newPipeline(backup, sink).Run(context.Background(), usecase.RunOptions{AsOf: asOf})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 3, report.MovementCount)
	assert.Equal(t, 1, report.CatalogCount)
	assert.Equal(t, 2, report.MaterialCount)
	assert.Equal(t, 2, report.FamilyCount, "PET-CLEAR and UNKNOWN")
	assert.Equal(t, 1, report.UnknownCount)

	// 100026 ends below its safety stock of 100; 100059 goes negative on day 1.
	assert.Equal(t, 1, report.ShortageCount)
	assert.Equal(t, 2, report.BelowSafetyCount)

	require.Len(t, backup.stored, 1)
	require.Len(t, sink.stored, 1)
	assert.Equal(t, report.Snapshot.RunID, sink.stored[0].RunID)

	pet := report.Snapshot.Groups["PET-CLEAR"]
	require.NotNil(t, pet)
	require.Len(t, pet.Materials, 1)
	assert.Equal(t, "38.68", pet.Materials[0].FinalStock.String())
}

// Filter mode writes the local backup but never touches remote sinks.
func TestPipelineRun_FilterModeSkipsRemoteSinks(t *testing.T) {
	backup := &recordSink{name: "backup"}
	sink := &recordSink{name: "remote"}

	report, err := newPipeline(backup, sink).Run(context.Background(), usecase.RunOptions{
		AsOf:       asOf,
		MaterialID: "100026",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, report.MaterialCount)
	assert.Len(t, backup.stored, 1)
	assert.Empty(t, sink.stored)
}

func TestPipelineRun_FilterNotFoundSurfaces(t *testing.T) {
	_, err := newPipeline(nil, nil).Run(context.Background(), usecase.RunOptions{
		AsOf:       asOf,
		MaterialID: "999999",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMaterialNotFound)
}

func TestPipelineRun_AsOfNormalizedToDay(t *testing.T) {
	report, err := newPipeline(nil, nil).Run(context.Background(), usecase.RunOptions{
		AsOf: asOf.Add(17*time.Hour + 45*time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, asOf, report.AsOf)
	// The day-2 reservation on 100026 stays in the future even though the
	// caller's instant was late in the day.
	pet := report.Snapshot.Groups["PET-CLEAR"]
	assert.Equal(t, "1.32", pet.Materials[0].Reservations.String())
}
