package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
	"github.com/mikkovaltonen/mrp-pipeline/pkg/logger"
)

// RunOptions parameters for one pipeline execution.
type RunOptions struct {
	// AsOf is the reference instant separating historical from future
	// movements, at calendar-day granularity. Always supplied by the caller;
	// the pipeline never reads the clock for it.
	AsOf time.Time
	// MaterialID restricts the run to a single material (test mode). Remote
	// sinks are skipped in this mode; only the local backup is written.
	MaterialID string
}

// RunReport summarizes one pipeline execution for logging and the run summary.
type RunReport struct {
	RunID            string
	AsOf             time.Time
	StartedAt        time.Time
	Duration         time.Duration
	MovementCount    int
	CatalogCount     int
	MaterialCount    int
	FamilyCount      int
	SkippedCount     int
	ShortageCount    int
	BelowSafetyCount int
	UnknownCount     int // materials grouped under UNKNOWN
	Snapshot         repository.Snapshot
}

// PipelineUseCase orchestrates one projection run:
// extract (sources) -> transform (aggregator) -> validate -> load (sinks).
type PipelineUseCase struct {
	movements repository.MovementSource
	catalog   repository.MasterSource
	backup    repository.ProjectionSink   // always written, also in filter mode
	sinks     []repository.ProjectionSink // remote sinks, skipped in filter mode
	agg       *mrp.Aggregator
	log       *logger.Logger
}

// NewPipelineUseCase wires the pipeline. backup may be nil when no local
// backup is wanted (tests); sinks may be empty.
func NewPipelineUseCase(
	movements repository.MovementSource,
	catalog repository.MasterSource,
	backup repository.ProjectionSink,
	sinks []repository.ProjectionSink,
	agg *mrp.Aggregator,
	log *logger.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		movements: movements,
		catalog:   catalog,
		backup:    backup,
		sinks:     sinks,
		agg:       agg,
		log:       log,
	}
}

// Run executes the pipeline once over the current snapshot.
func (uc *PipelineUseCase) Run(ctx context.Context, opts RunOptions) (*RunReport, error) {
	started := time.Now()
	runID := uuid.NewString()
	log := uc.log.With().Str("run_id", runID).Logger()

	// Extract
	movements, err := uc.movements.Movements(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract movements: %w", err)
	}
	catalog, err := uc.catalog.Catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("extract material master: %w", err)
	}
	log.Info().
		Int("movements", len(movements)).
		Int("catalog_rows", len(catalog)).
		Msg("extract complete")

	// Transform
	if opts.MaterialID != "" {
		log.Info().Str("material_id", opts.MaterialID).Msg("filter mode: processing a single material")
	}
	res, err := uc.agg.Run(movements, catalog, opts.AsOf, opts.MaterialID)
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	for _, id := range res.Skipped {
		log.Warn().Str("material_id", id).Msg("material skipped: no movement records")
	}

	snap := repository.Snapshot{
		RunID:    runID,
		AsOf:     mrp.Normalize(opts.AsOf),
		Keywords: res.Keywords,
		Groups:   res.Groups,
	}

	report := &RunReport{
		RunID:         runID,
		AsOf:          snap.AsOf,
		StartedAt:     started,
		MovementCount: len(movements),
		CatalogCount:  len(catalog),
		MaterialCount: res.MaterialCount,
		FamilyCount:   len(res.Groups),
		SkippedCount:  len(res.Skipped),
		Snapshot:      snap,
	}

	// Validate
	uc.validate(res, report, log)

	// Load
	if uc.backup != nil {
		if err := uc.backup.Store(ctx, snap); err != nil {
			return nil, fmt.Errorf("store %s: %w", uc.backup.Name(), err)
		}
	}
	if opts.MaterialID != "" {
		log.Info().Msg("filter mode: remote sinks skipped")
	} else {
		for _, sink := range uc.sinks {
			if err := sink.Store(ctx, snap); err != nil {
				return nil, fmt.Errorf("store %s: %w", sink.Name(), err)
			}
			log.Info().Str("sink", sink.Name()).Int("families", len(snap.Keywords)).Msg("snapshot stored")
		}
	}

	report.Duration = time.Since(started)
	log.Info().
		Int("families", report.FamilyCount).
		Int("materials", report.MaterialCount).
		Dur("duration", report.Duration).
		Msg("pipeline run complete")
	return report, nil
}

// validate computes the alert counters and logs data-quality warnings.
// None of these conditions abort the run.
func (uc *PipelineUseCase) validate(res *mrp.Result, report *RunReport, log zerolog.Logger) {
	for _, kw := range res.Keywords {
		group := res.Groups[kw]
		for _, p := range group.Materials {
			if p.ShortageDate != nil {
				report.ShortageCount++
			}
			if p.FinalStock.LessThan(decimal.NewFromInt(int64(p.Meta.SafetyStock))) {
				report.BelowSafetyCount++
			}
		}
	}
	if unknown, ok := res.Groups[entity.UnknownKeyword]; ok {
		report.UnknownCount = unknown.MaterialCount
		log.Warn().
			Int("materials", unknown.MaterialCount).
			Msg("materials without a substrate-family keyword")
	}
}
