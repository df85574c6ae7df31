package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/mikkovaltonen/mrp-pipeline/internal/application/usecase"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/mrp"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
	"github.com/mikkovaltonen/mrp-pipeline/internal/infrastructure/excel"
	"github.com/mikkovaltonen/mrp-pipeline/internal/infrastructure/firestore"
	"github.com/mikkovaltonen/mrp-pipeline/internal/infrastructure/localfs"
	"github.com/mikkovaltonen/mrp-pipeline/internal/infrastructure/postgres"
	"github.com/mikkovaltonen/mrp-pipeline/pkg/config"
	"github.com/mikkovaltonen/mrp-pipeline/pkg/logger"
)

func main() {
	var materialID string
	pflag.StringVarP(&materialID, "material-id", "m", "",
		"process only this material id (test mode: remote sinks are skipped)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("movement_file", cfg.Files.MovementPath).
		Str("master_file", cfg.Files.MasterPath).
		Msg("starting pipeline")
	if materialID != "" {
		log.Info().Str("material_id", materialID).Msg("test mode")
	}

	ctx := context.Background()

	movements := excel.NewMovementReader(cfg.Files.MovementPath)
	masters := excel.NewMasterReader(cfg.Files.MasterPath)
	backup := localfs.NewJSONBackup(cfg.Files.OutputDir)
	summary := localfs.NewSummaryWriter(cfg.Files.OutputDir)

	var sinks []repository.ProjectionSink
	if cfg.Firestore.Enabled {
		if cfg.Firestore.APIKey == "" || cfg.Firestore.Email == "" {
			log.Warn().Msg("firestore enabled but credentials missing; continuing with local output only")
		} else {
			sinks = append(sinks, firestore.NewSink(firestore.Config{
				APIKey:     cfg.Firestore.APIKey,
				ProjectID:  cfg.Firestore.ProjectID,
				Email:      cfg.Firestore.Email,
				Password:   cfg.Firestore.Password,
				Collection: cfg.Firestore.Collection,
			}, log))
		}
	}
	if cfg.DB.Enabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("PostgreSQL connection")
		}
		defer pool.Close()
		repo := postgres.NewProjectionRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("PostgreSQL schema")
		}
		sinks = append(sinks, repo)
	}

	uc := usecase.NewPipelineUseCase(
		movements, masters, backup, sinks,
		mrp.NewAggregator(cfg.MRP.CorrectionKeywords),
		log,
	)

	started := time.Now()
	report, err := uc.Run(ctx, usecase.RunOptions{
		AsOf:       time.Now(),
		MaterialID: materialID,
	})
	if err != nil {
		if werr := summary.WriteFailure(started, err); werr != nil {
			log.Warn().Err(werr).Msg("write failure summary")
		}
		if errors.Is(err, domain.ErrMaterialNotFound) {
			log.Error().Err(err).Msg("requested material has no movement records")
		} else {
			log.Error().Err(err).Msg("pipeline failed")
		}
		os.Exit(1)
	}

	if err := summary.Write(report); err != nil {
		log.Warn().Err(err).Msg("write run summary")
	}
	if materialID != "" {
		logFilteredMaterial(log, report, materialID)
	}
}

// logFilteredMaterial prints the single projection of a test-mode run, the
// detail an operator debugging one material wants at a glance.
func logFilteredMaterial(log *logger.Logger, report *usecase.RunReport, materialID string) {
	for _, kw := range report.Snapshot.Keywords {
		for _, p := range report.Snapshot.Groups[kw].Materials {
			if p.MaterialID != materialID {
				continue
			}
			ev := log.Info().
				Str("material_id", p.MaterialID).
				Str("family", kw).
				Str("supplier", p.Meta.SupplierKeyword).
				Str("lead_time", p.Meta.LeadTime).
				Int("safety_stock", p.Meta.SafetyStock).
				Str("current_stock", p.CurrentStock.StringFixed(2)).
				Str("to_be_delivered", p.ToBeDelivered.StringFixed(2)).
				Str("reservations", p.Reservations.StringFixed(2)).
				Str("final_stock", p.FinalStock.StringFixed(2)).
				Str("historical_slit", p.Assessment)
			if p.ShortageDate != nil {
				ev = ev.Str("expected_shortage", p.ShortageDate.Format("2006-01-02"))
			}
			ev.Msg("material projection")
			return
		}
	}
}
