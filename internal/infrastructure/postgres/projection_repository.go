package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mikkovaltonen/mrp-pipeline/internal/domain"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/entity"
	"github.com/mikkovaltonen/mrp-pipeline/internal/domain/repository"
)

var (
	_ repository.ProjectionSink  = (*ProjectionRepo)(nil)
	_ repository.ProjectionStore = (*ProjectionRepo)(nil)
)

// ProjectionRepo persists family-group snapshots in PostgreSQL and serves
// them to the read API. Each run replaces the affected families wholesale;
// the table always holds the latest snapshot per family.
type ProjectionRepo struct {
	pool *pgxpool.Pool
}

func NewProjectionRepository(pool *pgxpool.Pool) *ProjectionRepo {
	return &ProjectionRepo{pool: pool}
}

func (r *ProjectionRepo) Name() string { return "postgres" }

// EnsureSchema creates the snapshot tables when absent.
func (r *ProjectionRepo) EnsureSchema(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS family_group (
			keyword         text PRIMARY KEY,
			material_count  integer NOT NULL,
			current_stock   numeric NOT NULL,
			to_be_delivered numeric NOT NULL,
			reservations    numeric NOT NULL,
			final_stock     numeric NOT NULL,
			run_id          text NOT NULL,
			as_of           date NOT NULL,
			updated_at      timestamptz NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS material_projection (
			keyword         text NOT NULL REFERENCES family_group (keyword) ON DELETE CASCADE,
			position        integer NOT NULL,
			material_id     text NOT NULL,
			supplier_keyword text NOT NULL DEFAULT '',
			width           text NOT NULL DEFAULT '',
			length          text NOT NULL DEFAULT '',
			ref_at_supplier text NOT NULL DEFAULT '',
			description     text NOT NULL DEFAULT '',
			lead_time       text NOT NULL DEFAULT 'n/a',
			safety_stock    integer NOT NULL DEFAULT 0,
			current_stock   numeric NOT NULL,
			to_be_delivered numeric NOT NULL,
			reservations    numeric NOT NULL,
			final_stock     numeric NOT NULL,
			expected_date   date,
			historical_slit text NOT NULL,
			PRIMARY KEY (keyword, material_id)
		);`
	if _, err := r.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Store upserts every family of the snapshot in one transaction, replacing
// each family's material list.
func (r *ProjectionRepo) Store(ctx context.Context, snap repository.Snapshot) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, kw := range snap.Keywords {
		if err := storeGroup(ctx, tx, snap, snap.Groups[kw]); err != nil {
			return fmt.Errorf("store family %q: %w", kw, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func storeGroup(ctx context.Context, tx pgx.Tx, snap repository.Snapshot, g *entity.FamilyGroup) error {
	const upsertGroup = `
		INSERT INTO family_group
			(keyword, material_count, current_stock, to_be_delivered, reservations, final_stock, run_id, as_of, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (keyword) DO UPDATE SET
			material_count = EXCLUDED.material_count,
			current_stock = EXCLUDED.current_stock,
			to_be_delivered = EXCLUDED.to_be_delivered,
			reservations = EXCLUDED.reservations,
			final_stock = EXCLUDED.final_stock,
			run_id = EXCLUDED.run_id,
			as_of = EXCLUDED.as_of,
			updated_at = now()`
	if _, err := tx.Exec(ctx, upsertGroup,
		g.Keyword, g.MaterialCount, g.CurrentStock, g.ToBeDelivered, g.Reservations, g.FinalStock,
		snap.RunID, snap.AsOf,
	); err != nil {
		return fmt.Errorf("upsert group: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM material_projection WHERE keyword = $1`, g.Keyword); err != nil {
		return fmt.Errorf("clear materials: %w", err)
	}

	const insertMaterial = `
		INSERT INTO material_projection
			(keyword, position, material_id, supplier_keyword, width, length, ref_at_supplier,
			 description, lead_time, safety_stock, current_stock, to_be_delivered, reservations,
			 final_stock, expected_date, historical_slit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	for i, p := range g.Materials {
		if _, err := tx.Exec(ctx, insertMaterial,
			g.Keyword, i, p.MaterialID,
			p.Meta.SupplierKeyword, p.Meta.Width, p.Meta.Length, p.Meta.SupplierRef,
			p.Meta.Description, p.Meta.LeadTime, p.Meta.SafetyStock,
			p.CurrentStock, p.ToBeDelivered, p.Reservations, p.FinalStock,
			p.ShortageDate, p.Assessment,
		); err != nil {
			return fmt.Errorf("insert material %s: %w", p.MaterialID, err)
		}
	}
	return nil
}

// ListFamilies returns every family's totals, alphabetically, without
// materials (the list view only shows the roll-up).
func (r *ProjectionRepo) ListFamilies(ctx context.Context) ([]*entity.FamilyGroup, error) {
	const query = `
		SELECT keyword, material_count, current_stock, to_be_delivered, reservations, final_stock
		FROM family_group ORDER BY keyword`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()

	var groups []*entity.FamilyGroup
	for rows.Next() {
		var g entity.FamilyGroup
		if err := rows.Scan(
			&g.Keyword, &g.MaterialCount, &g.CurrentStock, &g.ToBeDelivered, &g.Reservations, &g.FinalStock,
		); err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		groups = append(groups, &g)
	}
	return groups, rows.Err()
}

// GetFamily returns one family with its materials in stored order.
func (r *ProjectionRepo) GetFamily(ctx context.Context, keyword string) (*entity.FamilyGroup, error) {
	const groupQuery = `
		SELECT keyword, material_count, current_stock, to_be_delivered, reservations, final_stock
		FROM family_group WHERE keyword = $1`
	var g entity.FamilyGroup
	err := r.pool.QueryRow(ctx, groupQuery, keyword).Scan(
		&g.Keyword, &g.MaterialCount, &g.CurrentStock, &g.ToBeDelivered, &g.Reservations, &g.FinalStock,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFamilyNotFound, keyword)
		}
		return nil, fmt.Errorf("get family: %w", err)
	}

	const materialQuery = `
		SELECT material_id, supplier_keyword, width, length, ref_at_supplier, description,
		       lead_time, safety_stock, current_stock, to_be_delivered, reservations,
		       final_stock, expected_date, historical_slit
		FROM material_projection WHERE keyword = $1 ORDER BY position`
	rows, err := r.pool.Query(ctx, materialQuery, keyword)
	if err != nil {
		return nil, fmt.Errorf("get family materials: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := entity.MaterialProjection{Meta: entity.MaterialMeta{Keyword: g.Keyword}}
		if err := rows.Scan(
			&p.MaterialID, &p.Meta.SupplierKeyword, &p.Meta.Width, &p.Meta.Length,
			&p.Meta.SupplierRef, &p.Meta.Description, &p.Meta.LeadTime, &p.Meta.SafetyStock,
			&p.CurrentStock, &p.ToBeDelivered, &p.Reservations, &p.FinalStock,
			&p.ShortageDate, &p.Assessment,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		g.Materials = append(g.Materials, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &g, nil
}
