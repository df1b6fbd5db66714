package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screendeck/backend/internal/models"
)

type StoreRepo struct {
	pool *pgxpool.Pool
}

func NewStoreRepo(pool *pgxpool.Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

func (r *StoreRepo) Create(ctx context.Context, s *models.Store) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO stores (name, code, is_active)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, s.Name, s.Code, s.IsActive).Scan(&s.ID, &s.CreatedAt)
}

func (r *StoreRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var s models.Store
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, code, is_active, created_at FROM stores WHERE id = $1
	`, id).Scan(&s.ID, &s.Name, &s.Code, &s.IsActive, &s.CreatedAt)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *StoreRepo) List(ctx context.Context) ([]models.Store, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, code, is_active, created_at FROM stores ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Store, error) {
		var s models.Store
		err := row.Scan(&s.ID, &s.Name, &s.Code, &s.IsActive, &s.CreatedAt)
		return s, err
	})
}

type AreaRepo struct {
	pool *pgxpool.Pool
}

func NewAreaRepo(pool *pgxpool.Pool) *AreaRepo {
	return &AreaRepo{pool: pool}
}

const areaColumns = `a.id, a.store_id, a.name, a.code, a.is_active, a.created_at, s.name`

func scanArea(row pgx.Row, a *models.AreaWithStore) error {
	return row.Scan(&a.ID, &a.StoreID, &a.Name, &a.Code, &a.IsActive, &a.CreatedAt, &a.StoreName)
}

func (r *AreaRepo) Create(ctx context.Context, a *models.Area) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO areas (store_id, name, code, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, a.StoreID, a.Name, a.Code, a.IsActive).Scan(&a.ID, &a.CreatedAt)
}

func (r *AreaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.AreaWithStore, error) {
	var a models.AreaWithStore
	err := scanArea(r.pool.QueryRow(ctx, `
		SELECT `+areaColumns+`
		FROM areas a JOIN stores s ON s.id = a.store_id
		WHERE a.id = $1
	`, id), &a)
	if err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

// ListByIDs returns the areas that exist among ids; missing ids are skipped.
func (r *AreaRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AreaWithStore, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+areaColumns+`
		FROM areas a JOIN stores s ON s.id = a.store_id
		WHERE a.id = ANY($1)
		ORDER BY s.name, a.name
	`, ids)
	if err != nil {
		return nil, err
	}
	return collectAreas(rows)
}

func (r *AreaRepo) List(ctx context.Context, storeID *uuid.UUID) ([]models.AreaWithStore, error) {
	query := `
		SELECT ` + areaColumns + `
		FROM areas a JOIN stores s ON s.id = a.store_id
	`
	args := []any{}
	if storeID != nil {
		query += ` WHERE a.store_id = $1`
		args = append(args, *storeID)
	}
	query += ` ORDER BY s.name, a.name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return collectAreas(rows)
}

func collectAreas(rows pgx.Rows) ([]models.AreaWithStore, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.AreaWithStore, error) {
		var a models.AreaWithStore
		err := scanArea(row, &a)
		return a, err
	})
}
