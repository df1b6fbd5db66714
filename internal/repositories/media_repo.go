package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screendeck/backend/internal/models"
)

const mediaColumns = `id, campaign_id, type, filename, storage_path, duration_seconds, sort_order,
		       mime_type, file_size, created_at`

type MediaRepo struct {
	pool *pgxpool.Pool
}

func NewMediaRepo(pool *pgxpool.Pool) *MediaRepo {
	return &MediaRepo{pool: pool}
}

func scanMedia(row pgx.Row, m *models.Media) error {
	return row.Scan(&m.ID, &m.CampaignID, &m.Type, &m.Filename, &m.StoragePath,
		&m.DurationSeconds, &m.SortOrder, &m.MimeType, &m.FileSize, &m.CreatedAt)
}

func (r *MediaRepo) Create(ctx context.Context, m *models.Media) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO media (campaign_id, type, filename, storage_path, duration_seconds, sort_order, mime_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, m.CampaignID, m.Type, m.Filename, m.StoragePath, m.DurationSeconds, m.SortOrder,
		m.MimeType, m.FileSize,
	).Scan(&m.ID, &m.CreatedAt)
}

func (r *MediaRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var m models.Media
	err := scanMedia(r.pool.QueryRow(ctx, `SELECT `+mediaColumns+` FROM media WHERE id = $1`, id), &m)
	if err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *MediaRepo) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM media WHERE campaign_id = $1`, campaignID).Scan(&n)
	return n, err
}

// ListByCampaigns loads the media of many campaigns in one statement,
// each campaign's media in presentation order.
func (r *MediaRepo) ListByCampaigns(ctx context.Context, campaignIDs []uuid.UUID) ([]models.Media, error) {
	if len(campaignIDs) == 0 {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+mediaColumns+`
		FROM media
		WHERE campaign_id = ANY($1)
		ORDER BY campaign_id, sort_order ASC, created_at ASC, id ASC
	`, campaignIDs)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Media, error) {
		var m models.Media
		err := scanMedia(row, &m)
		return m, err
	})
}

func (r *MediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
