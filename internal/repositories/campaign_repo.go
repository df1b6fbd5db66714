package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screendeck/backend/internal/models"
)

const campaignColumns = `c.id, c.store_id, c.name, c.description, c.weight, c.start_date, c.end_date,
		       c.is_active, c.created_at, c.updated_at`

type CampaignRepo struct {
	pool *pgxpool.Pool
}

func NewCampaignRepo(pool *pgxpool.Pool) *CampaignRepo {
	return &CampaignRepo{pool: pool}
}

func scanCampaign(row pgx.Row, c *models.Campaign) error {
	return row.Scan(&c.ID, &c.StoreID, &c.Name, &c.Description, &c.Weight,
		&c.StartDate, &c.EndDate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) Create(ctx context.Context, c *models.Campaign) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO campaigns (store_id, name, description, weight, start_date, end_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, c.StoreID, c.Name, c.Description, c.Weight, c.StartDate, c.EndDate, c.IsActive,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

func (r *CampaignRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var c models.Campaign
	err := scanCampaign(r.pool.QueryRow(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns c WHERE c.id = $1
	`, id), &c)
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Update never touches store_id: a campaign stays with the store it was created for.
func (r *CampaignRepo) Update(ctx context.Context, c *models.Campaign) error {
	err := r.pool.QueryRow(ctx, `
		UPDATE campaigns SET name = $1, description = $2, weight = $3,
		       start_date = $4, end_date = $5, is_active = $6, updated_at = now()
		WHERE id = $7
		RETURNING updated_at
	`, c.Name, c.Description, c.Weight, c.StartDate, c.EndDate, c.IsActive, c.ID,
	).Scan(&c.UpdatedAt)
	return notFound(err)
}

func (r *CampaignRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type CampaignFilter struct {
	StoreID  *uuid.UUID
	IsActive *bool
	Limit    int
	Offset   int
}

func (r *CampaignRepo) List(ctx context.Context, f CampaignFilter) ([]models.Campaign, error) {
	query := `SELECT ` + campaignColumns + ` FROM campaigns c`
	args := []any{}
	argIdx := 1
	where := []string{}

	if f.StoreID != nil {
		where = append(where, fmt.Sprintf("c.store_id = $%d", argIdx))
		args = append(args, *f.StoreID)
		argIdx++
	}
	if f.IsActive != nil {
		where = append(where, fmt.Sprintf("c.is_active = $%d", argIdx))
		args = append(args, *f.IsActive)
		argIdx++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// ListByArea returns every campaign assigned to the area regardless of
// schedule, highest weight first with creation order as the tie-break.
func (r *CampaignRepo) ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Campaign, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+campaignColumns+`
		FROM campaign_areas ca
		JOIN campaigns c ON c.id = ca.campaign_id
		WHERE ca.area_id = $1
		ORDER BY c.weight DESC, c.created_at ASC, c.id ASC
	`, areaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []models.Campaign
	for rows.Next() {
		var c models.Campaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

// ListAssignments returns one row per (area, campaign) assignment for the
// given areas. A nil slice means every area.
func (r *CampaignRepo) ListAssignments(ctx context.Context, areaIDs []uuid.UUID) ([]models.Assignment, error) {
	query := `
		SELECT ca.area_id, ` + campaignColumns + `
		FROM campaign_areas ca
		JOIN campaigns c ON c.id = ca.campaign_id
	`
	args := []any{}
	if areaIDs != nil {
		query += ` WHERE ca.area_id = ANY($1)`
		args = append(args, areaIDs)
	}
	query += ` ORDER BY ca.area_id, c.start_date, c.created_at, c.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		var a models.Assignment
		c := &a.Campaign
		if err := rows.Scan(&a.AreaID, &c.ID, &c.StoreID, &c.Name, &c.Description, &c.Weight,
			&c.StartDate, &c.EndDate, &c.IsActive, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *CampaignRepo) ListAreaIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT area_id FROM campaign_areas WHERE campaign_id = $1 ORDER BY created_at, area_id
	`, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ReplaceAreas swaps the campaign's whole area list in one transaction so
// concurrent readers see either the old or the new set, never an empty one.
func (r *CampaignRepo) ReplaceAreas(ctx context.Context, campaignID uuid.UUID, areaIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM campaign_areas WHERE campaign_id = $1`, campaignID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for _, areaID := range areaIDs {
		batch.Queue(`INSERT INTO campaign_areas (campaign_id, area_id) VALUES ($1, $2)`, campaignID, areaID)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
