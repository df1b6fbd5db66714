package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screendeck/backend/internal/models"
)

type PlaybackRepo struct {
	pool *pgxpool.Pool
}

func NewPlaybackRepo(pool *pgxpool.Pool) *PlaybackRepo {
	return &PlaybackRepo{pool: pool}
}

// InsertBatch appends the entries with a single COPY. Ids are assigned here
// so callers get them back without a round trip per row.
func (r *PlaybackRepo) InsertBatch(ctx context.Context, entries []models.PlaybackLogEntry) error {
	if len(entries) == 0 {
		return nil
	}
	for i := range entries {
		if entries[i].ID == uuid.Nil {
			entries[i].ID = uuid.New()
		}
	}

	_, err := r.pool.CopyFrom(ctx,
		pgx.Identifier{"playback_logs"},
		[]string{"id", "device_id", "media_id", "campaign_id", "played_at", "synced_at"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.ID, e.DeviceID, e.MediaID, e.CampaignID, e.PlayedAt, e.SyncedAt}, nil
		}),
	)
	return err
}

func (r *PlaybackRepo) ListByDevice(ctx context.Context, deviceID uuid.UUID, limit int) ([]models.PlaybackLogEntry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, device_id, media_id, campaign_id, played_at, synced_at, created_at
		FROM playback_logs WHERE device_id = $1
		ORDER BY played_at DESC LIMIT $2
	`, deviceID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.PlaybackLogEntry, error) {
		var e models.PlaybackLogEntry
		err := row.Scan(&e.ID, &e.DeviceID, &e.MediaID, &e.CampaignID, &e.PlayedAt, &e.SyncedAt, &e.CreatedAt)
		return e, err
	})
}
