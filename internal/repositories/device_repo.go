package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/screendeck/backend/internal/models"
)

const deviceColumns = `id, device_code, area_id, name, status, last_sync_at, registered_at`

type DeviceRepo struct {
	pool *pgxpool.Pool
}

func NewDeviceRepo(pool *pgxpool.Pool) *DeviceRepo {
	return &DeviceRepo{pool: pool}
}

func scanDevice(row pgx.Row, d *models.Device) error {
	return row.Scan(&d.ID, &d.DeviceCode, &d.AreaID, &d.Name, &d.Status, &d.LastSyncAt, &d.RegisteredAt)
}

func (r *DeviceRepo) Create(ctx context.Context, d *models.Device) error {
	return r.pool.QueryRow(ctx, `
		INSERT INTO devices (device_code, area_id, name, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registered_at
	`, d.DeviceCode, d.AreaID, d.Name, d.Status).Scan(&d.ID, &d.RegisteredAt)
}

func (r *DeviceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	var d models.Device
	err := scanDevice(r.pool.QueryRow(ctx, `SELECT `+deviceColumns+` FROM devices WHERE id = $1`, id), &d)
	if err != nil {
		return nil, notFound(err)
	}
	return &d, nil
}

func (r *DeviceRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM devices WHERE device_code = $1)`, code).Scan(&exists)
	return exists, err
}

func (r *DeviceRepo) ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Device, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+deviceColumns+` FROM devices WHERE area_id = $1 ORDER BY registered_at
	`, areaID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Device, error) {
		var d models.Device
		err := scanDevice(row, &d)
		return d, err
	})
}

// Touch records a check-in: the device becomes online as of at.
func (r *DeviceRepo) Touch(ctx context.Context, id uuid.UUID, at time.Time) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE devices SET status = $1, last_sync_at = $2 WHERE id = $3
	`, models.DeviceStatusOnline, at, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkOfflineBefore flips online devices whose last check-in is older than
// cutoff and returns their ids.
func (r *DeviceRepo) MarkOfflineBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	rows, err := r.pool.Query(ctx, `
		UPDATE devices SET status = $1
		WHERE status = $2 AND last_sync_at < $3
		RETURNING id
	`, models.DeviceStatusOffline, models.DeviceStatusOnline, cutoff)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
}
