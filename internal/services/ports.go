package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
)

// The interfaces below are the slices of the repositories each service
// needs. The pgx repos satisfy them; tests use in-memory fakes.

type DeviceStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Device, error)
	Touch(ctx context.Context, id uuid.UUID, at time.Time) error
}

type DeviceRegistry interface {
	DeviceStore
	Create(ctx context.Context, d *models.Device) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Device, error)
}

type AreaStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AreaWithStore, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]models.AreaWithStore, error)
	List(ctx context.Context, storeID *uuid.UUID) ([]models.AreaWithStore, error)
}

type AreaRegistry interface {
	AreaStore
	Create(ctx context.Context, a *models.Area) error
}

type StoreRegistry interface {
	Create(ctx context.Context, s *models.Store) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
}

// AssignmentStore is the campaign side of the campaign/area relation.
type AssignmentStore interface {
	ListByArea(ctx context.Context, areaID uuid.UUID) ([]models.Campaign, error)
	ListAssignments(ctx context.Context, areaIDs []uuid.UUID) ([]models.Assignment, error)
}

type CampaignStore interface {
	AssignmentStore
	Create(ctx context.Context, c *models.Campaign) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	Update(ctx context.Context, c *models.Campaign) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error)
	ListAreaIDs(ctx context.Context, campaignID uuid.UUID) ([]uuid.UUID, error)
	ReplaceAreas(ctx context.Context, campaignID uuid.UUID, areaIDs []uuid.UUID) error
}

type MediaSource interface {
	ListByCampaigns(ctx context.Context, campaignIDs []uuid.UUID) ([]models.Media, error)
}

type MediaStore interface {
	MediaSource
	Create(ctx context.Context, m *models.Media) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Media, error)
	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlaybackStore interface {
	InsertBatch(ctx context.Context, entries []models.PlaybackLogEntry) error
	ListByDevice(ctx context.Context, deviceID uuid.UUID, limit int) ([]models.PlaybackLogEntry, error)
}

type AuditStore interface {
	Log(ctx context.Context, entry models.AuditLog) error
	GetByEntity(ctx context.Context, entityType string, entityID uuid.UUID, limit, offset int) ([]models.AuditLog, error)
}
