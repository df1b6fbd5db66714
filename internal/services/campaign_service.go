package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/events"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"go.uber.org/zap"
)

// Actor identifies who performs an admin operation, for the audit trail.
type Actor struct {
	UserID uuid.UUID
	Type   string
	// StoreID is set for staff, who may only act inside their own store.
	StoreID *uuid.UUID
}

// CampaignPatch carries the fields of a partial update; nil means unchanged.
type CampaignPatch struct {
	Name        *string
	Description *string
	Weight      *int
	StartDate   *time.Time
	EndDate     *time.Time
	IsActive    *bool
}

type MediaInput struct {
	Type            string
	Filename        string
	StoragePath     string
	DurationSeconds int
	SortOrder       *int
	MimeType        *string
	FileSize        *int64
}

// AreaAssignmentResult is what an admin sees after setting a campaign's
// areas: the new areas and every overlap that was detected.
type AreaAssignmentResult struct {
	Areas     []models.AreaWithStore `json:"areas"`
	Conflicts []models.Conflict      `json:"conflicts"`
}

type CampaignService struct {
	campaigns CampaignStore
	areas     AreaStore
	media     MediaStore
	stores    StoreRegistry
	conflicts *ConflictService
	auditRepo AuditStore
	publisher events.Publisher
	log       *zap.Logger
}

func NewCampaignService(
	campaigns CampaignStore,
	areas AreaStore,
	media MediaStore,
	stores StoreRegistry,
	conflicts *ConflictService,
	auditRepo AuditStore,
	publisher events.Publisher,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		campaigns: campaigns,
		areas:     areas,
		media:     media,
		stores:    stores,
		conflicts: conflicts,
		auditRepo: auditRepo,
		publisher: publisher,
		log:       log,
	}
}

func (s *CampaignService) Create(ctx context.Context, actor Actor, c *models.Campaign) error {
	if c.Weight == 0 {
		c.Weight = models.MinCampaignWeight
	}
	c.StartDate = models.DateOf(c.StartDate)
	c.EndDate = models.DateOf(c.EndDate)
	if err := c.Validate(); err != nil {
		return err
	}
	if _, err := s.stores.GetByID(ctx, c.StoreID); err != nil {
		return fmt.Errorf("store %s: %w", c.StoreID, err)
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return err
	}

	s.audit(ctx, actor, models.AuditCampaignCreated, "campaign", c.ID, map[string]any{
		"weight":     c.Weight,
		"start_date": c.StartDate.Format(models.DateLayout),
		"end_date":   c.EndDate.Format(models.DateLayout),
	})
	return nil
}

func (s *CampaignService) GetByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	return s.campaigns.GetByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context, f repositories.CampaignFilter) ([]models.Campaign, error) {
	return s.campaigns.List(ctx, f)
}

// Update merges the patch into the stored campaign and validates the result,
// so a lone start_date change cannot invert the range.
func (s *CampaignService) Update(ctx context.Context, actor Actor, id uuid.UUID, p CampaignPatch) (*models.Campaign, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Description != nil {
		c.Description = p.Description
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.StartDate != nil {
		c.StartDate = models.DateOf(*p.StartDate)
	}
	if p.EndDate != nil {
		c.EndDate = models.DateOf(*p.EndDate)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.campaigns.Update(ctx, c); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, models.AuditCampaignUpdated, "campaign", c.ID, nil)
	return c, nil
}

func (s *CampaignService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := s.campaigns.Delete(ctx, id); err != nil {
		return err
	}
	s.audit(ctx, actor, models.AuditCampaignDeleted, "campaign", id, nil)
	return nil
}

func (s *CampaignService) GetAreas(ctx context.Context, id uuid.UUID) ([]models.AreaWithStore, error) {
	if _, err := s.campaigns.GetByID(ctx, id); err != nil {
		return nil, err
	}
	ids, err := s.campaigns.ListAreaIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.AreaWithStore{}, nil
	}
	return s.areas.ListByIDs(ctx, ids)
}

// SetAreas replaces the campaign's whole area list. Overlaps with other
// campaigns are reported in the result; they block the change only when
// rejectOnConflict is set, in which case ErrConflict is returned with the
// result still describing the overlaps.
func (s *CampaignService) SetAreas(ctx context.Context, actor Actor, id uuid.UUID, areaIDs []uuid.UUID, rejectOnConflict bool) (*AreaAssignmentResult, error) {
	c, err := s.campaigns.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(areaIDs)
	areas := []models.AreaWithStore{}
	if len(ids) > 0 {
		areas, err = s.areas.ListByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
	}
	if len(areas) != len(ids) {
		return nil, models.NewValidationError("area_ids", "one or more area ids are invalid")
	}
	for _, a := range areas {
		if a.StoreID != c.StoreID {
			return nil, models.NewValidationError("area_ids", "area %s belongs to another store", a.ID)
		}
	}

	conflicts, err := s.conflicts.CheckConflicts(ctx, ids, c.StartDate, c.EndDate, &c.ID)
	if err != nil {
		return nil, err
	}
	result := &AreaAssignmentResult{Areas: areas, Conflicts: conflicts}
	if rejectOnConflict && len(conflicts) > 0 {
		return result, ErrConflict
	}

	if err := s.campaigns.ReplaceAreas(ctx, c.ID, ids); err != nil {
		return nil, fmt.Errorf("replace campaign areas: %w", err)
	}

	areaStrs := make([]string, len(ids))
	for i, a := range ids {
		areaStrs[i] = a.String()
	}
	s.audit(ctx, actor, models.AuditCampaignAreasUpdated, "campaign", c.ID, map[string]any{
		"area_ids":  areaStrs,
		"conflicts": len(conflicts),
	})
	_ = s.publisher.Publish(ctx, events.StreamCampaigns, events.Event{
		Type: events.EventCampaignAreasUpdated,
		Payload: map[string]any{
			"campaign_id": c.ID.String(),
			"area_ids":    areaStrs,
			"conflicts":   len(conflicts),
		},
	})
	return result, nil
}

// AddMedia registers an already stored asset. Without an explicit
// sort_order the asset goes after the campaign's existing media.
func (s *CampaignService) AddMedia(ctx context.Context, actor Actor, campaignID uuid.UUID, in MediaInput) (*models.Media, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	if !models.IsValidMediaType(in.Type) {
		return nil, models.NewValidationError("type", "must be image or video")
	}
	if in.Filename == "" || in.StoragePath == "" {
		return nil, models.NewValidationError("storage_path", "filename and storage_path are required")
	}
	duration := in.DurationSeconds
	if duration == 0 {
		duration = models.DefaultMediaDurationSeconds
	}
	if duration < 1 {
		return nil, models.NewValidationError("duration_seconds", "must be at least 1")
	}

	var order int
	if in.SortOrder != nil {
		order = *in.SortOrder
		if order < 0 {
			return nil, models.NewValidationError("sort_order", "must not be negative")
		}
	} else {
		n, err := s.media.CountByCampaign(ctx, campaignID)
		if err != nil {
			return nil, err
		}
		order = n
	}

	m := &models.Media{
		CampaignID:      campaignID,
		Type:            in.Type,
		Filename:        in.Filename,
		StoragePath:     in.StoragePath,
		DurationSeconds: duration,
		SortOrder:       order,
		MimeType:        in.MimeType,
		FileSize:        in.FileSize,
	}
	if err := s.media.Create(ctx, m); err != nil {
		return nil, err
	}

	s.audit(ctx, actor, models.AuditMediaAdded, "campaign", campaignID, map[string]any{"media_id": m.ID.String()})
	return m, nil
}

func (s *CampaignService) ListMedia(ctx context.Context, campaignID uuid.UUID) ([]models.Media, error) {
	if _, err := s.campaigns.GetByID(ctx, campaignID); err != nil {
		return nil, err
	}
	media, err := s.media.ListByCampaigns(ctx, []uuid.UUID{campaignID})
	if err != nil {
		return nil, err
	}
	sortByPresentation(media)
	if media == nil {
		media = []models.Media{}
	}
	return media, nil
}

func (s *CampaignService) DeleteMedia(ctx context.Context, actor Actor, mediaID uuid.UUID) error {
	m, err := s.media.GetByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if err := s.media.Delete(ctx, mediaID); err != nil {
		return err
	}
	s.audit(ctx, actor, models.AuditMediaDeleted, "campaign", m.CampaignID, map[string]any{"media_id": mediaID.String()})
	return nil
}

func (s *CampaignService) History(ctx context.Context, id uuid.UUID, limit, offset int) ([]models.AuditLog, error) {
	return s.auditRepo.GetByEntity(ctx, "campaign", id, limit, offset)
}

func (s *CampaignService) audit(ctx context.Context, actor Actor, action, entityType string, entityID uuid.UUID, meta map[string]any) {
	var actorID *uuid.UUID
	if actor.UserID != uuid.Nil {
		actorID = &actor.UserID
	}
	actorType := actor.Type
	if actorType == "" {
		actorType = models.ActorSystem
	}
	entry := models.AuditLog{
		ActorUserID: actorID,
		ActorType:   actorType,
		Action:      action,
		EntityType:  entityType,
		EntityID:    &entityID,
	}
	if meta != nil {
		entry.Meta = meta
	}
	if err := s.auditRepo.Log(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Warn("audit log failed", zap.String("action", action), zap.Error(err))
	}
}
