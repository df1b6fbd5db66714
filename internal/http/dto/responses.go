package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/models"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

// CampaignResponse renders campaign dates as calendar dates.
type CampaignResponse struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Weight      int       `json:"weight"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCampaignResponse(c models.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:          c.ID,
		StoreID:     c.StoreID,
		Name:        c.Name,
		Description: c.Description,
		Weight:      c.Weight,
		StartDate:   c.StartDate.Format(models.DateLayout),
		EndDate:     c.EndDate.Format(models.DateLayout),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCampaignResponses(cs []models.Campaign) []CampaignResponse {
	out := make([]CampaignResponse, len(cs))
	for i := range cs {
		out[i] = NewCampaignResponse(cs[i])
	}
	return out
}

type ConflictResponse struct {
	AreaID       uuid.UUID `json:"area_id"`
	AreaName     string    `json:"area_name"`
	StoreID      uuid.UUID `json:"store_id"`
	StoreName    string    `json:"store_name"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	CampaignName string    `json:"campaign_name"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	IsActive     bool      `json:"is_active"`
}

func NewConflictResponses(cs []models.Conflict) []ConflictResponse {
	out := make([]ConflictResponse, len(cs))
	for i, c := range cs {
		out[i] = ConflictResponse{
			AreaID:       c.AreaID,
			AreaName:     c.AreaName,
			StoreID:      c.StoreID,
			StoreName:    c.StoreName,
			CampaignID:   c.CampaignID,
			CampaignName: c.CampaignName,
			StartDate:    c.StartDate.Format(models.DateLayout),
			EndDate:      c.EndDate.Format(models.DateLayout),
			IsActive:     c.IsActive,
		}
	}
	return out
}

type AreaAssignmentsResponse struct {
	AreaID      uuid.UUID          `json:"area_id"`
	AreaName    string             `json:"area_name"`
	StoreID     uuid.UUID          `json:"store_id"`
	StoreName   string             `json:"store_name"`
	Campaigns   []CampaignResponse `json:"campaigns"`
	Conflicting []CampaignResponse `json:"conflicting"`
}

func NewSnapshotResponse(rows []models.AreaAssignments) []AreaAssignmentsResponse {
	out := make([]AreaAssignmentsResponse, len(rows))
	for i, r := range rows {
		out[i] = AreaAssignmentsResponse{
			AreaID:      r.Area.ID,
			AreaName:    r.Area.Name,
			StoreID:     r.Area.StoreID,
			StoreName:   r.Area.StoreName,
			Campaigns:   NewCampaignResponses(r.Campaigns),
			Conflicting: NewCampaignResponses(r.Conflicting),
		}
	}
	return out
}

type CampaignAreasResponse struct {
	Areas     []models.AreaWithStore `json:"areas"`
	Conflicts []ConflictResponse     `json:"conflicts"`
}

type PlaybackLogsResponse struct {
	Accepted int       `json:"accepted"`
	Dropped  int       `json:"dropped"`
	SyncedAt time.Time `json:"synced_at,omitempty"`
}

type HeartbeatResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}
