package models

import (
	"time"

	"github.com/google/uuid"
)

// Conflict is one (area, campaign) pair whose schedule overlaps a query window.
type Conflict struct {
	AreaID       uuid.UUID `json:"area_id"`
	AreaName     string    `json:"area_name"`
	StoreID      uuid.UUID `json:"store_id"`
	StoreName    string    `json:"store_name"`
	CampaignID   uuid.UUID `json:"campaign_id"`
	CampaignName string    `json:"campaign_name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	IsActive     bool      `json:"is_active"`
}

// Assignment is a campaign as seen through one of its areas.
type Assignment struct {
	AreaID   uuid.UUID `json:"area_id"`
	Campaign Campaign  `json:"campaign"`
}

// AreaAssignments is one row of the assignment matrix.
type AreaAssignments struct {
	Area        AreaWithStore `json:"area"`
	Campaigns   []Campaign    `json:"campaigns"`
	Conflicting []Campaign    `json:"conflicting"`
}

func NewConflict(area AreaWithStore, c Campaign) Conflict {
	return Conflict{
		AreaID:       area.ID,
		AreaName:     area.Name,
		StoreID:      area.StoreID,
		StoreName:    area.StoreName,
		CampaignID:   c.ID,
		CampaignName: c.Name,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		IsActive:     c.IsActive,
	}
}
