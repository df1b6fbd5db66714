package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinCampaignWeight = 1
	MaxCampaignWeight = 100
)

type Campaign struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Weight      int       `json:"weight"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Campaign) Window() DateRange {
	return DateRange{Start: DateOf(c.StartDate), End: DateOf(c.EndDate)}
}

// Validate checks the invariants enforced on every create and update.
func (c *Campaign) Validate() error {
	if c.Name == "" {
		return NewValidationError("name", "is required")
	}
	if c.Weight < MinCampaignWeight || c.Weight > MaxCampaignWeight {
		return NewValidationError("weight", "must be between %d and %d", MinCampaignWeight, MaxCampaignWeight)
	}
	if _, err := NewDateRange(c.StartDate, c.EndDate); err != nil {
		return err
	}
	return nil
}

// ConflictsWith is the single conflict predicate shared by conflict checks
// and assignment snapshots.
func (c *Campaign) ConflictsWith(window DateRange, excludeID *uuid.UUID) bool {
	if !c.IsActive {
		return false
	}
	if excludeID != nil && c.ID == *excludeID {
		return false
	}
	return c.Window().Overlaps(window)
}

// IsLiveOn reports whether the campaign should play on the given day.
func (c *Campaign) IsLiveOn(day time.Time) bool {
	return c.IsActive && c.Window().Contains(day)
}
