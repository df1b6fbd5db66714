package models

import (
	"time"

	"github.com/google/uuid"
)

// PlaybackLogEntry is append-only. PlayedAt comes from the device clock,
// SyncedAt is assigned by the server when the batch is ingested.
type PlaybackLogEntry struct {
	ID         uuid.UUID `json:"id"`
	DeviceID   uuid.UUID `json:"device_id"`
	MediaID    uuid.UUID `json:"media_id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	PlayedAt   time.Time `json:"played_at"`
	SyncedAt   time.Time `json:"synced_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlaybackLogInput is one entry of a device's batch upload.
type PlaybackLogInput struct {
	DeviceID   uuid.UUID `json:"device_id"`
	MediaID    uuid.UUID `json:"media_id"`
	CampaignID uuid.UUID `json:"campaign_id"`
	PlayedAt   time.Time `json:"played_at"`
}
