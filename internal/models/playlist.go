package models

import (
	"time"

	"github.com/google/uuid"
)

type PlaylistItem struct {
	MediaID         uuid.UUID `json:"media_id"`
	CampaignID      uuid.UUID `json:"campaign_id"`
	URL             string    `json:"url"`
	Type            string    `json:"type"`
	DurationSeconds int       `json:"duration_seconds"`
	Filename        string    `json:"filename"`
}

type PlaylistResponse struct {
	Version     string         `json:"version"`
	Items       []PlaylistItem `json:"items"`
	GeneratedAt time.Time      `json:"generated_at"`
}
