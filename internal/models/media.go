package models

import (
	"time"

	"github.com/google/uuid"
)

// Media types
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

const DefaultMediaDurationSeconds = 10

func IsValidMediaType(t string) bool {
	return t == MediaTypeImage || t == MediaTypeVideo
}

// Media is one playable asset of a campaign. SortOrder defines presentation
// order within the campaign and need not be contiguous.
type Media struct {
	ID              uuid.UUID `json:"id"`
	CampaignID      uuid.UUID `json:"campaign_id"`
	Type            string    `json:"type"`
	Filename        string    `json:"filename"`
	StoragePath     string    `json:"storage_path"`
	DurationSeconds int       `json:"duration_seconds"`
	SortOrder       int       `json:"sort_order"`
	MimeType        *string   `json:"mime_type,omitempty"`
	FileSize        *int64    `json:"file_size,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
