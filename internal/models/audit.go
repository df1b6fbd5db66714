package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit actor types
const (
	ActorAdmin  = "admin"
	ActorStaff  = "staff"
	ActorSystem = "system"
	ActorDevice = "device"
)

// Audit actions
const (
	AuditCampaignCreated      = "campaign_created"
	AuditCampaignUpdated      = "campaign_updated"
	AuditCampaignDeleted      = "campaign_deleted"
	AuditCampaignAreasUpdated = "campaign_areas_updated"
	AuditMediaAdded           = "media_added"
	AuditMediaDeleted         = "media_deleted"
	AuditDeviceRegistered     = "device_registered"
)

type AuditLog struct {
	ID          uuid.UUID  `json:"id"`
	ActorUserID *uuid.UUID `json:"actor_user_id,omitempty"`
	ActorType   string     `json:"actor_type"`
	Action      string     `json:"action"`
	EntityType  string     `json:"entity_type"`
	EntityID    *uuid.UUID `json:"entity_id,omitempty"`
	Meta        any        `json:"meta,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
