package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Device statuses
const (
	DeviceStatusOnline  = "online"
	DeviceStatusOffline = "offline"
	DeviceStatusUnknown = "unknown"
)

type Device struct {
	ID           uuid.UUID  `json:"id"`
	DeviceCode   string     `json:"device_code"`
	AreaID       uuid.UUID  `json:"area_id"`
	Name         *string    `json:"name,omitempty"`
	Status       string     `json:"status"`
	LastSyncAt   *time.Time `json:"last_sync_at,omitempty"`
	RegisteredAt time.Time  `json:"registered_at"`
}

// NewDeviceCode returns a code in the DEV-XXXXXXXX form handed out when the
// installer does not supply one.
func NewDeviceCode() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("DEV-%s", strings.ToUpper(raw[:8]))
}
