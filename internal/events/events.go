package events

import "context"

// Streams
const (
	StreamDevices   = "events:devices"
	StreamCampaigns = "events:campaigns"
)

// Event types
const (
	EventDeviceSynced         = "device_synced"
	EventDeviceOffline        = "device_offline"
	EventPlaybackLogsSynced   = "playback_logs_synced"
	EventCampaignAreasUpdated = "campaign_areas_updated"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }
