package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/clock"
	"github.com/screendeck/backend/internal/events"
	"github.com/screendeck/backend/internal/models"
	"go.uber.org/zap"
)

// PlaybackSubmitResult reports how much of a batch was kept. Dropped counts
// entries whose device differed from the batch's first entry.
type PlaybackSubmitResult struct {
	Accepted int       `json:"accepted"`
	Dropped  int       `json:"dropped"`
	SyncedAt time.Time `json:"synced_at"`
}

// SyncService handles device check-ins: heartbeats, playlist pulls and
// playback log uploads.
type SyncService struct {
	devices   DeviceStore
	playlists *PlaylistService
	playback  PlaybackStore
	publisher events.Publisher
	clock     clock.Clock
	log       *zap.Logger
}

func NewSyncService(
	devices DeviceStore,
	playlists *PlaylistService,
	playback PlaybackStore,
	publisher events.Publisher,
	clk clock.Clock,
	log *zap.Logger,
) *SyncService {
	return &SyncService{
		devices:   devices,
		playlists: playlists,
		playback:  playback,
		publisher: publisher,
		clock:     clk,
		log:       log,
	}
}

func (s *SyncService) Heartbeat(ctx context.Context, deviceID uuid.UUID) (time.Time, error) {
	now := s.clock.Now()
	if err := s.devices.Touch(ctx, deviceID, now); err != nil {
		return time.Time{}, err
	}
	s.publishSynced(ctx, deviceID, "heartbeat", now)
	return now, nil
}

func (s *SyncService) GetPlaylist(ctx context.Context, deviceID uuid.UUID) (*models.PlaylistResponse, error) {
	items, err := s.playlists.Resolve(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	resp := &models.PlaylistResponse{
		Version:     PlaylistVersion(items),
		Items:       items,
		GeneratedAt: s.clock.Now(),
	}
	s.publishSynced(ctx, deviceID, "playlist", resp.GeneratedAt)
	return resp, nil
}

// SubmitPlaybackLogs stores a single-device batch. The first entry names the
// device; entries for any other device are dropped, not rejected. All kept
// entries share one synced_at. Resubmitted entries are stored again.
func (s *SyncService) SubmitPlaybackLogs(ctx context.Context, entries []models.PlaybackLogInput) (*PlaybackSubmitResult, error) {
	result := &PlaybackSubmitResult{}
	if len(entries) == 0 {
		return result, nil
	}

	deviceID := entries[0].DeviceID
	if _, err := s.devices.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}

	syncedAt := s.clock.Now()
	result.SyncedAt = syncedAt
	accepted := make([]models.PlaybackLogEntry, 0, len(entries))
	for _, e := range entries {
		if e.DeviceID != deviceID {
			result.Dropped++
			continue
		}
		accepted = append(accepted, models.PlaybackLogEntry{
			DeviceID:   e.DeviceID,
			MediaID:    e.MediaID,
			CampaignID: e.CampaignID,
			PlayedAt:   e.PlayedAt,
			SyncedAt:   syncedAt,
		})
	}

	if err := s.playback.InsertBatch(ctx, accepted); err != nil {
		return nil, fmt.Errorf("store playback logs: %w", err)
	}
	result.Accepted = len(accepted)

	if result.Dropped > 0 {
		s.log.Warn("playback batch contained foreign device entries",
			zap.String("device_id", deviceID.String()),
			zap.Int("dropped", result.Dropped),
		)
	}

	_ = s.publisher.Publish(ctx, events.StreamDevices, events.Event{
		Type: events.EventPlaybackLogsSynced,
		Payload: map[string]any{
			"device_id": deviceID.String(),
			"accepted":  result.Accepted,
			"dropped":   result.Dropped,
			"synced_at": syncedAt.Format(time.RFC3339),
		},
	})
	return result, nil
}

// RecentPlayback returns the device's latest synced entries, newest first.
func (s *SyncService) RecentPlayback(ctx context.Context, deviceID uuid.UUID, limit int) ([]models.PlaybackLogEntry, error) {
	if _, err := s.devices.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.playback.ListByDevice(ctx, deviceID, limit)
}

func (s *SyncService) publishSynced(ctx context.Context, deviceID uuid.UUID, via string, at time.Time) {
	_ = s.publisher.Publish(ctx, events.StreamDevices, events.Event{
		Type: events.EventDeviceSynced,
		Payload: map[string]any{
			"device_id":    deviceID.String(),
			"via":          via,
			"last_sync_at": at.Format(time.RFC3339),
		},
	})
}
