package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/config"
	"github.com/screendeck/backend/internal/db"
	"github.com/screendeck/backend/internal/events"
	"github.com/screendeck/backend/internal/repositories"
	"go.uber.org/zap"
)

// offlineMarker is the slice of DeviceRepo the sweep needs.
type offlineMarker interface {
	MarkOfflineBefore(ctx context.Context, cutoff time.Time) ([]uuid.UUID, error)
}

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	deviceRepo := repositories.NewDeviceRepo(pool)
	publisher, closeEvents, err := events.NewPublisher(cfg, rdb, log)
	if err != nil {
		log.Fatal("failed to init event publisher", zap.Error(err))
	}
	defer closeEvents()

	log.Info("worker started",
		zap.Duration("offline_after", cfg.DeviceOfflineAfter),
		zap.Duration("sweep_interval", cfg.DeviceSweepInterval),
	)

	sweepTicker := time.NewTicker(cfg.DeviceSweepInterval)
	defer sweepTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-sweepTicker.C:
			runOfflineSweep(ctx, deviceRepo, publisher, time.Now().UTC().Add(-cfg.DeviceOfflineAfter), log)
		case <-sigCh:
			log.Info("shutting down worker")
			cancel()
			return
		case <-ctx.Done():
			return
		}
	}
}

// runOfflineSweep marks online devices silent since cutoff as offline.
// Devices that never synced keep the unknown status.
func runOfflineSweep(ctx context.Context, devices offlineMarker, publisher events.Publisher, cutoff time.Time, log *zap.Logger) int {
	ids, err := devices.MarkOfflineBefore(ctx, cutoff)
	if err != nil {
		log.Error("failed to mark devices offline", zap.Error(err))
		return 0
	}

	for _, id := range ids {
		log.Info("device went offline", zap.String("device_id", id.String()))
		_ = publisher.Publish(ctx, events.StreamDevices, events.Event{
			Type: events.EventDeviceOffline,
			Payload: map[string]any{
				"device_id": id.String(),
				"cutoff":    cutoff.Format(time.RFC3339),
			},
		})
	}
	return len(ids)
}
