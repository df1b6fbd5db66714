package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/clock"
	"github.com/screendeck/backend/internal/config"
	"github.com/screendeck/backend/internal/db"
	"github.com/screendeck/backend/internal/events"
	apphttp "github.com/screendeck/backend/internal/http"
	"github.com/screendeck/backend/internal/http/handlers"
	"github.com/screendeck/backend/internal/repositories"
	"github.com/screendeck/backend/internal/services"
	"github.com/screendeck/backend/internal/storage"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	if err := db.RunMigrations(ctx, pool, cfg.MigrationsDir, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Media storage
	urls, closeStorage, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to init media storage", zap.Error(err))
	}
	defer closeStorage()

	// Repositories
	storeRepo := repositories.NewStoreRepo(pool)
	areaRepo := repositories.NewAreaRepo(pool)
	deviceRepo := repositories.NewDeviceRepo(pool)
	campaignRepo := repositories.NewCampaignRepo(pool)
	mediaRepo := repositories.NewMediaRepo(pool)
	playbackRepo := repositories.NewPlaybackRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher, closeEvents, err := events.NewPublisher(cfg, rdb, log)
	if err != nil {
		log.Fatal("failed to init event publisher", zap.Error(err))
	}
	defer closeEvents()
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	clk := clock.NewSystem(cfg.Location())
	conflictService := services.NewConflictService(campaignRepo, areaRepo, log)
	campaignService := services.NewCampaignService(campaignRepo, areaRepo, mediaRepo, storeRepo, conflictService, auditRepo, publisher, log)
	inventoryService := services.NewInventoryService(storeRepo, areaRepo, deviceRepo, auditRepo, log)
	playlistService := services.NewPlaylistService(deviceRepo, campaignRepo, mediaRepo, urls, clk, cfg.OrderingMode, log)
	syncService := services.NewSyncService(deviceRepo, playlistService, playbackRepo, publisher, clk, log)

	// Handlers
	userHandler := handlers.NewUserHandler()
	metaHandler := handlers.NewMetaHandler(playlistService.Mode())
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, log)
	campaignHandler := handlers.NewCampaignHandler(campaignService, log)
	assignmentHandler := handlers.NewAssignmentHandler(conflictService, inventoryService, log)
	playerHandler := handlers.NewPlayerHandler(syncService, inventoryService, log)
	wsHub := handlers.NewWSHub(cfg, subscriber, log)

	// Start WS hub
	wsHub.Start(ctx)

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, userHandler, metaHandler, inventoryHandler, campaignHandler, assignmentHandler, playerHandler, wsHub)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server",
		zap.String("addr", addr),
		zap.String("ordering_mode", playlistService.Mode()),
		zap.String("events_backend", cfg.EventsBackend),
	)
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
