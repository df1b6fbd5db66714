package http

import (
	"strings"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/screendeck/backend/internal/config"
	"github.com/screendeck/backend/internal/http/handlers"
	"github.com/screendeck/backend/internal/middleware"
	"github.com/screendeck/backend/internal/rbac"
	"go.uber.org/zap"
)

func SetupRouter(
	app *fiber.App,
	cfg *config.Config,
	log *zap.Logger,
	rdb *redis.Client,
	userHandler *handlers.UserHandler,
	metaHandler *handlers.MetaHandler,
	inventoryHandler *handlers.InventoryHandler,
	campaignHandler *handlers.CampaignHandler,
	assignmentHandler *handlers.AssignmentHandler,
	playerHandler *handlers.PlayerHandler,
	wsHub *handlers.WSHub,
) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if cfg.UseLocalStorage {
		app.Static("/media", cfg.LocalStoragePath)
	}

	api := app.Group("/api/v1")

	// Player (public, keyed by device_id)
	player := api.Group("/player", middleware.RateLimitMiddleware(rdb, cfg.PlayerRateLimitPerMinute, time.Minute, log))
	player.Get("/playlist", playerHandler.GetPlaylist)
	player.Post("/logs", playerHandler.SubmitLogs)
	player.Post("/heartbeat", playerHandler.Heartbeat)
	player.Post("/register", playerHandler.Register)

	// Meta (public)
	api.Get("/meta/media-types", metaHandler.GetMediaTypes)
	api.Get("/meta/scheduling", metaHandler.GetScheduling)

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	manageInventory := middleware.RequirePermission(rbac.PermManageInventory)
	registerDevice := middleware.RequirePermission(rbac.PermRegisterDevice)
	viewDevices := middleware.RequirePermission(rbac.PermViewDevices)
	manageCampaigns := middleware.RequirePermission(rbac.PermManageCampaigns)
	viewCampaigns := middleware.RequirePermission(rbac.PermViewCampaigns)
	checkConflicts := middleware.RequirePermission(rbac.PermCheckConflicts)

	protected.Get("/me", userHandler.GetMe)

	// Stores & areas
	protected.Post("/stores", manageInventory, inventoryHandler.CreateStore)
	protected.Get("/stores", viewDevices, inventoryHandler.ListStores)
	protected.Post("/stores/:id/areas", manageInventory, inventoryHandler.CreateArea)
	protected.Get("/areas", viewDevices, inventoryHandler.ListAreas)

	// Devices
	protected.Post("/areas/:id/devices", registerDevice, inventoryHandler.RegisterDevice)
	protected.Get("/areas/:id/devices", viewDevices, inventoryHandler.ListDevices)
	protected.Get("/devices/:id", viewDevices, inventoryHandler.GetDevice)
	protected.Get("/devices/:id/playback", viewDevices, playerHandler.RecentPlayback)

	// Campaigns
	protected.Post("/campaigns", manageCampaigns, campaignHandler.CreateCampaign)
	protected.Get("/campaigns", viewCampaigns, campaignHandler.ListCampaigns)
	protected.Get("/campaigns/:id", viewCampaigns, campaignHandler.GetCampaign)
	protected.Put("/campaigns/:id", manageCampaigns, campaignHandler.UpdateCampaign)
	protected.Delete("/campaigns/:id", manageCampaigns, campaignHandler.DeleteCampaign)
	protected.Get("/campaigns/:id/history", viewCampaigns, campaignHandler.History)
	protected.Get("/campaigns/:id/areas", viewCampaigns, campaignHandler.GetAreas)
	protected.Put("/campaigns/:id/areas", manageCampaigns, campaignHandler.SetAreas)
	protected.Get("/campaigns/:id/media", viewCampaigns, campaignHandler.ListMedia)
	protected.Post("/campaigns/:id/media", manageCampaigns, campaignHandler.AddMedia)
	protected.Delete("/media/:id", manageCampaigns, campaignHandler.DeleteMedia)

	// Assignments
	protected.Post("/assignments/conflicts", checkConflicts, assignmentHandler.CheckConflicts)
	protected.Get("/assignments/snapshot", checkConflicts, assignmentHandler.Snapshot)

	// WebSocket
	app.Use("/ws", handlers.WSUpgradeMiddleware())
	app.Get("/ws", websocket.New(wsHub.HandleWS))
}
