package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/services"
	"go.uber.org/zap"
)

// PlayerHandler serves the unauthenticated endpoints polled by devices.
type PlayerHandler struct {
	sync      *services.SyncService
	inventory *services.InventoryService
	log       *zap.Logger
}

func NewPlayerHandler(sync *services.SyncService, inventory *services.InventoryService, log *zap.Logger) *PlayerHandler {
	return &PlayerHandler{sync: sync, inventory: inventory, log: log}
}

// Register is the QR code flow: a new player enrolls itself in an area.
func (h *PlayerHandler) Register(c *fiber.Ctx) error {
	var req dto.SelfRegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	areaID, err := parseID("area_id", req.AreaID)
	if err != nil {
		return respondError(c, h.log, err, "self register device")
	}

	d, err := h.inventory.SelfRegisterDevice(c.Context(), areaID, req.DeviceCode)
	if err != nil {
		return respondError(c, h.log, err, "self register device")
	}
	return c.Status(fiber.StatusCreated).JSON(d)
}

func (h *PlayerHandler) GetPlaylist(c *fiber.Ctx) error {
	deviceID, err := parseID("device_id", c.Query("device_id"))
	if err != nil {
		return respondError(c, h.log, err, "get playlist")
	}

	playlist, err := h.sync.GetPlaylist(c.Context(), deviceID)
	if err != nil {
		return respondError(c, h.log, err, "get playlist")
	}
	return c.JSON(playlist)
}

// SubmitLogs accepts a JSON array of playback entries for one device.
func (h *PlayerHandler) SubmitLogs(c *fiber.Ctx) error {
	var entries []models.PlaybackLogInput
	if err := c.BodyParser(&entries); err != nil {
		return badRequest(c, "invalid request")
	}

	res, err := h.sync.SubmitPlaybackLogs(c.Context(), entries)
	if err != nil {
		return respondError(c, h.log, err, "submit playback logs")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PlaybackLogsResponse{
		Accepted: res.Accepted,
		Dropped:  res.Dropped,
		SyncedAt: res.SyncedAt,
	})
}

func (h *PlayerHandler) Heartbeat(c *fiber.Ctx) error {
	deviceID, err := parseID("device_id", c.Query("device_id"))
	if err != nil {
		return respondError(c, h.log, err, "heartbeat")
	}

	at, err := h.sync.Heartbeat(c.Context(), deviceID)
	if err != nil {
		return respondError(c, h.log, err, "heartbeat")
	}
	return c.JSON(dto.HeartbeatResponse{Status: "ok", Timestamp: at})
}

// RecentPlayback is the admin view of a device's latest synced entries.
func (h *PlayerHandler) RecentPlayback(c *fiber.Ctx) error {
	deviceID, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "recent playback")
	}

	if err := requireDeviceScope(c, h.inventory, deviceID); err != nil {
		return respondError(c, h.log, err, "recent playback")
	}

	entries, err := h.sync.RecentPlayback(c.Context(), deviceID, queryInt(c, "limit", 100))
	if err != nil {
		return respondError(c, h.log, err, "recent playback")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}
