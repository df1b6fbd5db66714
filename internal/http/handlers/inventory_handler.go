package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/middleware"
	"github.com/screendeck/backend/internal/services"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	inventory *services.InventoryService
	log       *zap.Logger
}

func NewInventoryHandler(inventory *services.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, log: log}
}

func (h *InventoryHandler) CreateStore(c *fiber.Ctx) error {
	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	st, err := h.inventory.CreateStore(c.Context(), req.Name, req.Code)
	if err != nil {
		return respondError(c, h.log, err, "create store")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: st})
}

func (h *InventoryHandler) ListStores(c *fiber.Ctx) error {
	stores, err := h.inventory.ListStores(c.Context())
	if err != nil {
		return respondError(c, h.log, err, "list stores")
	}
	if scope := middleware.GetStoreScope(c); scope != nil {
		filtered := stores[:0]
		for _, st := range stores {
			if st.ID == *scope {
				filtered = append(filtered, st)
			}
		}
		stores = filtered
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: stores})
}

func (h *InventoryHandler) CreateArea(c *fiber.Ctx) error {
	storeID, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "create area")
	}

	var req dto.CreateAreaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	a, err := h.inventory.CreateArea(c.Context(), storeID, req.Name, req.Code)
	if err != nil {
		return respondError(c, h.log, err, "create area")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: a})
}

func (h *InventoryHandler) ListAreas(c *fiber.Ctx) error {
	requested, err := parseOptionalID("store_id", optionalQuery(c, "store_id"))
	if err != nil {
		return respondError(c, h.log, err, "list areas")
	}
	storeID, ok := scopedStoreID(c, requested)
	if !ok {
		return c.JSON(dto.SuccessResponse{OK: true, Data: []any{}})
	}

	areas, err := h.inventory.ListAreas(c.Context(), storeID)
	if err != nil {
		return respondError(c, h.log, err, "list areas")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: areas})
}

func (h *InventoryHandler) RegisterDevice(c *fiber.Ctx) error {
	areaID, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "register device")
	}

	var req dto.RegisterDeviceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	d, err := h.inventory.RegisterDevice(c.Context(), actorFrom(c), areaID, req.DeviceCode, req.Name)
	if err != nil {
		return respondError(c, h.log, err, "register device")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: d})
}

func (h *InventoryHandler) ListDevices(c *fiber.Ctx) error {
	areaID, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "list devices")
	}

	if err := requireAreaScope(c, h.inventory, areaID); err != nil {
		return respondError(c, h.log, err, "list devices")
	}

	devices, err := h.inventory.ListDevices(c.Context(), areaID)
	if err != nil {
		return respondError(c, h.log, err, "list devices")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: devices})
}

func (h *InventoryHandler) GetDevice(c *fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "get device")
	}

	if err := requireDeviceScope(c, h.inventory, id); err != nil {
		return respondError(c, h.log, err, "get device")
	}

	d, err := h.inventory.GetDevice(c.Context(), id)
	if err != nil {
		return respondError(c, h.log, err, "get device")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: d})
}

