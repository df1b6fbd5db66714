package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/services"
	"go.uber.org/zap"
)

// AssignmentHandler exposes the read-only conflict checks used by the admin
// console before saving a campaign's areas.
type AssignmentHandler struct {
	conflicts *services.ConflictService
	inventory *services.InventoryService
	log       *zap.Logger
}

func NewAssignmentHandler(conflicts *services.ConflictService, inventory *services.InventoryService, log *zap.Logger) *AssignmentHandler {
	return &AssignmentHandler{conflicts: conflicts, inventory: inventory, log: log}
}

func (h *AssignmentHandler) CheckConflicts(c *fiber.Ctx) error {
	var req dto.CheckConflictsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	areaIDs, err := parseIDs("area_ids", req.AreaIDs)
	if err != nil {
		return respondError(c, h.log, err, "check conflicts")
	}
	if err := requireAreaScope(c, h.inventory, areaIDs...); err != nil {
		return respondError(c, h.log, err, "check conflicts")
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return respondError(c, h.log, err, "check conflicts")
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return respondError(c, h.log, err, "check conflicts")
	}
	exclude, err := parseOptionalID("exclude_campaign_id", req.ExcludeCampaignID)
	if err != nil {
		return respondError(c, h.log, err, "check conflicts")
	}

	conflicts, err := h.conflicts.CheckConflicts(c.Context(), areaIDs, start, end, exclude)
	if err != nil {
		return respondError(c, h.log, err, "check conflicts")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.NewConflictResponses(conflicts)})
}

// Snapshot returns the area/campaign matrix. start_date and end_date are
// optional but must come together.
func (h *AssignmentHandler) Snapshot(c *fiber.Ctx) error {
	requested, err := parseOptionalID("store_id", optionalQuery(c, "store_id"))
	if err != nil {
		return respondError(c, h.log, err, "assignment snapshot")
	}
	storeID, ok := scopedStoreID(c, requested)
	if !ok {
		return c.JSON(dto.SuccessResponse{OK: true, Data: []dto.AreaAssignmentsResponse{}})
	}
	exclude, err := parseOptionalID("exclude_campaign_id", optionalQuery(c, "exclude_campaign_id"))
	if err != nil {
		return respondError(c, h.log, err, "assignment snapshot")
	}

	var window *models.DateRange
	startStr, endStr := c.Query("start_date"), c.Query("end_date")
	if startStr != "" || endStr != "" {
		start, err := parseDate("start_date", startStr)
		if err != nil {
			return respondError(c, h.log, err, "assignment snapshot")
		}
		end, err := parseDate("end_date", endStr)
		if err != nil {
			return respondError(c, h.log, err, "assignment snapshot")
		}
		window = &models.DateRange{Start: start, End: end}
	}

	rows, err := h.conflicts.AssignmentSnapshot(c.Context(), storeID, window, exclude)
	if err != nil {
		return respondError(c, h.log, err, "assignment snapshot")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.NewSnapshotResponse(rows)})
}
