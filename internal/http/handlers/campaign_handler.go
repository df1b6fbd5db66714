package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/middleware"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"github.com/screendeck/backend/internal/services"
	"go.uber.org/zap"
)

type CampaignHandler struct {
	campaignService *services.CampaignService
	log             *zap.Logger
}

func NewCampaignHandler(campaignService *services.CampaignService, log *zap.Logger) *CampaignHandler {
	return &CampaignHandler{campaignService: campaignService, log: log}
}

func (h *CampaignHandler) CreateCampaign(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	storeID, err := parseID("store_id", req.StoreID)
	if err != nil {
		return respondError(c, h.log, err, "create campaign")
	}
	start, err := parseDate("start_date", req.StartDate)
	if err != nil {
		return respondError(c, h.log, err, "create campaign")
	}
	end, err := parseDate("end_date", req.EndDate)
	if err != nil {
		return respondError(c, h.log, err, "create campaign")
	}

	campaign := &models.Campaign{
		StoreID:     storeID,
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		StartDate:   start,
		EndDate:     end,
		IsActive:    true,
	}
	if req.IsActive != nil {
		campaign.IsActive = *req.IsActive
	}

	if err := h.campaignService.Create(c.Context(), actorFrom(c), campaign); err != nil {
		return respondError(c, h.log, err, "create campaign")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.NewCampaignResponse(*campaign)})
}

func (h *CampaignHandler) GetCampaign(c *fiber.Ctx) error {
	campaign, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, err, "get campaign")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.NewCampaignResponse(*campaign)})
}

func (h *CampaignHandler) ListCampaigns(c *fiber.Ctx) error {
	filter := repositories.CampaignFilter{
		Limit:  queryInt(c, "limit", 20),
		Offset: queryInt(c, "offset", 0),
	}

	requested, err := parseOptionalID("store_id", optionalQuery(c, "store_id"))
	if err != nil {
		return respondError(c, h.log, err, "list campaigns")
	}
	storeID, ok := scopedStoreID(c, requested)
	if !ok {
		return c.JSON(dto.SuccessResponse{OK: true, Data: []dto.CampaignResponse{}})
	}
	filter.StoreID = storeID

	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "is_active must be true or false")
		}
		filter.IsActive = &active
	}

	campaigns, err := h.campaignService.List(c.Context(), filter)
	if err != nil {
		return respondError(c, h.log, err, "list campaigns")
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.NewCampaignResponses(campaigns)})
}

func (h *CampaignHandler) UpdateCampaign(c *fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "update campaign")
	}

	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	patch := services.CampaignPatch{
		Name:        req.Name,
		Description: req.Description,
		Weight:      req.Weight,
		IsActive:    req.IsActive,
	}
	if req.StartDate != nil {
		d, err := parseDate("start_date", *req.StartDate)
		if err != nil {
			return respondError(c, h.log, err, "update campaign")
		}
		patch.StartDate = &d
	}
	if req.EndDate != nil {
		d, err := parseDate("end_date", *req.EndDate)
		if err != nil {
			return respondError(c, h.log, err, "update campaign")
		}
		patch.EndDate = &d
	}

	updated, err := h.campaignService.Update(c.Context(), actorFrom(c), id, patch)
	if err != nil {
		return respondError(c, h.log, err, "update campaign")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.NewCampaignResponse(*updated)})
}

func (h *CampaignHandler) DeleteCampaign(c *fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "delete campaign")
	}

	if err := h.campaignService.Delete(c.Context(), actorFrom(c), id); err != nil {
		return respondError(c, h.log, err, "delete campaign")
	}

	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *CampaignHandler) GetAreas(c *fiber.Ctx) error {
	campaign, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, err, "get campaign areas")
	}
	areas, err := h.campaignService.GetAreas(c.Context(), campaign.ID)
	if err != nil {
		return respondError(c, h.log, err, "get campaign areas")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: areas})
}

// SetAreas answers 200 with the detected conflicts, or 409 with the same
// body when the caller asked to reject on conflict.
func (h *CampaignHandler) SetAreas(c *fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "set campaign areas")
	}

	var req dto.SetCampaignAreasRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	areaIDs, err := parseIDs("area_ids", req.AreaIDs)
	if err != nil {
		return respondError(c, h.log, err, "set campaign areas")
	}

	result, err := h.campaignService.SetAreas(c.Context(), actorFrom(c), id, areaIDs, req.RejectOnConflict)
	if errors.Is(err, services.ErrConflict) && result != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":     err.Error(),
			"conflicts": dto.NewConflictResponses(result.Conflicts),
		})
	}
	if err != nil {
		return respondError(c, h.log, err, "set campaign areas")
	}

	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.CampaignAreasResponse{
		Areas:     result.Areas,
		Conflicts: dto.NewConflictResponses(result.Conflicts),
	}})
}

func (h *CampaignHandler) AddMedia(c *fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "add media")
	}

	var req dto.AddMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	m, err := h.campaignService.AddMedia(c.Context(), actorFrom(c), id, services.MediaInput{
		Type:            req.Type,
		Filename:        req.Filename,
		StoragePath:     req.StoragePath,
		DurationSeconds: req.DurationSeconds,
		SortOrder:       req.SortOrder,
		MimeType:        req.MimeType,
		FileSize:        req.FileSize,
	})
	if err != nil {
		return respondError(c, h.log, err, "add media")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: m})
}

func (h *CampaignHandler) ListMedia(c *fiber.Ctx) error {
	campaign, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, err, "list media")
	}
	media, err := h.campaignService.ListMedia(c.Context(), campaign.ID)
	if err != nil {
		return respondError(c, h.log, err, "list media")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: media})
}

func (h *CampaignHandler) DeleteMedia(c *fiber.Ctx) error {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, "delete media")
	}
	if err := h.campaignService.DeleteMedia(c.Context(), actorFrom(c), id); err != nil {
		return respondError(c, h.log, err, "delete media")
	}
	return c.JSON(dto.SuccessResponse{OK: true})
}

func (h *CampaignHandler) History(c *fiber.Ctx) error {
	campaign, err := h.load(c)
	if err != nil {
		return respondError(c, h.log, err, "campaign history")
	}
	entries, err := h.campaignService.History(c.Context(), campaign.ID, queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return respondError(c, h.log, err, "campaign history")
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

// load fetches the :id campaign, hiding campaigns outside a staff token's store.
func (h *CampaignHandler) load(c *fiber.Ctx) (*models.Campaign, error) {
	id, err := parseID("id", c.Params("id"))
	if err != nil {
		return nil, err
	}
	campaign, err := h.campaignService.GetByID(c.Context(), id)
	if err != nil {
		return nil, err
	}
	if scope := middleware.GetStoreScope(c); scope != nil && *scope != campaign.StoreID {
		return nil, repositories.ErrNotFound
	}
	return campaign, nil
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	return &v
}
