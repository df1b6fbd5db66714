package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/models"
)

// MetaHandler publishes the constants the admin console validates against.
type MetaHandler struct {
	orderingMode string
}

func NewMetaHandler(orderingMode string) *MetaHandler {
	return &MetaHandler{orderingMode: orderingMode}
}

type MetaMediaType struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	DefaultDuration int    `json:"default_duration_seconds"`
}

var predefinedMediaTypes = []MetaMediaType{
	{ID: models.MediaTypeImage, Label: "Image", DefaultDuration: models.DefaultMediaDurationSeconds},
	{ID: models.MediaTypeVideo, Label: "Video", DefaultDuration: models.DefaultMediaDurationSeconds},
}

func (h *MetaHandler) GetMediaTypes(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: predefinedMediaTypes})
}

func (h *MetaHandler) GetScheduling(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"ordering_mode": h.orderingMode,
		"min_weight":    models.MinCampaignWeight,
		"max_weight":    models.MaxCampaignWeight,
		"date_format":   models.DateLayout,
	}})
}
