package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/middleware"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"github.com/screendeck/backend/internal/services"
	"go.uber.org/zap"
)

// respondError maps service errors to status codes. Unknown errors are
// logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, log *zap.Logger, err error, op string) error {
	reqID, _ := c.Locals(middleware.CtxRequestID).(string)

	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: verr.Error(), Field: verr.Field, RequestID: reqID})
	case errors.Is(err, repositories.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, services.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: err.Error(), RequestID: reqID})
	}

	log.Error(op+" failed", zap.String("request_id", reqID), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error", RequestID: reqID})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: msg})
}

func actorFrom(c *fiber.Ctx) services.Actor {
	return services.Actor{UserID: middleware.GetUserID(c), Type: middleware.GetRole(c), StoreID: middleware.GetStoreScope(c)}
}

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, models.NewValidationError(field, "invalid id")
	}
	return id, nil
}

func parseOptionalID(field string, s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := parseID(field, *s)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseIDs(field string, ss []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		id, err := parseID(field, s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func parseDate(field, s string) (time.Time, error) {
	d, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, models.NewValidationError(field, "must be a YYYY-MM-DD date")
	}
	return d, nil
}

func queryInt(c *fiber.Ctx, key string, fallback int) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// scopedStoreID narrows a requested store filter to the caller's token scope.
// It reports false when the caller asked for a store outside that scope.
func scopedStoreID(c *fiber.Ctx, requested *uuid.UUID) (*uuid.UUID, bool) {
	scope := middleware.GetStoreScope(c)
	if scope == nil {
		return requested, true
	}
	if requested != nil && *requested != *scope {
		return nil, false
	}
	return scope, true
}
