package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/screendeck/backend/internal/http/dto"
	"github.com/screendeck/backend/internal/middleware"
	"github.com/screendeck/backend/internal/rbac"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetMe echoes the identity carried by the caller's token.
func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	role := middleware.GetRole(c)
	return c.JSON(dto.SuccessResponse{OK: true, Data: fiber.Map{
		"user_id":     middleware.GetUserID(c),
		"role":        role,
		"store_id":    middleware.GetStoreScope(c),
		"permissions": rbac.RolePermissions[role],
	}})
}
