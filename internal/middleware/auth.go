package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/auth"
	"github.com/screendeck/backend/internal/config"
	"github.com/screendeck/backend/internal/rbac"
	"go.uber.org/zap"
)

const (
	CtxUserID  = "user_id"
	CtxRole    = "role"
	CtxStoreID = "store_id"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}
		if !rbac.IsValidRole(claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "unknown role"})
		}
		if claims.Role == rbac.RoleStaff && claims.StoreID == nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "staff token has no store"})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxRole, claims.Role)
		if claims.StoreID != nil {
			c.Locals(CtxStoreID, *claims.StoreID)
		}

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxRole).(string)
	return role
}

// GetStoreScope returns the store a staff token is limited to, or nil.
func GetStoreScope(c *fiber.Ctx) *uuid.UUID {
	id, ok := c.Locals(CtxStoreID).(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}

// RequirePermission rejects callers whose role lacks perm.
func RequirePermission(perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.HasPermission(GetRole(c), perm) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied"})
		}
		return c.Next()
	}
}
