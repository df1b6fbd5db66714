package handlers

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/middleware"
	"github.com/screendeck/backend/internal/repositories"
)

// storeResolver maps inventory ids to the store that owns them.
type storeResolver interface {
	AreaStoreID(ctx context.Context, areaID uuid.UUID) (uuid.UUID, error)
	DeviceStoreID(ctx context.Context, deviceID uuid.UUID) (uuid.UUID, error)
}

// requireAreaScope hides areas of other stores from a store-scoped caller.
// Unscoped callers pass without a lookup.
func requireAreaScope(c *fiber.Ctx, stores storeResolver, areaIDs ...uuid.UUID) error {
	scope := middleware.GetStoreScope(c)
	if scope == nil {
		return nil
	}
	for _, id := range areaIDs {
		storeID, err := stores.AreaStoreID(c.Context(), id)
		if err != nil {
			return err
		}
		if storeID != *scope {
			return fmt.Errorf("area %s: %w", id, repositories.ErrNotFound)
		}
	}
	return nil
}

func requireDeviceScope(c *fiber.Ctx, stores storeResolver, deviceID uuid.UUID) error {
	scope := middleware.GetStoreScope(c)
	if scope == nil {
		return nil
	}
	storeID, err := stores.DeviceStoreID(c.Context(), deviceID)
	if err != nil {
		return err
	}
	if storeID != *scope {
		return fmt.Errorf("device %s: %w", deviceID, repositories.ErrNotFound)
	}
	return nil
}
