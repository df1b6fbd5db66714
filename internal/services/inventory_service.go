package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"go.uber.org/zap"
)

// InventoryService manages the physical side: stores, their areas and the
// devices installed in them.
type InventoryService struct {
	stores  StoreRegistry
	areas   AreaRegistry
	devices DeviceRegistry
	audit   AuditStore
	log     *zap.Logger
}

func NewInventoryService(stores StoreRegistry, areas AreaRegistry, devices DeviceRegistry, audit AuditStore, log *zap.Logger) *InventoryService {
	return &InventoryService{stores: stores, areas: areas, devices: devices, audit: audit, log: log}
}

func (s *InventoryService) CreateStore(ctx context.Context, name, code string) (*models.Store, error) {
	name, code = strings.TrimSpace(name), strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, models.NewValidationError("code", "name and code are required")
	}
	st := &models.Store{Name: name, Code: code, IsActive: true}
	if err := s.stores.Create(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

func (s *InventoryService) ListStores(ctx context.Context) ([]models.Store, error) {
	return s.stores.List(ctx)
}

func (s *InventoryService) CreateArea(ctx context.Context, storeID uuid.UUID, name, code string) (*models.Area, error) {
	if _, err := s.stores.GetByID(ctx, storeID); err != nil {
		return nil, fmt.Errorf("store %s: %w", storeID, err)
	}
	name, code = strings.TrimSpace(name), strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, models.NewValidationError("code", "name and code are required")
	}
	a := &models.Area{StoreID: storeID, Name: name, Code: code, IsActive: true}
	if err := s.areas.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *InventoryService) ListAreas(ctx context.Context, storeID *uuid.UUID) ([]models.AreaWithStore, error) {
	return s.areas.List(ctx, storeID)
}

// RegisterDevice installs a device in an area. New devices start in the
// unknown status until their first check-in. Staff may only register in
// their own store.
func (s *InventoryService) RegisterDevice(ctx context.Context, actor Actor, areaID uuid.UUID, code string, name *string) (*models.Device, error) {
	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("area %s: %w", areaID, err)
	}
	if actor.StoreID != nil && *actor.StoreID != area.StoreID {
		return nil, fmt.Errorf("area %s: %w", areaID, ErrForbidden)
	}
	return s.register(ctx, actor, areaID, code, name)
}

// SelfRegisterDevice is the unauthenticated path used when a player scans
// an area's QR code. The area must be active.
func (s *InventoryService) SelfRegisterDevice(ctx context.Context, areaID uuid.UUID, code string) (*models.Device, error) {
	area, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return nil, fmt.Errorf("area %s: %w", areaID, err)
	}
	if !area.IsActive {
		return nil, fmt.Errorf("area %s inactive: %w", areaID, repositories.ErrNotFound)
	}
	return s.register(ctx, Actor{Type: models.ActorDevice}, areaID, code, nil)
}

func (s *InventoryService) register(ctx context.Context, actor Actor, areaID uuid.UUID, code string, name *string) (*models.Device, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		code = models.NewDeviceCode()
	}
	exists, err := s.devices.ExistsByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError("device_code", "already exists")
	}

	d := &models.Device{
		DeviceCode: code,
		AreaID:     areaID,
		Name:       name,
		Status:     models.DeviceStatusUnknown,
	}
	if err := s.devices.Create(ctx, d); err != nil {
		return nil, err
	}

	var actorID *uuid.UUID
	if actor.UserID != uuid.Nil {
		actorID = &actor.UserID
	}
	if err := s.audit.Log(ctx, models.AuditLog{
		ActorUserID: actorID,
		ActorType:   actor.Type,
		Action:      models.AuditDeviceRegistered,
		EntityType:  "device",
		EntityID:    &d.ID,
		Meta:        map[string]any{"area_id": areaID.String(), "device_code": code},
	}); err != nil {
		s.log.Warn("audit log failed", zap.String("device_id", d.ID.String()), zap.Error(err))
	}

	s.log.Info("device registered",
		zap.String("device_id", d.ID.String()),
		zap.String("device_code", code),
		zap.String("area_id", areaID.String()),
		zap.String("actor_type", actor.Type),
	)
	return d, nil
}

// AreaStoreID reports which store owns an area.
func (s *InventoryService) AreaStoreID(ctx context.Context, areaID uuid.UUID) (uuid.UUID, error) {
	a, err := s.areas.GetByID(ctx, areaID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("area %s: %w", areaID, err)
	}
	return a.StoreID, nil
}

// DeviceStoreID reports which store a device is installed in.
func (s *InventoryService) DeviceStoreID(ctx context.Context, deviceID uuid.UUID) (uuid.UUID, error) {
	d, err := s.devices.GetByID(ctx, deviceID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("device %s: %w", deviceID, err)
	}
	return s.AreaStoreID(ctx, d.AreaID)
}

func (s *InventoryService) GetDevice(ctx context.Context, id uuid.UUID) (*models.Device, error) {
	return s.devices.GetByID(ctx, id)
}

func (s *InventoryService) ListDevices(ctx context.Context, areaID uuid.UUID) ([]models.Device, error) {
	if _, err := s.areas.GetByID(ctx, areaID); err != nil {
		return nil, err
	}
	return s.devices.ListByArea(ctx, areaID)
}
