package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/events"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
)

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func day(s string) time.Time {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakeDevices struct {
	byID map[uuid.UUID]*models.Device
}

func newFakeDevices() *fakeDevices {
	return &fakeDevices{byID: map[uuid.UUID]*models.Device{}}
}

func (f *fakeDevices) add(areaID uuid.UUID) *models.Device {
	d := &models.Device{ID: uuid.New(), DeviceCode: models.NewDeviceCode(), AreaID: areaID, Status: models.DeviceStatusUnknown}
	f.byID[d.ID] = d
	return d
}

func (f *fakeDevices) GetByID(_ context.Context, id uuid.UUID) (*models.Device, error) {
	d, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDevices) Touch(_ context.Context, id uuid.UUID, at time.Time) error {
	d, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	d.Status = models.DeviceStatusOnline
	d.LastSyncAt = &at
	return nil
}

func (f *fakeDevices) Create(_ context.Context, d *models.Device) error {
	d.ID = uuid.New()
	d.RegisteredAt = baseTime
	cp := *d
	f.byID[d.ID] = &cp
	return nil
}

func (f *fakeDevices) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, d := range f.byID {
		if d.DeviceCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDevices) ListByArea(_ context.Context, areaID uuid.UUID) ([]models.Device, error) {
	out := []models.Device{}
	for _, d := range f.byID {
		if d.AreaID == areaID {
			out = append(out, *d)
		}
	}
	return out, nil
}

type fakeStores struct {
	list []models.Store
}

func (f *fakeStores) add(name string) models.Store {
	s := models.Store{ID: uuid.New(), Name: name, Code: name, IsActive: true}
	f.list = append(f.list, s)
	return s
}

func (f *fakeStores) Create(_ context.Context, s *models.Store) error {
	s.ID = uuid.New()
	f.list = append(f.list, *s)
	return nil
}

func (f *fakeStores) GetByID(_ context.Context, id uuid.UUID) (*models.Store, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			s := f.list[i]
			return &s, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeStores) List(context.Context) ([]models.Store, error) {
	return append([]models.Store{}, f.list...), nil
}

type fakeAreas struct {
	list []models.AreaWithStore
}

func (f *fakeAreas) add(store models.Store, name string) models.AreaWithStore {
	a := models.AreaWithStore{
		Area:      models.Area{ID: uuid.New(), StoreID: store.ID, Name: name, Code: name, IsActive: true},
		StoreName: store.Name,
	}
	f.list = append(f.list, a)
	return a
}

func (f *fakeAreas) Create(_ context.Context, a *models.Area) error {
	a.ID = uuid.New()
	f.list = append(f.list, models.AreaWithStore{Area: *a})
	return nil
}

func (f *fakeAreas) GetByID(_ context.Context, id uuid.UUID) (*models.AreaWithStore, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			a := f.list[i]
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAreas) ListByIDs(_ context.Context, ids []uuid.UUID) ([]models.AreaWithStore, error) {
	out := []models.AreaWithStore{}
	for _, a := range f.list {
		for _, id := range ids {
			if a.ID == id {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAreas) List(_ context.Context, storeID *uuid.UUID) ([]models.AreaWithStore, error) {
	out := []models.AreaWithStore{}
	for _, a := range f.list {
		if storeID == nil || a.StoreID == *storeID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCampaigns struct {
	byID    map[uuid.UUID]*models.Campaign
	order   []uuid.UUID
	areas   map[uuid.UUID][]uuid.UUID
	created int
	// replaceCalls counts ReplaceAreas invocations.
	replaceCalls int
}

func newFakeCampaigns() *fakeCampaigns {
	return &fakeCampaigns{byID: map[uuid.UUID]*models.Campaign{}, areas: map[uuid.UUID][]uuid.UUID{}}
}

// add stores an active campaign assigned to the given areas. Creation times
// increase with every call.
func (f *fakeCampaigns) add(storeID uuid.UUID, name string, weight int, start, end string, areaIDs ...uuid.UUID) *models.Campaign {
	c := &models.Campaign{
		StoreID:   storeID,
		Name:      name,
		Weight:    weight,
		StartDate: day(start),
		EndDate:   day(end),
		IsActive:  true,
	}
	_ = f.Create(context.Background(), c)
	f.areas[c.ID] = append([]uuid.UUID{}, areaIDs...)
	return f.byID[c.ID]
}

func (f *fakeCampaigns) Create(_ context.Context, c *models.Campaign) error {
	c.ID = uuid.New()
	c.CreatedAt = baseTime.Add(time.Duration(f.created) * time.Minute)
	c.UpdatedAt = c.CreatedAt
	f.created++
	cp := *c
	f.byID[c.ID] = &cp
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeCampaigns) GetByID(_ context.Context, id uuid.UUID) (*models.Campaign, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCampaigns) Update(_ context.Context, c *models.Campaign) error {
	old, ok := f.byID[c.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	cp := *c
	cp.StoreID = old.StoreID
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeCampaigns) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.areas, id)
	return nil
}

func (f *fakeCampaigns) List(_ context.Context, filter repositories.CampaignFilter) ([]models.Campaign, error) {
	out := []models.Campaign{}
	for _, id := range f.order {
		c, ok := f.byID[id]
		if !ok {
			continue
		}
		if filter.StoreID != nil && c.StoreID != *filter.StoreID {
			continue
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeCampaigns) ListAreaIDs(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return append([]uuid.UUID{}, f.areas[id]...), nil
}

func (f *fakeCampaigns) ReplaceAreas(_ context.Context, id uuid.UUID, areaIDs []uuid.UUID) error {
	f.replaceCalls++
	f.areas[id] = append([]uuid.UUID{}, areaIDs...)
	return nil
}

// ListByArea returns campaigns in reverse creation order so callers cannot
// rely on storage order.
func (f *fakeCampaigns) ListByArea(_ context.Context, areaID uuid.UUID) ([]models.Campaign, error) {
	out := []models.Campaign{}
	for i := len(f.order) - 1; i >= 0; i-- {
		c, ok := f.byID[f.order[i]]
		if !ok {
			continue
		}
		for _, a := range f.areas[c.ID] {
			if a == areaID {
				out = append(out, *c)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCampaigns) ListAssignments(_ context.Context, areaIDs []uuid.UUID) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, id := range f.order {
		c, ok := f.byID[id]
		if !ok {
			continue
		}
		for _, a := range f.areas[id] {
			if areaIDs == nil || containsID(areaIDs, a) {
				out = append(out, models.Assignment{AreaID: a, Campaign: *c})
			}
		}
	}
	return out, nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

type fakeMedia struct {
	list []models.Media
}

func (f *fakeMedia) add(campaignID uuid.UUID, sortOrder int) models.Media {
	m := models.Media{
		ID:              uuid.New(),
		CampaignID:      campaignID,
		Type:            models.MediaTypeImage,
		Filename:        "asset.png",
		StoragePath:     "local://" + uuid.NewString() + ".png",
		DurationSeconds: models.DefaultMediaDurationSeconds,
		SortOrder:       sortOrder,
		CreatedAt:       baseTime.Add(time.Duration(len(f.list)) * time.Second),
	}
	f.list = append(f.list, m)
	return m
}

func (f *fakeMedia) Create(_ context.Context, m *models.Media) error {
	m.ID = uuid.New()
	m.CreatedAt = baseTime.Add(time.Duration(len(f.list)) * time.Second)
	f.list = append(f.list, *m)
	return nil
}

func (f *fakeMedia) GetByID(_ context.Context, id uuid.UUID) (*models.Media, error) {
	for i := range f.list {
		if f.list[i].ID == id {
			m := f.list[i]
			return &m, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeMedia) CountByCampaign(_ context.Context, campaignID uuid.UUID) (int, error) {
	n := 0
	for _, m := range f.list {
		if m.CampaignID == campaignID {
			n++
		}
	}
	return n, nil
}

func (f *fakeMedia) Delete(_ context.Context, id uuid.UUID) error {
	for i := range f.list {
		if f.list[i].ID == id {
			f.list = append(f.list[:i], f.list[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

// ListByCampaigns returns media newest first to exercise in-service sorting.
func (f *fakeMedia) ListByCampaigns(_ context.Context, ids []uuid.UUID) ([]models.Media, error) {
	var out []models.Media
	for i := len(f.list) - 1; i >= 0; i-- {
		if containsID(ids, f.list[i].CampaignID) {
			out = append(out, f.list[i])
		}
	}
	return out, nil
}

type fakePlayback struct {
	entries []models.PlaybackLogEntry
}

func (f *fakePlayback) InsertBatch(_ context.Context, entries []models.PlaybackLogEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakePlayback) ListByDevice(_ context.Context, deviceID uuid.UUID, limit int) ([]models.PlaybackLogEntry, error) {
	out := []models.PlaybackLogEntry{}
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if f.entries[i].DeviceID == deviceID {
			out = append(out, f.entries[i])
		}
	}
	return out, nil
}

type fakeAudit struct {
	entries []models.AuditLog
}

func (f *fakeAudit) Log(_ context.Context, e models.AuditLog) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAudit) GetByEntity(_ context.Context, entityType string, id uuid.UUID, _, _ int) ([]models.AuditLog, error) {
	out := []models.AuditLog{}
	for _, e := range f.entries {
		if e.EntityType == entityType && e.EntityID != nil && *e.EntityID == id {
			out = append(out, e)
		}
	}
	return out, nil
}

type published struct {
	stream string
	event  events.Event
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(_ context.Context, stream string, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{stream: stream, event: e})
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.event.Type
	}
	return out
}
