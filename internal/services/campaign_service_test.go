package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/events"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type campaignFixture struct {
	stores    *fakeStores
	areas     *fakeAreas
	campaigns *fakeCampaigns
	media     *fakeMedia
	audit     *fakeAudit
	pub       *recordingPublisher
	svc       *CampaignService
	store     models.Store
	area      models.AreaWithStore
	admin     Actor
}

func newCampaignFixture() *campaignFixture {
	f := &campaignFixture{
		stores:    &fakeStores{},
		areas:     &fakeAreas{},
		campaigns: newFakeCampaigns(),
		media:     &fakeMedia{},
		audit:     &fakeAudit{},
		pub:       &recordingPublisher{},
		admin:     Actor{UserID: uuid.New(), Type: models.ActorAdmin},
	}
	f.store = f.stores.add("Central")
	f.area = f.areas.add(f.store, "Entrance")
	conflicts := NewConflictService(f.campaigns, f.areas, zap.NewNop())
	f.svc = NewCampaignService(f.campaigns, f.areas, f.media, f.stores, conflicts, f.audit, f.pub, zap.NewNop())
	return f
}

func TestCampaignCreate(t *testing.T) {
	f := newCampaignFixture()

	c := &models.Campaign{StoreID: f.store.ID, Name: "Spring", StartDate: day("2024-03-01"), EndDate: day("2024-03-31"), IsActive: true}
	require.NoError(t, f.svc.Create(context.Background(), f.admin, c))
	assert.NotEqual(t, uuid.Nil, c.ID)
	assert.Equal(t, models.MinCampaignWeight, c.Weight)

	require.Len(t, f.audit.entries, 1)
	assert.Equal(t, models.AuditCampaignCreated, f.audit.entries[0].Action)
	assert.Equal(t, f.admin.UserID, *f.audit.entries[0].ActorUserID)
}

func TestCampaignCreate_Validation(t *testing.T) {
	tests := []struct {
		name  string
		c     models.Campaign
		field string
	}{
		{"missing name", models.Campaign{Weight: 10, StartDate: day("2024-01-01"), EndDate: day("2024-01-02")}, "name"},
		{"weight too high", models.Campaign{Name: "x", Weight: 101, StartDate: day("2024-01-01"), EndDate: day("2024-01-02")}, "weight"},
		{"inverted dates", models.Campaign{Name: "x", Weight: 10, StartDate: day("2024-01-05"), EndDate: day("2024-01-02")}, "end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCampaignFixture()
			c := tt.c
			c.StoreID = f.store.ID

			err := f.svc.Create(context.Background(), f.admin, &c)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, f.campaigns.byID)
		})
	}
}

func TestCampaignCreate_UnknownStore(t *testing.T) {
	f := newCampaignFixture()
	c := &models.Campaign{StoreID: uuid.New(), Name: "x", Weight: 5, StartDate: day("2024-01-01"), EndDate: day("2024-01-02")}

	err := f.svc.Create(context.Background(), f.admin, c)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestCampaignUpdate_MergesAndValidates(t *testing.T) {
	f := newCampaignFixture()
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10")

	weight := 40
	got, err := f.svc.Update(context.Background(), f.admin, c.ID, CampaignPatch{Weight: &weight})
	require.NoError(t, err)
	assert.Equal(t, 40, got.Weight)
	assert.Equal(t, "C", got.Name)
	assert.True(t, got.EndDate.Equal(day("2024-01-10")))

	start := day("2024-02-01")
	_, err = f.svc.Update(context.Background(), f.admin, c.ID, CampaignPatch{StartDate: &start})
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Field)
	assert.True(t, f.campaigns.byID[c.ID].StartDate.Equal(day("2024-01-01")))
}

func TestCampaignDelete(t *testing.T) {
	f := newCampaignFixture()
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10", f.area.ID)

	require.NoError(t, f.svc.Delete(context.Background(), f.admin, c.ID))
	assert.True(t, errors.Is(f.svc.Delete(context.Background(), f.admin, c.ID), repositories.ErrNotFound))
}

func TestSetAreas_ReportsConflictsAndSaves(t *testing.T) {
	f := newCampaignFixture()
	existing := f.campaigns.add(f.store.ID, "existing", 10, "2024-01-05", "2024-01-15", f.area.ID)
	c := f.campaigns.add(f.store.ID, "new", 10, "2024-01-01", "2024-01-10")

	res, err := f.svc.SetAreas(context.Background(), f.admin, c.ID, []uuid.UUID{f.area.ID, f.area.ID}, false)
	require.NoError(t, err)
	require.Len(t, res.Areas, 1)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, existing.ID, res.Conflicts[0].CampaignID)
	assert.Equal(t, []uuid.UUID{f.area.ID}, f.campaigns.areas[c.ID])

	assert.Equal(t, []string{events.EventCampaignAreasUpdated}, f.pub.types())
	require.NotEmpty(t, f.audit.entries)
	assert.Equal(t, models.AuditCampaignAreasUpdated, f.audit.entries[len(f.audit.entries)-1].Action)
}

func TestSetAreas_RejectOnConflict(t *testing.T) {
	f := newCampaignFixture()
	f.campaigns.add(f.store.ID, "existing", 10, "2024-01-05", "2024-01-15", f.area.ID)
	c := f.campaigns.add(f.store.ID, "new", 10, "2024-01-01", "2024-01-10")

	res, err := f.svc.SetAreas(context.Background(), f.admin, c.ID, []uuid.UUID{f.area.ID}, true)
	require.ErrorIs(t, err, ErrConflict)
	require.NotNil(t, res)
	assert.Len(t, res.Conflicts, 1)
	assert.Zero(t, f.campaigns.replaceCalls)
	assert.Empty(t, f.pub.types())
}

func TestSetAreas_OwnAssignmentIsNotAConflict(t *testing.T) {
	f := newCampaignFixture()
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10", f.area.ID)

	res, err := f.svc.SetAreas(context.Background(), f.admin, c.ID, []uuid.UUID{f.area.ID}, true)
	require.NoError(t, err)
	assert.Empty(t, res.Conflicts)
}

func TestSetAreas_Validation(t *testing.T) {
	f := newCampaignFixture()
	other := f.stores.add("North")
	foreign := f.areas.add(other, "Lobby")
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10")

	var verr *models.ValidationError
	_, err := f.svc.SetAreas(context.Background(), f.admin, c.ID, []uuid.UUID{uuid.New()}, false)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "area_ids", verr.Field)

	_, err = f.svc.SetAreas(context.Background(), f.admin, c.ID, []uuid.UUID{foreign.ID}, false)
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, f.campaigns.replaceCalls)

	_, err = f.svc.SetAreas(context.Background(), f.admin, uuid.New(), []uuid.UUID{f.area.ID}, false)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestSetAreas_EmptyClearsAssignments(t *testing.T) {
	f := newCampaignFixture()
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10", f.area.ID)

	res, err := f.svc.SetAreas(context.Background(), f.admin, c.ID, nil, false)
	require.NoError(t, err)
	assert.Empty(t, res.Areas)
	assert.Empty(t, f.campaigns.areas[c.ID])

	areas, err := f.svc.GetAreas(context.Background(), c.ID)
	require.NoError(t, err)
	assert.NotNil(t, areas)
	assert.Empty(t, areas)
}

func TestAddMedia(t *testing.T) {
	f := newCampaignFixture()
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10")

	first, err := f.svc.AddMedia(context.Background(), f.admin, c.ID, MediaInput{Type: models.MediaTypeImage, Filename: "a.png", StoragePath: "local://a.png"})
	require.NoError(t, err)
	assert.Equal(t, 0, first.SortOrder)
	assert.Equal(t, models.DefaultMediaDurationSeconds, first.DurationSeconds)

	second, err := f.svc.AddMedia(context.Background(), f.admin, c.ID, MediaInput{Type: models.MediaTypeVideo, Filename: "b.mp4", StoragePath: "local://b.mp4", DurationSeconds: 30})
	require.NoError(t, err)
	assert.Equal(t, 1, second.SortOrder)
	assert.Equal(t, 30, second.DurationSeconds)

	list, err := f.svc.ListMedia(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, f.svc.DeleteMedia(context.Background(), f.admin, first.ID))
	list, err = f.svc.ListMedia(context.Background(), c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	history, err := f.svc.History(context.Background(), c.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestAddMedia_Validation(t *testing.T) {
	negative := -1
	tests := []struct {
		name  string
		in    MediaInput
		field string
	}{
		{"bad type", MediaInput{Type: "audio", Filename: "a", StoragePath: "a"}, "type"},
		{"missing path", MediaInput{Type: models.MediaTypeImage, Filename: "a"}, "storage_path"},
		{"negative duration", MediaInput{Type: models.MediaTypeImage, Filename: "a", StoragePath: "a", DurationSeconds: -5}, "duration_seconds"},
		{"negative sort order", MediaInput{Type: models.MediaTypeImage, Filename: "a", StoragePath: "a", SortOrder: &negative}, "sort_order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCampaignFixture()
			c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10")

			_, err := f.svc.AddMedia(context.Background(), f.admin, c.ID, tt.in)
			var verr *models.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Empty(t, f.media.list)
		})
	}
}
