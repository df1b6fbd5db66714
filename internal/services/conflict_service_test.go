package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type conflictFixture struct {
	stores    *fakeStores
	areas     *fakeAreas
	campaigns *fakeCampaigns
	svc       *ConflictService
	store     models.Store
	area      models.AreaWithStore
}

func newConflictFixture() *conflictFixture {
	f := &conflictFixture{
		stores:    &fakeStores{},
		areas:     &fakeAreas{},
		campaigns: newFakeCampaigns(),
	}
	f.store = f.stores.add("Central")
	f.area = f.areas.add(f.store, "Entrance")
	f.svc = NewConflictService(f.campaigns, f.areas, zap.NewNop())
	return f
}

func TestCheckConflicts_OverlapNamesOtherCampaign(t *testing.T) {
	f := newConflictFixture()
	c := f.campaigns.add(f.store.ID, "C", 10, "2024-01-01", "2024-01-10", f.area.ID)
	d := f.campaigns.add(f.store.ID, "D", 10, "2024-01-05", "2024-01-15", f.area.ID)

	got, err := f.svc.CheckConflicts(context.Background(), []uuid.UUID{f.area.ID}, c.StartDate, c.EndDate, &c.ID)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, d.ID, got[0].CampaignID)
	assert.Equal(t, "D", got[0].CampaignName)
	assert.Equal(t, f.area.ID, got[0].AreaID)
	assert.Equal(t, "Entrance", got[0].AreaName)
	assert.Equal(t, "Central", got[0].StoreName)
	assert.True(t, got[0].IsActive)
}

func TestCheckConflicts_Windows(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{"inside", "2024-01-03", "2024-01-04", 1},
		{"touching start", "2023-12-20", "2024-01-01", 1},
		{"touching end", "2024-01-10", "2024-01-20", 1},
		{"covering", "2023-12-01", "2024-02-01", 1},
		{"before", "2023-12-01", "2023-12-31", 0},
		{"after", "2024-01-11", "2024-01-31", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newConflictFixture()
			f.campaigns.add(f.store.ID, "existing", 10, "2024-01-01", "2024-01-10", f.area.ID)

			got, err := f.svc.CheckConflicts(context.Background(), []uuid.UUID{f.area.ID}, day(tt.start), day(tt.end), nil)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestCheckConflicts_SkipsInactiveAndExcluded(t *testing.T) {
	f := newConflictFixture()
	inactive := f.campaigns.add(f.store.ID, "paused", 10, "2024-01-01", "2024-01-31", f.area.ID)
	f.campaigns.byID[inactive.ID].IsActive = false
	self := f.campaigns.add(f.store.ID, "self", 10, "2024-01-01", "2024-01-31", f.area.ID)

	got, err := f.svc.CheckConflicts(context.Background(), []uuid.UUID{f.area.ID}, day("2024-01-01"), day("2024-01-31"), &self.ID)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = f.svc.CheckConflicts(context.Background(), []uuid.UUID{f.area.ID}, day("2024-01-01"), day("2024-01-31"), nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, self.ID, got[0].CampaignID)
}

func TestCheckConflicts_EmptyAreas(t *testing.T) {
	f := newConflictFixture()
	f.campaigns.add(f.store.ID, "existing", 10, "2024-01-01", "2024-01-10", f.area.ID)

	got, err := f.svc.CheckConflicts(context.Background(), nil, day("2024-01-01"), day("2024-01-10"), nil)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, err = f.svc.CheckConflicts(context.Background(), nil, day("2024-01-10"), day("2024-01-01"), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCheckConflicts_UnknownArea(t *testing.T) {
	f := newConflictFixture()

	_, err := f.svc.CheckConflicts(context.Background(), []uuid.UUID{f.area.ID, uuid.New()}, day("2024-01-01"), day("2024-01-10"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
}

func TestCheckConflicts_InvertedRange(t *testing.T) {
	f := newConflictFixture()

	_, err := f.svc.CheckConflicts(context.Background(), []uuid.UUID{f.area.ID}, day("2024-01-10"), day("2024-01-01"), nil)
	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_date", verr.Field)
}

func TestCheckConflicts_AreaOrderAndDuplicates(t *testing.T) {
	f := newConflictFixture()
	second := f.areas.add(f.store, "Checkout")
	a := f.campaigns.add(f.store.ID, "A", 10, "2024-01-01", "2024-01-10", f.area.ID)
	b := f.campaigns.add(f.store.ID, "B", 10, "2024-01-01", "2024-01-10", second.ID)

	got, err := f.svc.CheckConflicts(context.Background(),
		[]uuid.UUID{second.ID, f.area.ID, second.ID}, day("2024-01-05"), day("2024-01-06"), nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, b.ID, got[0].CampaignID)
	assert.Equal(t, a.ID, got[1].CampaignID)
}

func TestCheckConflicts_Idempotent(t *testing.T) {
	f := newConflictFixture()
	f.campaigns.add(f.store.ID, "A", 10, "2024-01-01", "2024-01-10", f.area.ID)
	f.campaigns.add(f.store.ID, "B", 20, "2024-01-08", "2024-01-20", f.area.ID)

	ids := []uuid.UUID{f.area.ID}
	first, err := f.svc.CheckConflicts(context.Background(), ids, day("2024-01-09"), day("2024-01-09"), nil)
	require.NoError(t, err)
	second, err := f.svc.CheckConflicts(context.Background(), ids, day("2024-01-09"), day("2024-01-09"), nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 2)
}

func TestAssignmentSnapshot(t *testing.T) {
	f := newConflictFixture()
	other := f.stores.add("North")
	otherArea := f.areas.add(other, "Lobby")
	empty := f.areas.add(f.store, "Back")
	late := f.campaigns.add(f.store.ID, "late", 10, "2024-02-01", "2024-02-10", f.area.ID)
	early := f.campaigns.add(f.store.ID, "early", 10, "2024-01-01", "2024-01-10", f.area.ID)
	f.campaigns.add(other.ID, "elsewhere", 10, "2024-01-01", "2024-01-10", otherArea.ID)

	t.Run("store filter without window", func(t *testing.T) {
		rows, err := f.svc.AssignmentSnapshot(context.Background(), &f.store.ID, nil, nil)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		assert.Equal(t, f.area.ID, rows[0].Area.ID)
		require.Len(t, rows[0].Campaigns, 2)
		assert.Equal(t, early.ID, rows[0].Campaigns[0].ID)
		assert.Equal(t, late.ID, rows[0].Campaigns[1].ID)
		assert.Empty(t, rows[0].Conflicting)

		assert.Equal(t, empty.ID, rows[1].Area.ID)
		assert.NotNil(t, rows[1].Campaigns)
		assert.Empty(t, rows[1].Campaigns)
	})

	t.Run("window marks conflicting campaigns", func(t *testing.T) {
		window := models.DateRange{Start: day("2024-01-10"), End: day("2024-01-15")}
		rows, err := f.svc.AssignmentSnapshot(context.Background(), &f.store.ID, &window, nil)
		require.NoError(t, err)
		require.Len(t, rows[0].Conflicting, 1)
		assert.Equal(t, early.ID, rows[0].Conflicting[0].ID)

		rows, err = f.svc.AssignmentSnapshot(context.Background(), &f.store.ID, &window, &early.ID)
		require.NoError(t, err)
		assert.Empty(t, rows[0].Conflicting)
	})

	t.Run("all stores", func(t *testing.T) {
		rows, err := f.svc.AssignmentSnapshot(context.Background(), nil, nil, nil)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})
}
