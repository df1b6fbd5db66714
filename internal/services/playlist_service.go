package services

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/clock"
	"github.com/screendeck/backend/internal/config"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/storage"
	"go.uber.org/zap"
)

// PlaylistService resolves what a device must play today.
//
// In weighted-list mode the result is deterministic: campaigns by weight
// (highest first, then creation order, then id) and each campaign's media by
// sort_order (then creation order, then id). In weighted-shuffle mode the
// same items are permuted on every call with weight-biased sampling, so the
// playlist version changes on every request.
type PlaylistService struct {
	devices   DeviceStore
	campaigns AssignmentStore
	media     MediaSource
	urls      storage.URLProvider
	clock     clock.Clock
	mode      string
	random    func() float64
	log       *zap.Logger
}

func NewPlaylistService(
	devices DeviceStore,
	campaigns AssignmentStore,
	media MediaSource,
	urls storage.URLProvider,
	clk clock.Clock,
	mode string,
	log *zap.Logger,
) *PlaylistService {
	if mode != config.OrderingWeightedShuffle {
		mode = config.OrderingWeightedList
	}
	return &PlaylistService{
		devices:   devices,
		campaigns: campaigns,
		media:     media,
		urls:      urls,
		clock:     clk,
		mode:      mode,
		random:    rand.Float64,
		log:       log,
	}
}

func (s *PlaylistService) Mode() string {
	return s.mode
}

// Resolve returns the ordered items for the device. The request doubles as a
// check-in: the device is marked online before the playlist is assembled.
func (s *PlaylistService) Resolve(ctx context.Context, deviceID uuid.UUID) ([]models.PlaylistItem, error) {
	device, err := s.devices.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if err := s.devices.Touch(ctx, device.ID, s.clock.Now()); err != nil {
		return nil, err
	}

	assigned, err := s.campaigns.ListByArea(ctx, device.AreaID)
	if err != nil {
		return nil, fmt.Errorf("load area campaigns: %w", err)
	}

	today := s.clock.Today()
	live := make([]models.Campaign, 0, len(assigned))
	for i := range assigned {
		if assigned[i].IsLiveOn(today) {
			live = append(live, assigned[i])
		}
	}
	items := []models.PlaylistItem{}
	if len(live) == 0 {
		return items, nil
	}
	sortByPriority(live)

	ids := make([]uuid.UUID, len(live))
	for i, c := range live {
		ids[i] = c.ID
	}
	media, err := s.media.ListByCampaigns(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load media: %w", err)
	}
	byCampaign := make(map[uuid.UUID][]models.Media, len(live))
	for _, m := range media {
		byCampaign[m.CampaignID] = append(byCampaign[m.CampaignID], m)
	}

	weights := make([]int, 0, len(media))
	for _, c := range live {
		list := byCampaign[c.ID]
		sortByPresentation(list)
		for _, m := range list {
			url, err := s.urls.AccessURL(ctx, m.StoragePath)
			if err != nil {
				return nil, fmt.Errorf("media %s url: %w", m.ID, err)
			}
			items = append(items, models.PlaylistItem{
				MediaID:         m.ID,
				CampaignID:      c.ID,
				URL:             url,
				Type:            m.Type,
				DurationSeconds: m.DurationSeconds,
				Filename:        m.Filename,
			})
			weights = append(weights, c.Weight)
		}
	}

	if s.mode == config.OrderingWeightedShuffle {
		items = weightedShuffle(items, weights, s.random)
	}

	s.log.Debug("playlist resolved",
		zap.String("device_id", device.ID.String()),
		zap.String("area_id", device.AreaID.String()),
		zap.Int("campaigns", len(live)),
		zap.Int("items", len(items)),
	)
	return items, nil
}

// PlaylistVersion fingerprints the ordered media ids: the first 8 hex chars
// of their MD5. Same ids in the same order always give the same version.
func PlaylistVersion(items []models.PlaylistItem) string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.MediaID.String()
	}
	sum := md5.Sum([]byte(strings.Join(ids, "-")))
	return hex.EncodeToString(sum[:])[:8]
}

func sortByPriority(cs []models.Campaign) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

func sortByPresentation(ms []models.Media) {
	sort.SliceStable(ms, func(i, j int) bool {
		a, b := ms[i], ms[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

// weightedShuffle is weighted sampling without replacement: each item gets
// key u^(1/w) and items are ordered by key, highest first.
func weightedShuffle(items []models.PlaylistItem, weights []int, random func() float64) []models.PlaylistItem {
	type keyed struct {
		item models.PlaylistItem
		key  float64
	}
	ks := make([]keyed, len(items))
	for i := range items {
		w := float64(weights[i])
		if w <= 0 {
			w = 1
		}
		ks[i] = keyed{item: items[i], key: math.Pow(random(), 1/w)}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key > ks[j].key })

	out := make([]models.PlaylistItem, len(ks))
	for i := range ks {
		out[i] = ks[i].item
	}
	return out
}
