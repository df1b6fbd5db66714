package services

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/models"
	"github.com/screendeck/backend/internal/repositories"
	"go.uber.org/zap"
)

// ConflictService answers "which active campaigns already occupy these areas
// in this window". It only reads; saving an overlapping assignment stays
// possible and is the caller's decision.
type ConflictService struct {
	campaigns AssignmentStore
	areas     AreaStore
	log       *zap.Logger
}

func NewConflictService(campaigns AssignmentStore, areas AreaStore, log *zap.Logger) *ConflictService {
	return &ConflictService{campaigns: campaigns, areas: areas, log: log}
}

// CheckConflicts returns one Conflict per (area, overlapping campaign) pair,
// areas in input order. An empty area list yields an empty result.
func (s *ConflictService) CheckConflicts(ctx context.Context, areaIDs []uuid.UUID, startDate, endDate time.Time, excludeCampaignID *uuid.UUID) ([]models.Conflict, error) {
	ids := uniqueIDs(areaIDs)
	conflicts := []models.Conflict{}
	if len(ids) == 0 {
		return conflicts, nil
	}

	window, err := models.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}

	areas, err := s.areas.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load areas: %w", err)
	}
	areaIndex := make(map[uuid.UUID]models.AreaWithStore, len(areas))
	for _, a := range areas {
		areaIndex[a.ID] = a
	}
	for _, id := range ids {
		if _, ok := areaIndex[id]; !ok {
			return nil, fmt.Errorf("area %s: %w", id, repositories.ErrNotFound)
		}
	}

	byArea, err := s.assignedByArea(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		area := areaIndex[id]
		for _, c := range conflictingCampaigns(byArea[id], window, excludeCampaignID) {
			conflicts = append(conflicts, models.NewConflict(area, c))
		}
	}

	if len(conflicts) > 0 {
		s.log.Debug("schedule conflicts found",
			zap.Int("areas", len(ids)),
			zap.Int("conflicts", len(conflicts)),
			zap.Time("start_date", window.Start),
			zap.Time("end_date", window.End),
		)
	}
	return conflicts, nil
}

// AssignmentSnapshot renders the full assignment matrix: every area (of one
// store when storeID is set) with its campaigns and, when a window is given,
// the campaigns conflicting with it under the same rules as CheckConflicts.
func (s *ConflictService) AssignmentSnapshot(ctx context.Context, storeID *uuid.UUID, window *models.DateRange, excludeCampaignID *uuid.UUID) ([]models.AreaAssignments, error) {
	if window != nil {
		w, err := models.NewDateRange(window.Start, window.End)
		if err != nil {
			return nil, err
		}
		window = &w
	}

	areas, err := s.areas.List(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("load areas: %w", err)
	}
	snapshot := make([]models.AreaAssignments, 0, len(areas))
	if len(areas) == 0 {
		return snapshot, nil
	}

	ids := make([]uuid.UUID, len(areas))
	for i, a := range areas {
		ids[i] = a.ID
	}
	byArea, err := s.assignedByArea(ctx, ids)
	if err != nil {
		return nil, err
	}

	for _, a := range areas {
		row := models.AreaAssignments{
			Area:        a,
			Campaigns:   byArea[a.ID],
			Conflicting: []models.Campaign{},
		}
		if row.Campaigns == nil {
			row.Campaigns = []models.Campaign{}
		}
		if window != nil {
			row.Conflicting = conflictingCampaigns(row.Campaigns, *window, excludeCampaignID)
		}
		snapshot = append(snapshot, row)
	}
	return snapshot, nil
}

func (s *ConflictService) assignedByArea(ctx context.Context, areaIDs []uuid.UUID) (map[uuid.UUID][]models.Campaign, error) {
	assignments, err := s.campaigns.ListAssignments(ctx, areaIDs)
	if err != nil {
		return nil, fmt.Errorf("load assignments: %w", err)
	}
	byArea := make(map[uuid.UUID][]models.Campaign)
	for _, a := range assignments {
		byArea[a.AreaID] = append(byArea[a.AreaID], a.Campaign)
	}
	for id := range byArea {
		sortBySchedule(byArea[id])
	}
	return byArea, nil
}

func conflictingCampaigns(campaigns []models.Campaign, window models.DateRange, excludeID *uuid.UUID) []models.Campaign {
	out := []models.Campaign{}
	for i := range campaigns {
		if campaigns[i].ConflictsWith(window, excludeID) {
			out = append(out, campaigns[i])
		}
	}
	return out
}

func sortBySchedule(cs []models.Campaign) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if !a.StartDate.Equal(b.StartDate) {
			return a.StartDate.Before(b.StartDate)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return bytes.Compare(a.ID[:], b.ID[:]) < 0
	})
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]bool, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
