package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/screendeck/backend/internal/events"
	"go.uber.org/zap"
)

type stubMarker struct {
	ids    []uuid.UUID
	err    error
	cutoff time.Time
}

func (s *stubMarker) MarkOfflineBefore(_ context.Context, cutoff time.Time) ([]uuid.UUID, error) {
	s.cutoff = cutoff
	return s.ids, s.err
}

type countingPublisher struct {
	types []string
}

func (p *countingPublisher) Publish(_ context.Context, stream string, e events.Event) error {
	if stream != events.StreamDevices {
		return errors.New("unexpected stream " + stream)
	}
	p.types = append(p.types, e.Type)
	return nil
}

func TestRunOfflineSweep(t *testing.T) {
	cutoff := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	marker := &stubMarker{ids: []uuid.UUID{uuid.New(), uuid.New()}}
	pub := &countingPublisher{}

	n := runOfflineSweep(context.Background(), marker, pub, cutoff, zap.NewNop())
	if n != 2 {
		t.Errorf("marked = %d, want 2", n)
	}
	if !marker.cutoff.Equal(cutoff) {
		t.Errorf("cutoff = %v, want %v", marker.cutoff, cutoff)
	}
	if len(pub.types) != 2 || pub.types[0] != events.EventDeviceOffline {
		t.Errorf("published = %v", pub.types)
	}
}

func TestRunOfflineSweep_Error(t *testing.T) {
	pub := &countingPublisher{}
	n := runOfflineSweep(context.Background(), &stubMarker{err: errors.New("db down")}, pub, time.Now(), zap.NewNop())
	if n != 0 || len(pub.types) != 0 {
		t.Errorf("marked = %d, published = %v", n, pub.types)
	}
}
