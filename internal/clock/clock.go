// Package clock abstracts the server time used for scheduling so date
// boundaries can be tested deterministically.
package clock

import (
	"time"

	"github.com/screendeck/backend/internal/models"
)

type Clock interface {
	// Now is the instant used for last_sync_at, synced_at and generated_at.
	Now() time.Time
	// Today is the calendar date campaigns are scheduled against, as midnight UTC.
	Today() time.Time
}

// System reads the wall clock. Today is computed in Location.
type System struct {
	Location *time.Location
}

func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{Location: loc}
}

func (s System) Now() time.Time {
	return time.Now().UTC()
}

func (s System) Today() time.Time {
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return models.DateOf(time.Now().In(loc))
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Today() time.Time {
	return models.DateOf(f.At)
}
