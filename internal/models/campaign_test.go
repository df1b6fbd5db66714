package models

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func day(s string) time.Time {
	t, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCampaignConflictsWith(t *testing.T) {
	base := Campaign{
		ID:        uuid.New(),
		Weight:    10,
		StartDate: day("2026-01-05"),
		EndDate:   day("2026-01-15"),
		IsActive:  true,
	}

	tests := []struct {
		name     string
		start    string
		end      string
		active   bool
		expected bool
	}{
		{"window inside", "2026-01-07", "2026-01-08", true, true},
		{"window covers", "2026-01-01", "2026-01-31", true, true},
		{"overlap left", "2026-01-01", "2026-01-10", true, true},
		{"overlap right", "2026-01-10", "2026-01-20", true, true},
		{"touch start", "2026-01-01", "2026-01-05", true, true},
		{"touch end", "2026-01-15", "2026-01-20", true, true},
		{"before", "2026-01-01", "2026-01-04", true, false},
		{"after", "2026-01-16", "2026-01-20", true, false},
		{"inactive overlap", "2026-01-07", "2026-01-08", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			c.IsActive = tt.active
			window := DateRange{Start: day(tt.start), End: day(tt.end)}
			if got := c.ConflictsWith(window, nil); got != tt.expected {
				t.Errorf("ConflictsWith(%s..%s) = %v, want %v", tt.start, tt.end, got, tt.expected)
			}
		})
	}
}

func TestCampaignConflictsWithExcluded(t *testing.T) {
	c := Campaign{
		ID:        uuid.New(),
		StartDate: day("2026-01-01"),
		EndDate:   day("2026-01-31"),
		IsActive:  true,
	}
	window := DateRange{Start: day("2026-01-10"), End: day("2026-01-11")}

	if c.ConflictsWith(window, &c.ID) {
		t.Error("excluded campaign must never conflict")
	}
	other := uuid.New()
	if !c.ConflictsWith(window, &other) {
		t.Error("exclusion of another id must not hide the conflict")
	}
}

func TestCampaignIsLiveOn(t *testing.T) {
	c := Campaign{StartDate: day("2026-03-01"), EndDate: day("2026-03-03"), IsActive: true}

	tests := []struct {
		day      string
		expected bool
	}{
		{"2026-02-28", false},
		{"2026-03-01", true},
		{"2026-03-02", true},
		{"2026-03-03", true},
		{"2026-03-04", false},
	}
	for _, tt := range tests {
		t.Run(tt.day, func(t *testing.T) {
			if got := c.IsLiveOn(day(tt.day)); got != tt.expected {
				t.Errorf("IsLiveOn(%s) = %v, want %v", tt.day, got, tt.expected)
			}
		})
	}

	c.IsActive = false
	if c.IsLiveOn(day("2026-03-02")) {
		t.Error("inactive campaign must not be live")
	}
}

func TestCampaignValidate(t *testing.T) {
	tests := []struct {
		name  string
		c     Campaign
		field string
	}{
		{"ok", Campaign{Name: "Spring", Weight: 1, StartDate: day("2026-01-01"), EndDate: day("2026-01-01")}, ""},
		{"missing name", Campaign{Weight: 5, StartDate: day("2026-01-01"), EndDate: day("2026-01-02")}, "name"},
		{"weight zero", Campaign{Name: "x", Weight: 0, StartDate: day("2026-01-01"), EndDate: day("2026-01-02")}, "weight"},
		{"weight too high", Campaign{Name: "x", Weight: 101, StartDate: day("2026-01-01"), EndDate: day("2026-01-02")}, "weight"},
		{"inverted dates", Campaign{Name: "x", Weight: 100, StartDate: day("2026-01-02"), EndDate: day("2026-01-01")}, "end_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.field == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tt.field {
				t.Errorf("ValidationError.Field = %q, want %q", verr.Field, tt.field)
			}
		})
	}
}

func TestDateOfUsesCalendarDate(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	late := time.Date(2026, 5, 1, 23, 30, 0, 0, loc)

	got := DateOf(late)
	want := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOf() = %v, want %v", got, want)
	}
}

func TestNewDeviceCode(t *testing.T) {
	code := NewDeviceCode()
	if len(code) != len("DEV-")+8 || code[:4] != "DEV-" {
		t.Errorf("NewDeviceCode() = %q, want DEV-XXXXXXXX", code)
	}
}
