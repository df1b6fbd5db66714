package models

import "time"

const DateLayout = "2006-01-02"

// DateOf returns the calendar date of t (in t's own location) as midnight UTC.
// All campaign dates are stored and compared in this form.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// DateRange is a closed interval of calendar dates.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: DateOf(start), End: DateOf(end)}
	if r.End.Before(r.Start) {
		return DateRange{}, NewValidationError("end_date", "must not be before start_date")
	}
	return r, nil
}

// Overlaps reports whether two closed ranges share at least one day.
// Ranges touching on a single day overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

func (r DateRange) Contains(day time.Time) bool {
	day = DateOf(day)
	return !day.Before(r.Start) && !day.After(r.End)
}
