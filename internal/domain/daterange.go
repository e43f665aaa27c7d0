package domain

import (
	"fmt"
	"math"
	"time"
)

// DateRange is the value object describing the start and end of a trip.
// The start must be strictly before the end; zero-length ranges are rejected.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange validates and builds a DateRange.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("start and end dates are required: %w", ErrBadRequest)
	}
	if !start.Before(end) {
		return DateRange{}, fmt.Errorf("start date must be before end date: %w", ErrBadRequest)
	}
	return DateRange{start: start, end: end}, nil
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

// DurationInDays returns the span of the range rounded up to whole days.
func (r DateRange) DurationInDays() int {
	return int(math.Ceil(r.end.Sub(r.start).Hours() / 24))
}

// Includes reports whether t falls within the range, bounds inclusive.
func (r DateRange) Includes(t time.Time) bool {
	return !t.Before(r.start) && !t.After(r.end)
}

// Overlaps reports whether two ranges share any instant. It is symmetric:
// a.Overlaps(b) == b.Overlaps(a).
func (r DateRange) Overlaps(other DateRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// Format renders the range as "2006-01-02 - 2006-01-02".
func (r DateRange) Format() string {
	return r.start.Format("2006-01-02") + " - " + r.end.Format("2006-01-02")
}

// Equals compares ranges by instant, ignoring time zone representation.
func (r DateRange) Equals(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}
