package domain

import (
	"sort"
	"strings"
	"time"
)

// SortOrder selects how filtered trips are ordered.
type SortOrder string

const (
	SortNone         SortOrder = ""
	SortByPrice      SortOrder = "price"      // price ascending
	SortByDate       SortOrder = "date"       // start date ascending
	SortByPopularity SortOrder = "popularity" // fewest spots remaining first
)

// ParseSortOrder maps a query-string value onto a SortOrder.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch SortOrder(s) {
	case SortNone, SortByPrice, SortByDate, SortByPopularity:
		return SortOrder(s), true
	}
	return SortNone, false
}

// TripFilter holds the optional predicates of a trip search. Nil/empty
// fields are skipped. Filtering is O(n) over the input and stable: without
// a sort order the input order is preserved.
type TripFilter struct {
	Location  string
	StartDate *time.Time
	EndDate   *time.Time
	MaxPrice  *float64
	SortBy    SortOrder
}

// Matches reports whether a single trip satisfies every set predicate.
func (f TripFilter) Matches(t Trip) bool {
	if f.Location != "" {
		needle := strings.ToLower(f.Location)
		loc := t.Location()
		if !strings.Contains(strings.ToLower(loc.City()), needle) &&
			!strings.Contains(strings.ToLower(loc.Country()), needle) {
			return false
		}
	}
	if f.StartDate != nil && t.Dates().Start().Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.Dates().End().After(*f.EndDate) {
		return false
	}
	if f.MaxPrice != nil && t.Price().Amount() > *f.MaxPrice {
		return false
	}
	return true
}

// Apply filters and optionally sorts the given trips, returning a new slice.
func (f TripFilter) Apply(trips []Trip) []Trip {
	out := make([]Trip, 0, len(trips))
	for _, t := range trips {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	switch f.SortBy {
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price().Amount() < out[j].Price().Amount()
		})
	case SortByDate:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Dates().Start().Before(out[j].Dates().Start())
		})
	case SortByPopularity:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].AvailableSpots() < out[j].AvailableSpots()
		})
	}
	return out
}
