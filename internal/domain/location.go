package domain

import (
	"fmt"
	"strings"
)

// Coordinates is an optional geographic point attached to a Location.
type Coordinates struct {
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
}

// Location is the value object describing where a trip takes place.
type Location struct {
	city        string
	country     string
	coordinates *Coordinates
}

// NewLocation validates and builds a Location. Coordinates are optional;
// when present they must lie within geographic bounds.
func NewLocation(city, country string, coords *Coordinates) (Location, error) {
	city = strings.TrimSpace(city)
	country = strings.TrimSpace(country)
	if city == "" || country == "" {
		return Location{}, fmt.Errorf("city and country are required: %w", ErrBadRequest)
	}
	if coords != nil {
		if coords.Latitude < -90 || coords.Latitude > 90 {
			return Location{}, fmt.Errorf("latitude must be between -90 and 90: %w", ErrBadRequest)
		}
		if coords.Longitude < -180 || coords.Longitude > 180 {
			return Location{}, fmt.Errorf("longitude must be between -180 and 180: %w", ErrBadRequest)
		}
		c := *coords
		coords = &c
	}
	return Location{city: city, country: country, coordinates: coords}, nil
}

func (l Location) City() string    { return l.city }
func (l Location) Country() string { return l.country }

// Coordinates returns a copy of the optional coordinates, or nil.
func (l Location) Coordinates() *Coordinates {
	if l.coordinates == nil {
		return nil
	}
	c := *l.coordinates
	return &c
}

// Format renders the location as "City, Country".
func (l Location) Format() string {
	return l.city + ", " + l.country
}

// Equals compares locations by structural value.
func (l Location) Equals(other Location) bool {
	if l.city != other.city || l.country != other.country {
		return false
	}
	if (l.coordinates == nil) != (other.coordinates == nil) {
		return false
	}
	if l.coordinates == nil {
		return true
	}
	return *l.coordinates == *other.coordinates
}
