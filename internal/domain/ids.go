package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// TripID is the opaque identifier of a Trip aggregate.
type TripID struct {
	value string
}

// NewTripID generates a fresh random trip identifier.
func NewTripID() TripID {
	return TripID{value: uuid.NewString()}
}

// ParseTripID wraps an existing identifier string.
func ParseTripID(value string) (TripID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return TripID{}, fmt.Errorf("trip id cannot be empty: %w", ErrBadRequest)
	}
	return TripID{value: value}, nil
}

func (id TripID) String() string       { return id.value }
func (id TripID) IsZero() bool         { return id.value == "" }
func (id TripID) Equals(o TripID) bool { return id.value == o.value }

// UserID is the opaque identifier of a User aggregate.
type UserID struct {
	value string
}

// NewUserID generates a fresh random user identifier.
func NewUserID() UserID {
	return UserID{value: uuid.NewString()}
}

// ParseUserID wraps an existing identifier string.
func ParseUserID(value string) (UserID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return UserID{}, fmt.Errorf("user id cannot be empty: %w", ErrBadRequest)
	}
	return UserID{value: value}, nil
}

func (id UserID) String() string       { return id.value }
func (id UserID) IsZero() bool         { return id.value == "" }
func (id UserID) Equals(o UserID) bool { return id.value == o.value }
