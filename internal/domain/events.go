package domain

import "time"

// Event is an immutable record of a state change emitted by an aggregate.
// Mutation methods return events alongside the new aggregate state; a
// caller-owned bus dispatches them after the aggregate is persisted.
type Event interface {
	Name() string
	OccurredAt() time.Time
}

// Event names, used as bus subscription keys.
const (
	EventTripCreated            = "trip.created"
	EventTripPublished          = "trip.published"
	EventTripBooked             = "trip.booked"
	EventTripParticipantRemoved = "trip.participant_removed"
	EventTripCancelled          = "trip.cancelled"
	EventTripCompleted          = "trip.completed"
	EventUserRegistered         = "user.registered"
	EventUserProfileUpdated     = "user.profile_updated"
	EventUserPasswordChanged    = "user.password_changed"
	EventUserActivated          = "user.activated"
	EventUserDeactivated        = "user.deactivated"
)

// TripCreated is emitted when a trip aggregate is first constructed.
type TripCreated struct {
	TripID string
	Title  string
	At     time.Time
}

func (e TripCreated) Name() string          { return EventTripCreated }
func (e TripCreated) OccurredAt() time.Time { return e.At }

// TripPublished is emitted when a draft trip becomes bookable.
type TripPublished struct {
	TripID string
	At     time.Time
}

func (e TripPublished) Name() string          { return EventTripPublished }
func (e TripPublished) OccurredAt() time.Time { return e.At }

// TripBooked is emitted when a participant takes a spot on a trip.
type TripBooked struct {
	TripID    string
	UserID    string
	SpotsLeft int
	At        time.Time
}

func (e TripBooked) Name() string          { return EventTripBooked }
func (e TripBooked) OccurredAt() time.Time { return e.At }

// TripParticipantRemoved is emitted when a booking is released.
type TripParticipantRemoved struct {
	TripID    string
	UserID    string
	SpotsLeft int
	At        time.Time
}

func (e TripParticipantRemoved) Name() string          { return EventTripParticipantRemoved }
func (e TripParticipantRemoved) OccurredAt() time.Time { return e.At }

// TripCancelled is emitted when a trip transitions to the cancelled state.
type TripCancelled struct {
	TripID string
	Reason string
	At     time.Time
}

func (e TripCancelled) Name() string          { return EventTripCancelled }
func (e TripCancelled) OccurredAt() time.Time { return e.At }

// TripCompleted is emitted when a published trip finishes.
type TripCompleted struct {
	TripID string
	At     time.Time
}

func (e TripCompleted) Name() string          { return EventTripCompleted }
func (e TripCompleted) OccurredAt() time.Time { return e.At }

// UserRegistered is emitted when a new account is created.
type UserRegistered struct {
	UserID   string
	Email    string
	Username string
	At       time.Time
}

func (e UserRegistered) Name() string          { return EventUserRegistered }
func (e UserRegistered) OccurredAt() time.Time { return e.At }

// ProfileChange is an old/new snapshot of a single profile field carried by
// UserProfileUpdated.
type ProfileChange struct {
	Field string
	Old   string
	New   string
}

// UserProfileUpdated is emitted by every profile mutation and carries
// old/new snapshots of the changed fields.
type UserProfileUpdated struct {
	UserID  string
	Changes []ProfileChange
	At      time.Time
}

func (e UserProfileUpdated) Name() string          { return EventUserProfileUpdated }
func (e UserProfileUpdated) OccurredAt() time.Time { return e.At }

// UserPasswordChanged is emitted when a user's password is replaced.
// It deliberately carries no credential material.
type UserPasswordChanged struct {
	UserID string
	At     time.Time
}

func (e UserPasswordChanged) Name() string          { return EventUserPasswordChanged }
func (e UserPasswordChanged) OccurredAt() time.Time { return e.At }

// UserActivated is emitted when an account is re-enabled.
type UserActivated struct {
	UserID string
	At     time.Time
}

func (e UserActivated) Name() string          { return EventUserActivated }
func (e UserActivated) OccurredAt() time.Time { return e.At }

// UserDeactivated is emitted when an account is disabled.
type UserDeactivated struct {
	UserID string
	At     time.Time
}

func (e UserDeactivated) Name() string          { return EventUserDeactivated }
func (e UserDeactivated) OccurredAt() time.Time { return e.At }
