package domain

import (
	"fmt"
	"strings"
	"time"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusPublished TripStatus = "published"
	TripStatusCancelled TripStatus = "cancelled"
	TripStatusCompleted TripStatus = "completed"
)

// Terminal reports whether the status admits no further transitions.
func (s TripStatus) Terminal() bool {
	return s == TripStatusCancelled || s == TripStatusCompleted
}

// Trip is the aggregate root for a bookable travel offering. Instances are
// immutable; every mutation returns a new Trip plus the emitted domain event.
type Trip struct {
	id                  TripID
	title               string
	description         string
	imageURL            string
	location            Location
	dates               DateRange
	price               Price
	maxParticipants     int
	currentParticipants int
	rating              float64
	tags                []string
	status              TripStatus
	cancelReason        string
	createdAt           time.Time
	updatedAt           time.Time
	version             int64
}

// NewTripParams carries the inputs to NewTrip.
type NewTripParams struct {
	Title           string
	Description     string
	ImageURL        string
	Location        Location
	Dates           DateRange
	Price           Price
	MaxParticipants int
	Rating          float64
	Tags            []string
}

// NewTrip validates and builds a draft trip with zero participants.
func NewTrip(p NewTripParams) (Trip, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return Trip{}, fmt.Errorf("trip title is required: %w", ErrBadRequest)
	}
	if strings.TrimSpace(p.Description) == "" {
		return Trip{}, fmt.Errorf("trip description is required: %w", ErrBadRequest)
	}
	if p.MaxParticipants < 1 {
		return Trip{}, fmt.Errorf("max participants must be at least 1: %w", ErrBadRequest)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return Trip{}, fmt.Errorf("rating must be between 0 and 5: %w", ErrBadRequest)
	}
	now := time.Now().UTC()
	return Trip{
		id:              NewTripID(),
		title:           title,
		description:     strings.TrimSpace(p.Description),
		imageURL:        p.ImageURL,
		location:        p.Location,
		dates:           p.Dates,
		price:           p.Price,
		maxParticipants: p.MaxParticipants,
		rating:          p.Rating,
		tags:            append([]string(nil), p.Tags...),
		status:          TripStatusDraft,
		createdAt:       now,
		updatedAt:       now,
		version:         1,
	}, nil
}

func (t Trip) ID() TripID               { return t.id }
func (t Trip) Title() string            { return t.title }
func (t Trip) Description() string      { return t.description }
func (t Trip) ImageURL() string         { return t.imageURL }
func (t Trip) Location() Location       { return t.location }
func (t Trip) Dates() DateRange         { return t.dates }
func (t Trip) Price() Price             { return t.price }
func (t Trip) MaxParticipants() int     { return t.maxParticipants }
func (t Trip) CurrentParticipants() int { return t.currentParticipants }
func (t Trip) Rating() float64          { return t.rating }
func (t Trip) Status() TripStatus       { return t.status }
func (t Trip) CancelReason() string     { return t.cancelReason }
func (t Trip) CreatedAt() time.Time     { return t.createdAt }
func (t Trip) UpdatedAt() time.Time     { return t.updatedAt }
func (t Trip) Version() int64           { return t.version }

// Tags returns a copy of the tag list.
func (t Trip) Tags() []string { return append([]string(nil), t.tags...) }

// HasAvailableSpots reports whether the trip can take another participant.
func (t Trip) HasAvailableSpots() bool {
	return t.currentParticipants < t.maxParticipants
}

// AvailableSpots returns the number of unbooked spots.
func (t Trip) AvailableSpots() int {
	return t.maxParticipants - t.currentParticipants
}

// Equals compares trips by identity.
func (t Trip) Equals(other Trip) bool { return t.id.Equals(other.id) }

// Publish moves a draft trip into the bookable published state.
func (t Trip) Publish() (Trip, Event, error) {
	if t.status != TripStatusDraft {
		return Trip{}, nil, fmt.Errorf("only draft trips can be published (status %s): %w", t.status, ErrConflict)
	}
	t.status = TripStatusPublished
	t.touch()
	return t, TripPublished{TripID: t.id.String(), At: t.updatedAt}, nil
}

// AddParticipant books one spot for the given user. Booking is allowed while
// the trip is in a non-terminal state and has capacity left.
func (t Trip) AddParticipant(userID UserID) (Trip, Event, error) {
	if t.status.Terminal() {
		return Trip{}, nil, fmt.Errorf("cannot book a %s trip: %w", t.status, ErrConflict)
	}
	if !t.HasAvailableSpots() {
		return Trip{}, nil, fmt.Errorf("trip is already full: %w", ErrConflict)
	}
	t.currentParticipants++
	t.touch()
	ev := TripBooked{
		TripID:    t.id.String(),
		UserID:    userID.String(),
		SpotsLeft: t.AvailableSpots(),
		At:        t.updatedAt,
	}
	return t, ev, nil
}

// RemoveParticipant releases one booked spot.
func (t Trip) RemoveParticipant(userID UserID) (Trip, Event, error) {
	if t.currentParticipants == 0 {
		return Trip{}, nil, fmt.Errorf("trip has no participants to remove: %w", ErrConflict)
	}
	t.currentParticipants--
	t.touch()
	ev := TripParticipantRemoved{
		TripID:    t.id.String(),
		UserID:    userID.String(),
		SpotsLeft: t.AvailableSpots(),
		At:        t.updatedAt,
	}
	return t, ev, nil
}

// Cancel transitions the trip to the terminal cancelled state.
func (t Trip) Cancel(reason string) (Trip, Event, error) {
	if t.status.Terminal() {
		return Trip{}, nil, fmt.Errorf("trip is already %s: %w", t.status, ErrConflict)
	}
	t.status = TripStatusCancelled
	t.cancelReason = strings.TrimSpace(reason)
	t.touch()
	return t, TripCancelled{TripID: t.id.String(), Reason: t.cancelReason, At: t.updatedAt}, nil
}

// Complete transitions a published trip to the terminal completed state.
func (t Trip) Complete() (Trip, Event, error) {
	if t.status != TripStatusPublished {
		return Trip{}, nil, fmt.Errorf("only published trips can be completed (status %s): %w", t.status, ErrConflict)
	}
	t.status = TripStatusCompleted
	t.touch()
	return t, TripCompleted{TripID: t.id.String(), At: t.updatedAt}, nil
}

// WithDetails replaces title, description, price and dates, re-running the
// construction invariants.
func (t Trip) WithDetails(title, description string, price Price, dates DateRange) (Trip, error) {
	if t.status.Terminal() {
		return Trip{}, fmt.Errorf("cannot update a %s trip: %w", t.status, ErrConflict)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return Trip{}, fmt.Errorf("trip title is required: %w", ErrBadRequest)
	}
	if strings.TrimSpace(description) == "" {
		return Trip{}, fmt.Errorf("trip description is required: %w", ErrBadRequest)
	}
	t.title = title
	t.description = strings.TrimSpace(description)
	t.price = price
	t.dates = dates
	t.touch()
	return t, nil
}

// WithImageURL replaces the trip image reference.
func (t Trip) WithImageURL(url string) (Trip, error) {
	if strings.TrimSpace(url) == "" {
		return Trip{}, fmt.Errorf("image url is required: %w", ErrBadRequest)
	}
	t.imageURL = url
	t.touch()
	return t, nil
}

// WithRating replaces the aggregate rating.
func (t Trip) WithRating(rating float64) (Trip, error) {
	if rating < 0 || rating > 5 {
		return Trip{}, fmt.Errorf("rating must be between 0 and 5: %w", ErrBadRequest)
	}
	t.rating = rating
	t.touch()
	return t, nil
}

func (t *Trip) touch() {
	t.updatedAt = time.Now().UTC()
	t.version++
}

// TripSnapshot is the flat persistence form of a Trip. Adapters marshal it
// to JSON or DynamoDB attributes; rehydration through TripFromSnapshot
// re-validates every invariant so no invalid aggregate can enter the system.
type TripSnapshot struct {
	ID                  string    `json:"id" dynamodbav:"trip_id"`
	Title               string    `json:"title" dynamodbav:"title"`
	Description         string    `json:"description" dynamodbav:"description"`
	ImageURL            string    `json:"image_url" dynamodbav:"image_url"`
	City                string    `json:"city" dynamodbav:"city"`
	Country             string    `json:"country" dynamodbav:"country"`
	Coordinates         *Coordinates `json:"coordinates,omitempty" dynamodbav:"coordinates"`
	StartDate           time.Time `json:"start_date" dynamodbav:"start_date"`
	EndDate             time.Time `json:"end_date" dynamodbav:"end_date"`
	PriceAmount         float64   `json:"price_amount" dynamodbav:"price_amount"`
	PriceCurrency       string    `json:"price_currency" dynamodbav:"price_currency"`
	MaxParticipants     int       `json:"max_participants" dynamodbav:"max_participants"`
	CurrentParticipants int       `json:"current_participants" dynamodbav:"current_participants"`
	Rating              float64   `json:"rating" dynamodbav:"rating"`
	Tags                []string  `json:"tags,omitempty" dynamodbav:"tags"`
	Status              string    `json:"status" dynamodbav:"status"`
	CancelReason        string    `json:"cancel_reason,omitempty" dynamodbav:"cancel_reason"`
	CreatedAt           time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" dynamodbav:"updated_at"`
	Version             int64     `json:"version" dynamodbav:"version"`
}

// Snapshot exports the trip's persistence form.
func (t Trip) Snapshot() TripSnapshot {
	return TripSnapshot{
		ID:                  t.id.String(),
		Title:               t.title,
		Description:         t.description,
		ImageURL:            t.imageURL,
		City:                t.location.City(),
		Country:             t.location.Country(),
		Coordinates:         t.location.Coordinates(),
		StartDate:           t.dates.Start(),
		EndDate:             t.dates.End(),
		PriceAmount:         t.price.Amount(),
		PriceCurrency:       t.price.Currency(),
		MaxParticipants:     t.maxParticipants,
		CurrentParticipants: t.currentParticipants,
		Rating:              t.rating,
		Tags:                t.Tags(),
		Status:              string(t.status),
		CancelReason:        t.cancelReason,
		CreatedAt:           t.createdAt,
		UpdatedAt:           t.updatedAt,
		Version:             t.version,
	}
}

// TripFromSnapshot rehydrates a Trip, re-validating all invariants.
func TripFromSnapshot(s TripSnapshot) (Trip, error) {
	id, err := ParseTripID(s.ID)
	if err != nil {
		return Trip{}, err
	}
	loc, err := NewLocation(s.City, s.Country, s.Coordinates)
	if err != nil {
		return Trip{}, err
	}
	dates, err := NewDateRange(s.StartDate, s.EndDate)
	if err != nil {
		return Trip{}, err
	}
	price, err := NewPrice(s.PriceAmount, s.PriceCurrency)
	if err != nil {
		return Trip{}, err
	}
	if s.MaxParticipants < 1 {
		return Trip{}, fmt.Errorf("max participants must be at least 1: %w", ErrBadRequest)
	}
	if s.CurrentParticipants < 0 || s.CurrentParticipants > s.MaxParticipants {
		return Trip{}, fmt.Errorf("current participants out of range: %w", ErrBadRequest)
	}
	if s.Rating < 0 || s.Rating > 5 {
		return Trip{}, fmt.Errorf("rating must be between 0 and 5: %w", ErrBadRequest)
	}
	status := TripStatus(s.Status)
	switch status {
	case TripStatusDraft, TripStatusPublished, TripStatusCancelled, TripStatusCompleted:
	default:
		return Trip{}, fmt.Errorf("unknown trip status %q: %w", s.Status, ErrBadRequest)
	}
	return Trip{
		id:                  id,
		title:               s.Title,
		description:         s.Description,
		imageURL:            s.ImageURL,
		location:            loc,
		dates:               dates,
		price:               price,
		maxParticipants:     s.MaxParticipants,
		currentParticipants: s.CurrentParticipants,
		rating:              s.Rating,
		tags:                append([]string(nil), s.Tags...),
		status:              status,
		cancelReason:        s.CancelReason,
		createdAt:           s.CreatedAt,
		updatedAt:           s.UpdatedAt,
		version:             s.Version,
	}, nil
}
