package trip

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
)

const dateLayout = "2006-01-02"

// CreateTripRequest carries the inputs for a new trip offering.
type CreateTripRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description" validate:"required"`
	ImageURL        string   `json:"image_url"`
	City            string   `json:"city" validate:"required"`
	Country         string   `json:"country" validate:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
	StartDate       string   `json:"start_date" validate:"required"` // YYYY-MM-DD
	EndDate         string   `json:"end_date" validate:"required"`   // YYYY-MM-DD
	PriceAmount     float64  `json:"price_amount"`
	PriceCurrency   string   `json:"price_currency" validate:"required"`
	MaxParticipants int      `json:"max_participants" validate:"required,min=1"`
	Tags            []string `json:"tags"`
}

// UpdateTripRequest carries partial updates; nil fields keep current values.
type UpdateTripRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	StartDate     *string  `json:"start_date"`
	EndDate       *string  `json:"end_date"`
	PriceAmount   *float64 `json:"price_amount"`
	PriceCurrency *string  `json:"price_currency"`
	Rating        *float64 `json:"rating"`
}

type Service interface {
	Create(ctx context.Context, req CreateTripRequest) (domain.Trip, error)
	Get(ctx context.Context, tripID string) (domain.Trip, error)
	List(ctx context.Context) ([]domain.Trip, error)
	Search(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error)
	Update(ctx context.Context, tripID string, req UpdateTripRequest) (domain.Trip, error)
	Delete(ctx context.Context, tripID string) error
	Exists(ctx context.Context, tripID string) (bool, error)
	Publish(ctx context.Context, tripID string) (domain.Trip, error)
	Cancel(ctx context.Context, tripID, reason string) (domain.Trip, error)
	Complete(ctx context.Context, tripID string) (domain.Trip, error)
	Book(ctx context.Context, tripID, userID string) (domain.Trip, error)
	CancelBooking(ctx context.Context, tripID, userID string) (domain.Trip, error)
	PopularDestinations(ctx context.Context, limit int) ([]domain.Location, error)
	AttachImage(ctx context.Context, tripID, filename, contentType string, r io.Reader) (domain.Trip, error)
	ImageDownloadURL(ctx context.Context, tripID string, ttl time.Duration) (string, error)
}

type tripStore interface {
	FindByID(ctx context.Context, id domain.TripID) (domain.Trip, error)
	FindAll(ctx context.Context) ([]domain.Trip, error)
	Save(ctx context.Context, t domain.Trip) error
	Delete(ctx context.Context, id domain.TripID) error
	Exists(ctx context.Context, id domain.TripID) (bool, error)
}

type imageStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo   tripStore
	images imageStore
	bus    *event.Bus
}

type ServiceDeps struct {
	TripRepo   tripStore
	ImageStore imageStore
	Bus        *event.Bus
}

func NewService(deps ServiceDeps) Service {
	bus := deps.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	return &service{repo: deps.TripRepo, images: deps.ImageStore, bus: bus}
}

func (s *service) Create(ctx context.Context, req CreateTripRequest) (domain.Trip, error) {
	var coords *domain.Coordinates
	if req.Latitude != nil && req.Longitude != nil {
		coords = &domain.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}
	loc, err := domain.NewLocation(req.City, req.Country, coords)
	if err != nil {
		return domain.Trip{}, err
	}
	dates, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		return domain.Trip{}, err
	}
	price, err := domain.NewPrice(req.PriceAmount, req.PriceCurrency)
	if err != nil {
		return domain.Trip{}, err
	}
	t, err := domain.NewTrip(domain.NewTripParams{
		Title:           req.Title,
		Description:     req.Description,
		ImageURL:        req.ImageURL,
		Location:        loc,
		Dates:           dates,
		Price:           price,
		MaxParticipants: req.MaxParticipants,
		Tags:            req.Tags,
	})
	if err != nil {
		return domain.Trip{}, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return domain.Trip{}, err
	}
	s.bus.Publish(ctx, domain.TripCreated{TripID: t.ID().String(), Title: t.Title(), At: t.CreatedAt()})
	return t, nil
}

func (s *service) Get(ctx context.Context, tripID string) (domain.Trip, error) {
	return s.find(ctx, tripID)
}

func (s *service) List(ctx context.Context) ([]domain.Trip, error) {
	return s.repo.FindAll(ctx)
}

// Search loads the full trip set and applies the filter in memory. Linear in
// the number of trips, which is fine at the scale this service targets.
func (s *service) Search(ctx context.Context, filter domain.TripFilter) ([]domain.Trip, error) {
	trips, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(trips), nil
}

func (s *service) Update(ctx context.Context, tripID string, req UpdateTripRequest) (domain.Trip, error) {
	t, err := s.find(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}

	title := t.Title()
	if req.Title != nil {
		title = *req.Title
	}
	description := t.Description()
	if req.Description != nil {
		description = *req.Description
	}

	price := t.Price()
	if req.PriceAmount != nil || req.PriceCurrency != nil {
		amount := price.Amount()
		if req.PriceAmount != nil {
			amount = *req.PriceAmount
		}
		code := price.Currency()
		if req.PriceCurrency != nil {
			code = *req.PriceCurrency
		}
		if price, err = domain.NewPrice(amount, code); err != nil {
			return domain.Trip{}, err
		}
	}

	dates := t.Dates()
	if req.StartDate != nil || req.EndDate != nil {
		start := dates.Start().Format(dateLayout)
		if req.StartDate != nil {
			start = *req.StartDate
		}
		end := dates.End().Format(dateLayout)
		if req.EndDate != nil {
			end = *req.EndDate
		}
		if dates, err = parseDates(start, end); err != nil {
			return domain.Trip{}, err
		}
	}

	if t, err = t.WithDetails(title, description, price, dates); err != nil {
		return domain.Trip{}, err
	}
	if req.Rating != nil {
		if t, err = t.WithRating(*req.Rating); err != nil {
			return domain.Trip{}, err
		}
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}

// Delete removes the trip and, best effort, its stored image object.
func (s *service) Delete(ctx context.Context, tripID string) error {
	id, err := domain.ParseTripID(tripID)
	if err != nil {
		return err
	}
	if s.images != nil {
		if t, err := s.repo.FindByID(ctx, id); err == nil {
			if key, ok := objectKey(t.ImageURL()); ok {
				_ = s.images.Delete(ctx, key)
			}
		}
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) Exists(ctx context.Context, tripID string) (bool, error) {
	id, err := domain.ParseTripID(tripID)
	if err != nil {
		return false, err
	}
	return s.repo.Exists(ctx, id)
}

func (s *service) Publish(ctx context.Context, tripID string) (domain.Trip, error) {
	return s.mutate(ctx, tripID, domain.Trip.Publish)
}

func (s *service) Cancel(ctx context.Context, tripID, reason string) (domain.Trip, error) {
	return s.mutate(ctx, tripID, func(t domain.Trip) (domain.Trip, domain.Event, error) {
		return t.Cancel(reason)
	})
}

func (s *service) Complete(ctx context.Context, tripID string) (domain.Trip, error) {
	return s.mutate(ctx, tripID, domain.Trip.Complete)
}

// Book runs the read-modify-write booking sequence. There is no isolation
// between concurrent bookings of the same trip; the system assumes a single
// writer per aggregate.
func (s *service) Book(ctx context.Context, tripID, userID string) (domain.Trip, error) {
	uid, err := domain.ParseUserID(userID)
	if err != nil {
		return domain.Trip{}, err
	}
	return s.mutate(ctx, tripID, func(t domain.Trip) (domain.Trip, domain.Event, error) {
		return t.AddParticipant(uid)
	})
}

func (s *service) CancelBooking(ctx context.Context, tripID, userID string) (domain.Trip, error) {
	uid, err := domain.ParseUserID(userID)
	if err != nil {
		return domain.Trip{}, err
	}
	return s.mutate(ctx, tripID, func(t domain.Trip) (domain.Trip, domain.Event, error) {
		return t.RemoveParticipant(uid)
	})
}

// PopularDestinations ranks locations by how many trips target them.
func (s *service) PopularDestinations(ctx context.Context, limit int) ([]domain.Location, error) {
	trips, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	locations := make(map[string]domain.Location)
	for _, t := range trips {
		key := t.Location().Format()
		counts[key]++
		locations[key] = t.Location()
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if limit > 0 && limit < len(keys) {
		keys = keys[:limit]
	}
	out := make([]domain.Location, len(keys))
	for i, k := range keys {
		out[i] = locations[k]
	}
	return out, nil
}

func (s *service) AttachImage(ctx context.Context, tripID, filename, contentType string, r io.Reader) (domain.Trip, error) {
	if s.images == nil {
		return domain.Trip{}, fmt.Errorf("image storage not configured: %w", domain.ErrBadRequest)
	}
	t, err := s.find(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	key := path.Join("trips", t.ID().String(), filename)
	url, err := s.images.Upload(ctx, key, r, contentType)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("upload trip image: %w", err)
	}
	if t, err = t.WithImageURL(url); err != nil {
		return domain.Trip{}, err
	}
	if err := s.repo.Save(ctx, t); err != nil {
		return domain.Trip{}, err
	}
	return t, nil
}

// ImageDownloadURL resolves the trip's image to something a client can GET.
// Images held in object storage get a time-limited presigned URL; externally
// hosted images pass through unchanged.
func (s *service) ImageDownloadURL(ctx context.Context, tripID string, ttl time.Duration) (string, error) {
	t, err := s.find(ctx, tripID)
	if err != nil {
		return "", err
	}
	if t.ImageURL() == "" {
		return "", fmt.Errorf("trip has no image: %w", domain.ErrNotFound)
	}
	key, ok := objectKey(t.ImageURL())
	if !ok {
		return t.ImageURL(), nil
	}
	if s.images == nil {
		return "", fmt.Errorf("image storage not configured: %w", domain.ErrBadRequest)
	}
	url, err := s.images.PresignedURL(ctx, key, ttl)
	if err != nil {
		return "", fmt.Errorf("presign trip image: %w", err)
	}
	return url, nil
}

// objectKey extracts the bucket-relative key from an s3://bucket/key URL.
func objectKey(imageURL string) (string, bool) {
	u, err := url.Parse(imageURL)
	if err != nil || u.Scheme != "s3" {
		return "", false
	}
	return strings.TrimPrefix(u.Path, "/"), true
}

func (s *service) find(ctx context.Context, tripID string) (domain.Trip, error) {
	id, err := domain.ParseTripID(tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("trip not found: %w", err)
	}
	return t, nil
}

func (s *service) mutate(ctx context.Context, tripID string, op func(domain.Trip) (domain.Trip, domain.Event, error)) (domain.Trip, error) {
	t, err := s.find(ctx, tripID)
	if err != nil {
		return domain.Trip{}, err
	}
	next, ev, err := op(t)
	if err != nil {
		return domain.Trip{}, err
	}
	if err := s.repo.Save(ctx, next); err != nil {
		return domain.Trip{}, err
	}
	s.bus.Publish(ctx, ev)
	return next, nil
}

func parseDates(start, end string) (domain.DateRange, error) {
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("start date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("end date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return domain.NewDateRange(startDate, endDate)
}
