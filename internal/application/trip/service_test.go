package trip

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockTripStore struct{ mock.Mock }

func (m *mockTripStore) FindByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(domain.Trip)
	return t, args.Error(1)
}
func (m *mockTripStore) FindAll(ctx context.Context) ([]domain.Trip, error) {
	args := m.Called(ctx)
	ts, _ := args.Get(0).([]domain.Trip)
	return ts, args.Error(1)
}
func (m *mockTripStore) Save(ctx context.Context, t domain.Trip) error {
	return m.Called(ctx, t).Error(0)
}
func (m *mockTripStore) Delete(ctx context.Context, id domain.TripID) error {
	return m.Called(ctx, id).Error(0)
}
func (m *mockTripStore) Exists(ctx context.Context, id domain.TripID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, key, r, contentType)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, key, ttl)
	return args.String(0), args.Error(1)
}
func (m *mockImageStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// --- helpers ---

func testTrip(t *testing.T, city string, max int) domain.Trip {
	t.Helper()
	loc, err := domain.NewLocation(city, "Portugal", nil)
	require.NoError(t, err)
	dates, err := domain.NewDateRange(
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 8, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	price, err := domain.NewPrice(499, "EUR")
	require.NoError(t, err)
	trip, err := domain.NewTrip(domain.NewTripParams{
		Title:           "Surf week",
		Description:     "Seven days on the coast",
		Location:        loc,
		Dates:           dates,
		Price:           price,
		MaxParticipants: max,
	})
	require.NoError(t, err)
	return trip
}

func validCreateRequest() CreateTripRequest {
	return CreateTripRequest{
		Title:           "Surf week",
		Description:     "Seven days on the coast",
		City:            "Ericeira",
		Country:         "Portugal",
		StartDate:       "2026-06-01",
		EndDate:         "2026-06-08",
		PriceAmount:     499,
		PriceCurrency:   "EUR",
		MaxParticipants: 8,
	}
}

// --- Create ---

func TestCreate_HappyPath_SavesAndPublishesEvent(t *testing.T) {
	repo := &mockTripStore{}
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Trip")).Return(nil)

	bus := event.NewBus()
	var created []string
	bus.Subscribe(domain.EventTripCreated, func(_ context.Context, ev domain.Event) {
		created = append(created, ev.(domain.TripCreated).TripID)
	})

	svc := NewService(ServiceDeps{TripRepo: repo, Bus: bus})
	trip, err := svc.Create(context.Background(), validCreateRequest())

	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusDraft, trip.Status())
	assert.Equal(t, 8, trip.AvailableSpots())
	assert.Equal(t, []string{trip.ID().String()}, created)
	repo.AssertExpectations(t)
}

func TestCreate_InvalidDates_NothingSaved(t *testing.T) {
	repo := &mockTripStore{}
	svc := NewService(ServiceDeps{TripRepo: repo})

	req := validCreateRequest()
	req.StartDate = "June 1st"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	req = validCreateRequest()
	req.EndDate = req.StartDate // start == end is rejected
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))

	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreate_SaveFailure_Propagates(t *testing.T) {
	repo := &mockTripStore{}
	repo.On("Save", mock.Anything, mock.Anything).Return(errors.New("table unavailable"))

	svc := NewService(ServiceDeps{TripRepo: repo})
	_, err := svc.Create(context.Background(), validCreateRequest())
	require.Error(t, err)
}

// --- Get / Delete / Exists ---

func TestGet_NotFound(t *testing.T) {
	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, mock.Anything).Return(domain.Trip{}, domain.ErrNotFound)

	svc := NewService(ServiceDeps{TripRepo: repo})
	_, err := svc.Get(context.Background(), testTrip(t, "Ericeira", 8).ID().String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestGet_InvalidID(t *testing.T) {
	svc := NewService(ServiceDeps{TripRepo: &mockTripStore{}})
	_, err := svc.Get(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestDeleteAndExists(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	repo := &mockTripStore{}
	repo.On("Delete", mock.Anything, trip.ID()).Return(nil)
	repo.On("Exists", mock.Anything, trip.ID()).Return(true, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	require.NoError(t, svc.Delete(context.Background(), trip.ID().String()))

	ok, err := svc.Exists(context.Background(), trip.ID().String())
	require.NoError(t, err)
	assert.True(t, ok)
	repo.AssertExpectations(t)
}

// --- Update ---

func TestUpdate_PartialFieldsKeepOthers(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Trip")).Return(nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	title := "Surf fortnight"
	amount := 899.0
	updated, err := svc.Update(context.Background(), trip.ID().String(), UpdateTripRequest{
		Title:       &title,
		PriceAmount: &amount,
	})

	require.NoError(t, err)
	assert.Equal(t, "Surf fortnight", updated.Title())
	assert.Equal(t, 899.0, updated.Price().Amount())
	assert.Equal(t, "EUR", updated.Price().Currency(), "currency untouched")
	assert.Equal(t, trip.Description(), updated.Description())
	assert.Greater(t, updated.Version(), trip.Version())
}

func TestUpdate_InvalidRating_NothingSaved(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	rating := 7.5
	_, err := svc.Update(context.Background(), trip.ID().String(), UpdateTripRequest{Rating: &rating})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- lifecycle transitions ---

func TestPublishThenComplete(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil).Once()
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Trip")).Return(nil)

	bus := event.NewBus()
	var names []string
	bus.SubscribeAll(func(_ context.Context, ev domain.Event) { names = append(names, ev.Name()) })

	svc := NewService(ServiceDeps{TripRepo: repo, Bus: bus})
	published, err := svc.Publish(context.Background(), trip.ID().String())
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusPublished, published.Status())

	repo.On("FindByID", mock.Anything, trip.ID()).Return(published, nil).Once()
	completed, err := svc.Complete(context.Background(), trip.ID().String())
	require.NoError(t, err)
	assert.Equal(t, domain.TripStatusCompleted, completed.Status())

	assert.Equal(t, []string{domain.EventTripPublished, domain.EventTripCompleted}, names)
}

func TestCancel_TerminalTripConflicts(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	cancelled, _, err := trip.Cancel("weather")
	require.NoError(t, err)

	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(cancelled, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	_, err = svc.Cancel(context.Background(), trip.ID().String(), "again")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- Book / CancelBooking ---

func TestBook_DecrementsSpotsAndPublishesEvent(t *testing.T) {
	trip := testTrip(t, "Ericeira", 2)
	userID := domain.NewUserID()

	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Trip")).Return(nil)

	bus := event.NewBus()
	var booked []domain.TripBooked
	bus.Subscribe(domain.EventTripBooked, func(_ context.Context, ev domain.Event) {
		booked = append(booked, ev.(domain.TripBooked))
	})

	svc := NewService(ServiceDeps{TripRepo: repo, Bus: bus})
	next, err := svc.Book(context.Background(), trip.ID().String(), userID.String())

	require.NoError(t, err)
	assert.Equal(t, 1, next.AvailableSpots())
	require.Len(t, booked, 1)
	assert.Equal(t, userID.String(), booked[0].UserID)
	assert.Equal(t, 1, booked[0].SpotsLeft)
}

func TestBook_FullTrip_Conflict(t *testing.T) {
	trip := testTrip(t, "Ericeira", 1)
	full, _, err := trip.AddParticipant(domain.NewUserID())
	require.NoError(t, err)

	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(full, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	_, err = svc.Book(context.Background(), trip.ID().String(), domain.NewUserID().String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCancelBooking_RestoresSpot(t *testing.T) {
	trip := testTrip(t, "Ericeira", 2)
	userID := domain.NewUserID()
	withBooking, _, err := trip.AddParticipant(userID)
	require.NoError(t, err)

	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(withBooking, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Trip")).Return(nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	next, err := svc.CancelBooking(context.Background(), trip.ID().String(), userID.String())
	require.NoError(t, err)
	assert.Equal(t, 2, next.AvailableSpots())
}

// --- Search / PopularDestinations ---

func TestSearch_DelegatesToFilter(t *testing.T) {
	lisbon := testTrip(t, "Lisbon", 8)
	porto := testTrip(t, "Porto", 8)

	repo := &mockTripStore{}
	repo.On("FindAll", mock.Anything).Return([]domain.Trip{lisbon, porto}, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	out, err := svc.Search(context.Background(), domain.TripFilter{Location: "porto"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].Equals(porto))
}

func TestPopularDestinations_RanksByTripCount(t *testing.T) {
	trips := []domain.Trip{
		testTrip(t, "Lisbon", 8),
		testTrip(t, "Lisbon", 8),
		testTrip(t, "Porto", 8),
	}
	repo := &mockTripStore{}
	repo.On("FindAll", mock.Anything).Return(trips, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	out, err := svc.PopularDestinations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Lisbon, Portugal", out[0].Format())
}

// --- AttachImage ---

func TestAttachImage_UploadsAndSavesURL(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	repo := &mockTripStore{}
	images := &mockImageStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("domain.Trip")).Return(nil)
	images.On("Upload", mock.Anything, "trips/"+trip.ID().String()+"/cover.jpg", mock.Anything, "image/jpeg").
		Return("https://cdn.example.com/cover.jpg", nil)

	svc := NewService(ServiceDeps{TripRepo: repo, ImageStore: images})
	next, err := svc.AttachImage(context.Background(), trip.ID().String(), "cover.jpg", "image/jpeg", strings.NewReader("bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", next.ImageURL())
	images.AssertExpectations(t)
}

func TestImageDownloadURL_PresignsStoredObjects(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	stored, err := trip.WithImageURL("s3://trip-images/trips/" + trip.ID().String() + "/cover.jpg")
	require.NoError(t, err)

	repo := &mockTripStore{}
	images := &mockImageStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(stored, nil)
	images.On("PresignedURL", mock.Anything, "trips/"+trip.ID().String()+"/cover.jpg", 15*time.Minute).
		Return("https://signed.example.com/cover.jpg", nil)

	svc := NewService(ServiceDeps{TripRepo: repo, ImageStore: images})
	url, err := svc.ImageDownloadURL(context.Background(), trip.ID().String(), 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example.com/cover.jpg", url)
}

func TestImageDownloadURL_ExternalURLPassesThrough(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	stored, err := trip.WithImageURL("https://images.example.com/surf.jpg")
	require.NoError(t, err)

	repo := &mockTripStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(stored, nil)

	svc := NewService(ServiceDeps{TripRepo: repo})
	url, err := svc.ImageDownloadURL(context.Background(), trip.ID().String(), time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/surf.jpg", url)
}

func TestDelete_RemovesStoredImage(t *testing.T) {
	trip := testTrip(t, "Ericeira", 8)
	stored, err := trip.WithImageURL("s3://trip-images/trips/" + trip.ID().String() + "/cover.jpg")
	require.NoError(t, err)

	repo := &mockTripStore{}
	images := &mockImageStore{}
	repo.On("FindByID", mock.Anything, trip.ID()).Return(stored, nil)
	repo.On("Delete", mock.Anything, trip.ID()).Return(nil)
	images.On("Delete", mock.Anything, "trips/"+trip.ID().String()+"/cover.jpg").Return(nil)

	svc := NewService(ServiceDeps{TripRepo: repo, ImageStore: images})
	require.NoError(t, svc.Delete(context.Background(), trip.ID().String()))
	images.AssertExpectations(t)
}

func TestAttachImage_NoStoreConfigured(t *testing.T) {
	svc := NewService(ServiceDeps{TripRepo: &mockTripStore{}})
	_, err := svc.AttachImage(context.Background(), "id", "cover.jpg", "image/jpeg", strings.NewReader("bytes"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}
