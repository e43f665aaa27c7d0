package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}

type mockTripStore struct{ mock.Mock }

func (m *mockTripStore) FindByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(domain.Trip)
	return t, args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) SendEmail(to, subject, body string) error {
	return m.Called(to, subject, body).Error(0)
}

type mockSMSSender struct{ mock.Mock }

func (m *mockSMSSender) SendSMS(ctx context.Context, phone, message string) error {
	return m.Called(ctx, phone, message).Error(0)
}

func fixtures(t *testing.T) (domain.User, domain.Trip) {
	t.Helper()
	email, err := domain.NewEmail("ana@example.com")
	require.NoError(t, err)
	password, err := domain.NewPassword("sunset2026")
	require.NoError(t, err)
	user, err := domain.NewUser("anasilva", email, password, "Ana", "Silva")
	require.NoError(t, err)

	loc, err := domain.NewLocation("Ericeira", "Portugal", nil)
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
		MaxParticipants: 8,
	})
	require.NoError(t, err)
	return user, trip
}

func publishBooking(bus *event.Bus, user domain.User, trip domain.Trip) {
	bus.Publish(context.Background(), domain.TripBooked{
		TripID:    trip.ID().String(),
		UserID:    user.ID().String(),
		SpotsLeft: 7,
		At:        time.Now(),
	})
}

func TestNotifier_EmailOnByDefault(t *testing.T) {
	user, trip := fixtures(t)
	us := &mockUserStore{}
	ts := &mockTripStore{}
	ml := &mockMailer{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	ts.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)
	ml.On("SendEmail", "ana@example.com", mock.Anything, mock.Anything).Return(nil)

	bus := event.NewBus()
	NewNotifier(NotifierDeps{UserRepo: us, TripRepo: ts, Mailer: ml}).Register(bus)
	publishBooking(bus, user, trip)

	ml.AssertExpectations(t)
}

func TestNotifier_EmailOptOutSkipsMailer(t *testing.T) {
	user, trip := fixtures(t)
	muted, _, err := user.UpdatePreferences(
		domain.DefaultPreferences().WithNotifications(domain.NotificationPreferences{}),
	)
	require.NoError(t, err)

	us := &mockUserStore{}
	ts := &mockTripStore{}
	ml := &mockMailer{}
	us.On("FindByID", mock.Anything, user.ID()).Return(muted, nil)
	ts.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)

	bus := event.NewBus()
	NewNotifier(NotifierDeps{UserRepo: us, TripRepo: ts, Mailer: ml}).Register(bus)
	publishBooking(bus, user, trip)

	ml.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifier_SMSRequiresOptInAndPhone(t *testing.T) {
	user, trip := fixtures(t)
	optedIn, _, err := user.UpdatePreferences(
		domain.DefaultPreferences().WithNotifications(domain.NotificationPreferences{SMS: true}),
	)
	require.NoError(t, err)

	// opted in but no phone on file: nothing sent
	us := &mockUserStore{}
	ts := &mockTripStore{}
	sms := &mockSMSSender{}
	us.On("FindByID", mock.Anything, user.ID()).Return(optedIn, nil)
	ts.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)

	bus := event.NewBus()
	NewNotifier(NotifierDeps{UserRepo: us, TripRepo: ts, SMSSender: sms}).Register(bus)
	publishBooking(bus, user, trip)
	sms.AssertNotCalled(t, "SendSMS", mock.Anything, mock.Anything, mock.Anything)

	// with a phone number the SMS goes out
	phone, err := domain.NewPhoneNumber("415-555-0123")
	require.NoError(t, err)
	withPhone, _, err := optedIn.UpdatePhoneNumber(phone)
	require.NoError(t, err)

	us2 := &mockUserStore{}
	sms2 := &mockSMSSender{}
	us2.On("FindByID", mock.Anything, user.ID()).Return(withPhone, nil)
	sms2.On("SendSMS", mock.Anything, phone.String(), mock.Anything).Return(nil)

	bus2 := event.NewBus()
	NewNotifier(NotifierDeps{UserRepo: us2, TripRepo: ts, SMSSender: sms2}).Register(bus2)
	publishBooking(bus2, user, trip)
	sms2.AssertExpectations(t)
}

func TestNotifier_DeliveryFailureIsSwallowed(t *testing.T) {
	user, trip := fixtures(t)
	us := &mockUserStore{}
	ts := &mockTripStore{}
	ml := &mockMailer{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	ts.On("FindByID", mock.Anything, trip.ID()).Return(trip, nil)
	ml.On("SendEmail", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	bus := event.NewBus()
	NewNotifier(NotifierDeps{UserRepo: us, TripRepo: ts, Mailer: ml}).Register(bus)

	// must not panic or surface the error to the publisher
	publishBooking(bus, user, trip)
	ml.AssertExpectations(t)
}
