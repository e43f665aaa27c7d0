package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(domain.User)
	return u, args.Error(1)
}
func (m *mockUserStore) Save(ctx context.Context, u domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func testUser(t *testing.T) domain.User {
	t.Helper()
	email, err := domain.NewEmail("ana@example.com")
	require.NoError(t, err)
	password, err := domain.NewPassword("sunset2026")
	require.NoError(t, err)
	u, err := domain.NewUser("anasilva", email, password, "Ana", "Silva")
	require.NoError(t, err)
	return u
}

func TestGet_NotFound(t *testing.T) {
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, mock.Anything).Return(domain.User{}, domain.ErrNotFound)

	svc := NewService(ServiceDeps{UserRepo: us})
	_, err := svc.Get(context.Background(), domain.NewUserID().String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdateProfile_SavesAndPublishesChanges(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	us.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil)

	bus := event.NewBus()
	var updates []domain.UserProfileUpdated
	bus.Subscribe(domain.EventUserProfileUpdated, func(_ context.Context, ev domain.Event) {
		updates = append(updates, ev.(domain.UserProfileUpdated))
	})

	svc := NewService(ServiceDeps{UserRepo: us, Bus: bus})
	next, err := svc.UpdateProfile(context.Background(), user.ID().String(), UpdateProfileRequest{
		FirstName: "Ana Rita",
		LastName:  "Silva",
	})

	require.NoError(t, err)
	assert.Equal(t, "Ana Rita Silva", next.FullName())
	require.Len(t, updates, 1)
	assert.Equal(t, "first_name", updates[0].Changes[0].Field)
	assert.Equal(t, "Ana", updates[0].Changes[0].Old)
	assert.Equal(t, "Ana Rita", updates[0].Changes[0].New)
}

func TestUpdateProfile_EmptyName_NothingSaved(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	_, err := svc.UpdateProfile(context.Background(), user.ID().String(), UpdateProfileRequest{FirstName: " "})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUpdateAddress(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	us.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	next, err := svc.UpdateAddress(context.Background(), user.ID().String(), UpdateAddressRequest{
		Street:     "1 Main St",
		City:       "Lisbon",
		State:      "Lisbon",
		Country:    "Portugal",
		PostalCode: "1000-001",
	})

	require.NoError(t, err)
	require.NotNil(t, next.Address())
	assert.Equal(t, "1 Main St, Lisbon, Lisbon 1000-001, Portugal", next.Address().Format())

	_, err = svc.UpdateAddress(context.Background(), user.ID().String(), UpdateAddressRequest{City: "Lisbon"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdatePhoneNumber(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	us.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	next, err := svc.UpdatePhoneNumber(context.Background(), user.ID().String(), "415-555-0123")
	require.NoError(t, err)
	require.NotNil(t, next.Phone())
	assert.Equal(t, "(415) 555-0123", next.Phone().Format())

	_, err = svc.UpdatePhoneNumber(context.Background(), user.ID().String(), "12345")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}

func TestUpdatePreferences_PartialMerge(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	us.On("Save", mock.Anything, mock.AnythingOfType("domain.User")).Return(nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	lang := "pt"
	next, err := svc.UpdatePreferences(context.Background(), user.ID().String(), UpdatePreferencesRequest{
		Notifications: &domain.NotificationPreferences{Email: true, SMS: true},
		Language:      &lang,
	})

	require.NoError(t, err)
	prefs := next.Preferences()
	assert.True(t, prefs.Notifications().SMS)
	assert.Equal(t, "pt", prefs.Language())
	assert.Equal(t, domain.DefaultPreferences().Timezone(), prefs.Timezone(), "untouched section keeps default")
}

func TestUpdatePreferences_InvalidTheme(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	_, err := svc.UpdatePreferences(context.Background(), user.ID().String(), UpdatePreferencesRequest{
		Theme: &domain.ThemePreferences{Mode: "neon"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	us.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChangePassword_HappyPath(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)
	us.On("Save", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.VerifyPassword("harbour2027")
	})).Return(nil)

	bus := event.NewBus()
	var names []string
	bus.SubscribeAll(func(_ context.Context, ev domain.Event) { names = append(names, ev.Name()) })

	svc := NewService(ServiceDeps{UserRepo: us, Bus: bus})
	err := svc.ChangePassword(context.Background(), user.ID().String(), ChangePasswordRequest{
		CurrentPassword: "sunset2026",
		NewPassword:     "harbour2027",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{domain.EventUserPasswordChanged}, names)
	us.AssertExpectations(t)
}

func TestChangePassword_WrongCurrent(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	err := svc.ChangePassword(context.Background(), user.ID().String(), ChangePasswordRequest{
		CurrentPassword: "wrong1234",
		NewPassword:     "harbour2027",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	us.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestChangePassword_WeakNewPassword(t *testing.T) {
	user := testUser(t)
	us := &mockUserStore{}
	us.On("FindByID", mock.Anything, user.ID()).Return(user, nil)

	svc := NewService(ServiceDeps{UserRepo: us})
	err := svc.ChangePassword(context.Background(), user.ID().String(), ChangePasswordRequest{
		CurrentPassword: "sunset2026",
		NewPassword:     "short1",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
}
