package profile

import (
	"context"
	"fmt"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
)

// UpdateProfileRequest replaces the display name.
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
}

// UpdateAddressRequest replaces the postal address.
type UpdateAddressRequest struct {
	Street     string `json:"street" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	Country    string `json:"country" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// UpdatePreferencesRequest carries partial preference updates; nil sections
// keep their current values.
type UpdatePreferencesRequest struct {
	Notifications *domain.NotificationPreferences `json:"notifications"`
	Theme         *domain.ThemePreferences        `json:"theme"`
	Language      *string                         `json:"language"`
	Timezone      *string                         `json:"timezone"`
}

// ChangePasswordRequest rotates the credential after verifying the current one.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type Service interface {
	Get(ctx context.Context, userID string) (domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (domain.User, error)
	UpdateAddress(ctx context.Context, userID string, req UpdateAddressRequest) (domain.User, error)
	UpdatePhoneNumber(ctx context.Context, userID, phone string) (domain.User, error)
	UpdatePreferences(ctx context.Context, userID string, req UpdatePreferencesRequest) (domain.User, error)
	ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error
}

type userStore interface {
	FindByID(ctx context.Context, id domain.UserID) (domain.User, error)
	Save(ctx context.Context, u domain.User) error
}

type service struct {
	users userStore
	bus   *event.Bus
}

type ServiceDeps struct {
	UserRepo userStore
	Bus      *event.Bus
}

func NewService(deps ServiceDeps) Service {
	bus := deps.Bus
	if bus == nil {
		bus = event.NewBus()
	}
	return &service{users: deps.UserRepo, bus: bus}
}

func (s *service) Get(ctx context.Context, userID string) (domain.User, error) {
	return s.find(ctx, userID)
}

func (s *service) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (domain.User, error) {
	return s.mutate(ctx, userID, func(u domain.User) (domain.User, domain.Event, error) {
		return u.UpdateProfile(req.FirstName, req.LastName)
	})
}

func (s *service) UpdateAddress(ctx context.Context, userID string, req UpdateAddressRequest) (domain.User, error) {
	addr, err := domain.NewAddress(req.Street, req.City, req.State, req.Country, req.PostalCode)
	if err != nil {
		return domain.User{}, err
	}
	return s.mutate(ctx, userID, func(u domain.User) (domain.User, domain.Event, error) {
		return u.UpdateAddress(addr)
	})
}

func (s *service) UpdatePhoneNumber(ctx context.Context, userID, phone string) (domain.User, error) {
	number, err := domain.NewPhoneNumber(phone)
	if err != nil {
		return domain.User{}, err
	}
	return s.mutate(ctx, userID, func(u domain.User) (domain.User, domain.Event, error) {
		return u.UpdatePhoneNumber(number)
	})
}

// UpdatePreferences merges the request into the user's current preferences.
// Sections left nil keep their stored values.
func (s *service) UpdatePreferences(ctx context.Context, userID string, req UpdatePreferencesRequest) (domain.User, error) {
	return s.mutate(ctx, userID, func(u domain.User) (domain.User, domain.Event, error) {
		prefs := u.Preferences()
		var err error
		if req.Notifications != nil {
			prefs = prefs.WithNotifications(*req.Notifications)
		}
		if req.Theme != nil {
			if prefs, err = prefs.WithTheme(*req.Theme); err != nil {
				return domain.User{}, nil, err
			}
		}
		if req.Language != nil {
			if prefs, err = prefs.WithLanguage(*req.Language); err != nil {
				return domain.User{}, nil, err
			}
		}
		if req.Timezone != nil {
			if prefs, err = prefs.WithTimezone(*req.Timezone); err != nil {
				return domain.User{}, nil, err
			}
		}
		return u.UpdatePreferences(prefs)
	})
}

// ChangePassword verifies the current credential before installing the new
// one. A wrong current password is an authorization failure, not a validation
// failure.
func (s *service) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	u, err := s.find(ctx, userID)
	if err != nil {
		return err
	}
	if !u.VerifyPassword(req.CurrentPassword) {
		return fmt.Errorf("current password is incorrect: %w", domain.ErrUnauthorized)
	}
	password, err := domain.NewPassword(req.NewPassword)
	if err != nil {
		return err
	}
	next, ev, err := u.ChangePassword(password)
	if err != nil {
		return err
	}
	if err := s.users.Save(ctx, next); err != nil {
		return err
	}
	s.bus.Publish(ctx, ev)
	return nil
}

func (s *service) find(ctx context.Context, userID string) (domain.User, error) {
	id, err := domain.ParseUserID(userID)
	if err != nil {
		return domain.User{}, err
	}
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("user not found: %w", domain.ErrNotFound)
	}
	return u, nil
}

func (s *service) mutate(ctx context.Context, userID string, op func(domain.User) (domain.User, domain.Event, error)) (domain.User, error) {
	u, err := s.find(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}
	next, ev, err := op(u)
	if err != nil {
		return domain.User{}, err
	}
	if err := s.users.Save(ctx, next); err != nil {
		return domain.User{}, err
	}
	s.bus.Publish(ctx, ev)
	return next, nil
}
