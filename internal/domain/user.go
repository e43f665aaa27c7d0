package domain

import (
	"fmt"
	"strings"
	"time"
)

// Role names.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the aggregate root for identity, credentials and profile state.
// Instances are immutable; every mutation returns a new User plus the
// emitted domain event. Email and username uniqueness is enforced by the
// auth service through the repository, not here.
type User struct {
	id          UserID
	username    string
	email       Email
	password    Password
	firstName   string
	lastName    string
	role        string
	active      bool
	address     *Address
	phone       *PhoneNumber
	preferences *UserPreferences
	createdAt   time.Time
	updatedAt   time.Time
	version     int64
}

// NewUser validates and builds an active user with the default role.
func NewUser(username string, email Email, password Password, firstName, lastName string) (User, error) {
	username = strings.TrimSpace(username)
	if len(username) < 3 {
		return User{}, fmt.Errorf("username must be at least 3 characters long: %w", ErrBadRequest)
	}
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return User{}, fmt.Errorf("first and last name are required: %w", ErrBadRequest)
	}
	if email.IsZero() {
		return User{}, fmt.Errorf("email is required: %w", ErrBadRequest)
	}
	now := time.Now().UTC()
	return User{
		id:        NewUserID(),
		username:  username,
		email:     email,
		password:  password,
		firstName: firstName,
		lastName:  lastName,
		role:      RoleUser,
		active:    true,
		createdAt: now,
		updatedAt: now,
		version:   1,
	}, nil
}

func (u User) ID() UserID           { return u.id }
func (u User) Username() string     { return u.username }
func (u User) Email() Email         { return u.email }
func (u User) FirstName() string    { return u.firstName }
func (u User) LastName() string     { return u.lastName }
func (u User) FullName() string     { return u.firstName + " " + u.lastName }
func (u User) Role() string         { return u.role }
func (u User) IsActive() bool       { return u.active }
func (u User) CreatedAt() time.Time { return u.createdAt }
func (u User) UpdatedAt() time.Time { return u.updatedAt }
func (u User) Version() int64       { return u.version }

// Address returns a copy of the optional address, or nil.
func (u User) Address() *Address {
	if u.address == nil {
		return nil
	}
	a := *u.address
	return &a
}

// Phone returns a copy of the optional phone number, or nil.
func (u User) Phone() *PhoneNumber {
	if u.phone == nil {
		return nil
	}
	p := *u.phone
	return &p
}

// Preferences returns the user's preferences, falling back to the defaults
// when none were ever set.
func (u User) Preferences() UserPreferences {
	if u.preferences == nil {
		return DefaultPreferences()
	}
	return *u.preferences
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func (u User) VerifyPassword(plain string) bool {
	return u.password.Verify(plain)
}

// Equals compares users by identity.
func (u User) Equals(other User) bool { return u.id.Equals(other.id) }

// UpdateProfile replaces the first and last name.
func (u User) UpdateProfile(firstName, lastName string) (User, Event, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" || lastName == "" {
		return User{}, nil, fmt.Errorf("first and last name are required: %w", ErrBadRequest)
	}
	ev := UserProfileUpdated{
		UserID: u.id.String(),
		Changes: []ProfileChange{
			{Field: "first_name", Old: u.firstName, New: firstName},
			{Field: "last_name", Old: u.lastName, New: lastName},
		},
		At: time.Now().UTC(),
	}
	u.firstName = firstName
	u.lastName = lastName
	u.touch()
	return u, ev, nil
}

// UpdateAddress replaces the postal address.
func (u User) UpdateAddress(addr Address) (User, Event, error) {
	old := ""
	if u.address != nil {
		old = u.address.Format()
	}
	ev := UserProfileUpdated{
		UserID:  u.id.String(),
		Changes: []ProfileChange{{Field: "address", Old: old, New: addr.Format()}},
		At:      time.Now().UTC(),
	}
	u.address = &addr
	u.touch()
	return u, ev, nil
}

// UpdatePhoneNumber replaces the phone number.
func (u User) UpdatePhoneNumber(phone PhoneNumber) (User, Event, error) {
	old := ""
	if u.phone != nil {
		old = u.phone.String()
	}
	ev := UserProfileUpdated{
		UserID:  u.id.String(),
		Changes: []ProfileChange{{Field: "phone_number", Old: old, New: phone.String()}},
		At:      time.Now().UTC(),
	}
	u.phone = &phone
	u.touch()
	return u, ev, nil
}

// UpdatePreferences replaces the preference set.
func (u User) UpdatePreferences(prefs UserPreferences) (User, Event, error) {
	ev := UserProfileUpdated{
		UserID:  u.id.String(),
		Changes: []ProfileChange{{Field: "preferences", Old: "", New: prefs.Language() + "/" + prefs.Timezone()}},
		At:      time.Now().UTC(),
	}
	u.preferences = &prefs
	u.touch()
	return u, ev, nil
}

// ChangePassword replaces the credential.
func (u User) ChangePassword(password Password) (User, Event, error) {
	u.password = password
	u.touch()
	return u, UserPasswordChanged{UserID: u.id.String(), At: u.updatedAt}, nil
}

// Deactivate disables the account; login is rejected while inactive.
func (u User) Deactivate() (User, Event, error) {
	if !u.active {
		return User{}, nil, fmt.Errorf("account is already deactivated: %w", ErrConflict)
	}
	u.active = false
	u.touch()
	return u, UserDeactivated{UserID: u.id.String(), At: u.updatedAt}, nil
}

// Activate re-enables a deactivated account.
func (u User) Activate() (User, Event, error) {
	if u.active {
		return User{}, nil, fmt.Errorf("account is already active: %w", ErrConflict)
	}
	u.active = true
	u.touch()
	return u, UserActivated{UserID: u.id.String(), At: u.updatedAt}, nil
}

func (u *User) touch() {
	u.updatedAt = time.Now().UTC()
	u.version++
}

// UserSnapshot is the flat persistence form of a User. The password travels
// as its bcrypt hash only.
type UserSnapshot struct {
	ID           string           `json:"id" dynamodbav:"user_id"`
	Username     string           `json:"username" dynamodbav:"username"`
	Email        string           `json:"email" dynamodbav:"email"`
	PasswordHash string           `json:"password_hash" dynamodbav:"password_hash"`
	FirstName    string           `json:"first_name" dynamodbav:"first_name"`
	LastName     string           `json:"last_name" dynamodbav:"last_name"`
	Role         string           `json:"role" dynamodbav:"role"`
	Active       bool             `json:"active" dynamodbav:"active"`
	Address      *AddressRecord   `json:"address,omitempty" dynamodbav:"address"`
	Phone        string           `json:"phone,omitempty" dynamodbav:"phone"`
	Preferences  *PreferencesRecord `json:"preferences,omitempty" dynamodbav:"preferences"`
	CreatedAt    time.Time        `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at" dynamodbav:"updated_at"`
	Version      int64            `json:"version" dynamodbav:"version"`
}

// AddressRecord is the persistence form of an Address.
type AddressRecord struct {
	Street     string `json:"street" dynamodbav:"street"`
	City       string `json:"city" dynamodbav:"city"`
	State      string `json:"state" dynamodbav:"state"`
	Country    string `json:"country" dynamodbav:"country"`
	PostalCode string `json:"postal_code" dynamodbav:"postal_code"`
}

// PreferencesRecord is the persistence form of UserPreferences.
type PreferencesRecord struct {
	Notifications NotificationPreferences `json:"notifications" dynamodbav:"notifications"`
	Theme         ThemePreferences        `json:"theme" dynamodbav:"theme"`
	Language      string                  `json:"language" dynamodbav:"language"`
	Timezone      string                  `json:"timezone" dynamodbav:"timezone"`
}

// Snapshot exports the user's persistence form.
func (u User) Snapshot() UserSnapshot {
	s := UserSnapshot{
		ID:           u.id.String(),
		Username:     u.username,
		Email:        u.email.String(),
		PasswordHash: u.password.Hash(),
		FirstName:    u.firstName,
		LastName:     u.lastName,
		Role:         u.role,
		Active:       u.active,
		CreatedAt:    u.createdAt,
		UpdatedAt:    u.updatedAt,
		Version:      u.version,
	}
	if u.address != nil {
		s.Address = &AddressRecord{
			Street:     u.address.Street(),
			City:       u.address.City(),
			State:      u.address.State(),
			Country:    u.address.Country(),
			PostalCode: u.address.PostalCode(),
		}
	}
	if u.phone != nil {
		s.Phone = u.phone.String()
	}
	if u.preferences != nil {
		s.Preferences = &PreferencesRecord{
			Notifications: u.preferences.Notifications(),
			Theme:         u.preferences.Theme(),
			Language:      u.preferences.Language(),
			Timezone:      u.preferences.Timezone(),
		}
	}
	return s
}

// UserFromSnapshot rehydrates a User, re-validating all invariants.
func UserFromSnapshot(s UserSnapshot) (User, error) {
	id, err := ParseUserID(s.ID)
	if err != nil {
		return User{}, err
	}
	email, err := NewEmail(s.Email)
	if err != nil {
		return User{}, err
	}
	password, err := PasswordFromHash(s.PasswordHash)
	if err != nil {
		return User{}, err
	}
	if len(strings.TrimSpace(s.Username)) < 3 {
		return User{}, fmt.Errorf("username must be at least 3 characters long: %w", ErrBadRequest)
	}
	if s.FirstName == "" || s.LastName == "" {
		return User{}, fmt.Errorf("first and last name are required: %w", ErrBadRequest)
	}
	role := s.Role
	if role == "" {
		role = RoleUser
	}
	u := User{
		id:        id,
		username:  s.Username,
		email:     email,
		password:  password,
		firstName: s.FirstName,
		lastName:  s.LastName,
		role:      role,
		active:    s.Active,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
		version:   s.Version,
	}
	if s.Address != nil {
		addr, err := NewAddress(s.Address.Street, s.Address.City, s.Address.State, s.Address.Country, s.Address.PostalCode)
		if err != nil {
			return User{}, err
		}
		u.address = &addr
	}
	if s.Phone != "" {
		phone, err := NewPhoneNumber(s.Phone)
		if err != nil {
			return User{}, err
		}
		u.phone = &phone
	}
	if s.Preferences != nil {
		prefs, err := NewUserPreferences(s.Preferences.Notifications, s.Preferences.Theme, s.Preferences.Language, s.Preferences.Timezone)
		if err != nil {
			return User{}, err
		}
		u.preferences = &prefs
	}
	return u, nil
}
