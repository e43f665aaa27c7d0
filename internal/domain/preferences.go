package domain

import (
	"fmt"
	"strings"
)

// NotificationPreferences controls which channels a user accepts
// notifications on.
type NotificationPreferences struct {
	Email bool `json:"email" dynamodbav:"email"`
	Push  bool `json:"push" dynamodbav:"push"`
	SMS   bool `json:"sms" dynamodbav:"sms"`
}

// ThemeMode is the UI color scheme preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// FontSize is the UI font size preference.
type FontSize string

const (
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

// ThemePreferences bundles the display preferences.
type ThemePreferences struct {
	Mode     ThemeMode `json:"mode" dynamodbav:"mode"`
	FontSize FontSize  `json:"font_size" dynamodbav:"font_size"`
}

// UserPreferences is a nested immutable value object. Partial updates are
// modelled as reconstruction through the WithX methods.
type UserPreferences struct {
	notifications NotificationPreferences
	theme         ThemePreferences
	language      string
	timezone      string
}

// NewUserPreferences validates and builds a UserPreferences value.
func NewUserPreferences(n NotificationPreferences, t ThemePreferences, language, timezone string) (UserPreferences, error) {
	language = strings.TrimSpace(language)
	timezone = strings.TrimSpace(timezone)
	if language == "" {
		return UserPreferences{}, fmt.Errorf("language is required: %w", ErrBadRequest)
	}
	if timezone == "" {
		return UserPreferences{}, fmt.Errorf("timezone is required: %w", ErrBadRequest)
	}
	switch t.Mode {
	case "", ThemeLight, ThemeDark, ThemeSystem:
	default:
		return UserPreferences{}, fmt.Errorf("invalid theme mode %q: %w", t.Mode, ErrBadRequest)
	}
	switch t.FontSize {
	case "", FontSmall, FontMedium, FontLarge:
	default:
		return UserPreferences{}, fmt.Errorf("invalid font size %q: %w", t.FontSize, ErrBadRequest)
	}
	if t.Mode == "" {
		t.Mode = ThemeSystem
	}
	if t.FontSize == "" {
		t.FontSize = FontMedium
	}
	return UserPreferences{notifications: n, theme: t, language: language, timezone: timezone}, nil
}

// DefaultPreferences returns the preferences assigned to new users.
func DefaultPreferences() UserPreferences {
	p, _ := NewUserPreferences(
		NotificationPreferences{Email: true},
		ThemePreferences{Mode: ThemeSystem, FontSize: FontMedium},
		"en", "UTC",
	)
	return p
}

func (p UserPreferences) Notifications() NotificationPreferences { return p.notifications }
func (p UserPreferences) Theme() ThemePreferences                { return p.theme }
func (p UserPreferences) Language() string                       { return p.language }
func (p UserPreferences) Timezone() string                       { return p.timezone }

// WithNotifications returns a copy with the notification channels replaced.
func (p UserPreferences) WithNotifications(n NotificationPreferences) UserPreferences {
	p.notifications = n
	return p
}

// WithTheme returns a copy with the theme replaced.
func (p UserPreferences) WithTheme(t ThemePreferences) (UserPreferences, error) {
	return NewUserPreferences(p.notifications, t, p.language, p.timezone)
}

// WithLanguage returns a copy with the language replaced.
func (p UserPreferences) WithLanguage(language string) (UserPreferences, error) {
	return NewUserPreferences(p.notifications, p.theme, language, p.timezone)
}

// WithTimezone returns a copy with the timezone replaced.
func (p UserPreferences) WithTimezone(timezone string) (UserPreferences, error) {
	return NewUserPreferences(p.notifications, p.theme, p.language, timezone)
}

// Equals compares preferences by structural value.
func (p UserPreferences) Equals(other UserPreferences) bool { return p == other }
