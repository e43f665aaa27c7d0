package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUserPreferences_Validation(t *testing.T) {
	_, err := NewUserPreferences(NotificationPreferences{}, ThemePreferences{}, "", "UTC")
	assert.Error(t, err, "missing language")

	_, err = NewUserPreferences(NotificationPreferences{}, ThemePreferences{}, "en", " ")
	assert.Error(t, err, "missing timezone")

	_, err = NewUserPreferences(NotificationPreferences{}, ThemePreferences{Mode: "neon"}, "en", "UTC")
	assert.Error(t, err, "unknown theme mode")
}

func TestNewUserPreferences_FillsThemeDefaults(t *testing.T) {
	p, err := NewUserPreferences(NotificationPreferences{}, ThemePreferences{}, "en", "UTC")
	require.NoError(t, err)
	assert.Equal(t, ThemeSystem, p.Theme().Mode)
	assert.Equal(t, FontMedium, p.Theme().FontSize)
}

func TestUserPreferences_PartialUpdateByReconstruction(t *testing.T) {
	p := DefaultPreferences()

	withSMS := p.WithNotifications(NotificationPreferences{Email: true, SMS: true})
	assert.True(t, withSMS.Notifications().SMS)
	assert.False(t, p.Notifications().SMS, "original unchanged")

	dark, err := p.WithTheme(ThemePreferences{Mode: ThemeDark, FontSize: FontSmall})
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, dark.Theme().Mode)

	pt, err := p.WithLanguage("pt")
	require.NoError(t, err)
	assert.Equal(t, "pt", pt.Language())
	assert.Equal(t, p.Timezone(), pt.Timezone())

	_, err = p.WithLanguage("")
	assert.Error(t, err)

	tz, err := p.WithTimezone("Europe/Lisbon")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Lisbon", tz.Timezone())
}

func TestUserPreferences_Equals(t *testing.T) {
	a := DefaultPreferences()
	b := DefaultPreferences()
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(a.WithNotifications(NotificationPreferences{Push: true})))
}

func TestPhoneNumber_Format(t *testing.T) {
	p, err := NewPhoneNumber("415-555-0123")
	require.NoError(t, err)
	assert.Equal(t, "(415) 555-0123", p.Format())

	intl, err := NewPhoneNumber("+351 912 345 678")
	require.NoError(t, err)
	assert.Equal(t, "+351 912 345 678", intl.Format(), "non-ten-digit left as-is")

	_, err = NewPhoneNumber("12345")
	assert.Error(t, err)
}

func TestEmail_NormalizesAndValidates(t *testing.T) {
	e, err := NewEmail("  Alice@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", e.String())

	for _, bad := range []string{"", "plain", "a@b", "@example.com", "a b@example.com"} {
		_, err := NewEmail(bad)
		assert.Error(t, err, bad)
	}
}

func TestAddress_FormatAndEquals(t *testing.T) {
	a, err := NewAddress("1 Main St", "Lisbon", "Lisbon", "Portugal", "1000-001")
	require.NoError(t, err)
	assert.Equal(t, "1 Main St, Lisbon, Lisbon 1000-001, Portugal", a.Format())

	b, _ := NewAddress(" 1 Main St ", "Lisbon", "Lisbon", "Portugal", "1000-001")
	assert.True(t, a.Equals(b), "trimmed input compares equal")

	_, err = NewAddress("", "Lisbon", "Lisbon", "Portugal", "1000-001")
	assert.Error(t, err)
}
