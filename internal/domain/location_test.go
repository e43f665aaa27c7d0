package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocation_RequiresCityAndCountry(t *testing.T) {
	_, err := NewLocation("", "France", nil)
	assert.Error(t, err)
	_, err = NewLocation("Paris", "  ", nil)
	assert.Error(t, err)
}

func TestNewLocation_CoordinateBounds(t *testing.T) {
	_, err := NewLocation("Paris", "France", &Coordinates{Latitude: 91, Longitude: 0})
	assert.Error(t, err)
	_, err = NewLocation("Paris", "France", &Coordinates{Latitude: 0, Longitude: -181})
	assert.Error(t, err)

	loc, err := NewLocation("Paris", "France", &Coordinates{Latitude: 48.85, Longitude: 2.35})
	require.NoError(t, err)
	require.NotNil(t, loc.Coordinates())
	assert.Equal(t, 48.85, loc.Coordinates().Latitude)
}

func TestLocation_Format(t *testing.T) {
	loc, _ := NewLocation("Kyoto", "Japan", nil)
	assert.Equal(t, "Kyoto, Japan", loc.Format())
}

func TestLocation_Equals(t *testing.T) {
	coords := &Coordinates{Latitude: 48.85, Longitude: 2.35}
	a, _ := NewLocation("Paris", "France", coords)
	b, _ := NewLocation("Paris", "France", &Coordinates{Latitude: 48.85, Longitude: 2.35})
	c, _ := NewLocation("Paris", "France", nil)
	d, _ := NewLocation("Lyon", "France", coords)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(d))
}
