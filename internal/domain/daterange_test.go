package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewDateRange_StartAfterEnd(t *testing.T) {
	_, err := NewDateRange(date(2026, 6, 10), date(2026, 6, 1))
	assert.Error(t, err)
}

func TestNewDateRange_StartEqualsEnd(t *testing.T) {
	d := date(2026, 6, 1)
	_, err := NewDateRange(d, d)
	assert.Error(t, err)
}

func TestNewDateRange_Valid(t *testing.T) {
	r, err := NewDateRange(date(2026, 6, 1), date(2026, 6, 10))
	require.NoError(t, err)
	assert.Equal(t, 9, r.DurationInDays())
}

func TestDateRange_DurationRoundsUp(t *testing.T) {
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 2, 12, 0, 0, 0, time.UTC)
	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	assert.Equal(t, 2, r.DurationInDays())
}

func TestDateRange_Includes(t *testing.T) {
	r, _ := NewDateRange(date(2026, 6, 1), date(2026, 6, 10))
	assert.True(t, r.Includes(date(2026, 6, 1)))
	assert.True(t, r.Includes(date(2026, 6, 5)))
	assert.True(t, r.Includes(date(2026, 6, 10)))
	assert.False(t, r.Includes(date(2026, 5, 31)))
	assert.False(t, r.Includes(date(2026, 6, 11)))
}

func TestDateRange_OverlapsIsSymmetric(t *testing.T) {
	a, _ := NewDateRange(date(2026, 6, 1), date(2026, 6, 10))
	b, _ := NewDateRange(date(2026, 6, 5), date(2026, 6, 15))
	c, _ := NewDateRange(date(2026, 7, 1), date(2026, 7, 10))

	assert.True(t, a.Overlaps(b))
	assert.Equal(t, a.Overlaps(b), b.Overlaps(a))
	assert.False(t, a.Overlaps(c))
	assert.Equal(t, a.Overlaps(c), c.Overlaps(a))
}

func TestDateRange_Equals(t *testing.T) {
	a, _ := NewDateRange(date(2026, 6, 1), date(2026, 6, 10))
	b, _ := NewDateRange(date(2026, 6, 1), date(2026, 6, 10))
	c, _ := NewDateRange(date(2026, 6, 1), date(2026, 6, 11))
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
