package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrice_RoundTrip(t *testing.T) {
	p, err := NewPrice(1250.50, "USD")
	require.NoError(t, err)
	assert.Equal(t, 1250.50, p.Amount())
	assert.Equal(t, "USD", p.Currency())
}

func TestNewPrice_NormalizesCurrencyCase(t *testing.T) {
	p, err := NewPrice(10, "eur")
	require.NoError(t, err)
	assert.Equal(t, "EUR", p.Currency())
}

func TestNewPrice_NegativeAmount(t *testing.T) {
	_, err := NewPrice(-1, "USD")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadRequest))
}

func TestNewPrice_InvalidCurrency(t *testing.T) {
	for _, code := range []string{"", "US", "DOLLARS", "123"} {
		_, err := NewPrice(10, code)
		assert.Error(t, err, "code %q", code)
	}
}

func TestPrice_Add(t *testing.T) {
	a, _ := NewPrice(100, "USD")
	b, _ := NewPrice(50, "USD")
	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, 150.0, sum.Amount())
	assert.Equal(t, "USD", sum.Currency())
}

func TestPrice_Add_CurrencyMismatch(t *testing.T) {
	usd, _ := NewPrice(100, "USD")
	eur, _ := NewPrice(50, "EUR")
	_, err := usd.Add(eur)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different currencies")
}

func TestPrice_Multiply(t *testing.T) {
	p, _ := NewPrice(100, "USD")
	doubled, err := p.Multiply(2)
	require.NoError(t, err)
	assert.Equal(t, 200.0, doubled.Amount())

	_, err = p.Multiply(-1)
	assert.Error(t, err)
}

func TestPrice_Equals(t *testing.T) {
	a, _ := NewPrice(100, "USD")
	b, _ := NewPrice(100, "USD")
	c, _ := NewPrice(100, "EUR")
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
