package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Price is the value object for a monetary amount in a single currency.
// Arithmetic is only defined within the same currency.
type Price struct {
	amount   float64
	currency string
}

// NewPrice validates and builds a Price. The currency must be a valid
// ISO 4217 code; the amount must not be negative.
func NewPrice(amount float64, code string) (Price, error) {
	if amount < 0 {
		return Price{}, fmt.Errorf("price amount cannot be negative: %w", ErrBadRequest)
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Price{}, fmt.Errorf("currency cannot be empty: %w", ErrBadRequest)
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Price{}, fmt.Errorf("invalid currency code %q: %w", code, ErrBadRequest)
	}
	return Price{amount: amount, currency: unit.String()}, nil
}

func (p Price) Amount() float64  { return p.amount }
func (p Price) Currency() string { return p.currency }

// Add returns the sum of two prices. Both must share a currency.
func (p Price) Add(other Price) (Price, error) {
	if p.currency != other.currency {
		return Price{}, fmt.Errorf("cannot add prices with different currencies (%s vs %s): %w",
			p.currency, other.currency, ErrBadRequest)
	}
	return Price{amount: p.amount + other.amount, currency: p.currency}, nil
}

// Multiply scales the price by a non-negative factor.
func (p Price) Multiply(factor float64) (Price, error) {
	if factor < 0 {
		return Price{}, fmt.Errorf("multiplication factor cannot be negative: %w", ErrBadRequest)
	}
	return Price{amount: p.amount * factor, currency: p.currency}, nil
}

// Format renders the price with its currency symbol, e.g. "US$ 1200.00".
func (p Price) Format() string {
	unit, err := currency.ParseISO(p.currency)
	if err != nil {
		return fmt.Sprintf("%s %.2f", p.currency, p.amount)
	}
	return fmt.Sprintf("%v", currency.Symbol(unit.Amount(p.amount)))
}

// Equals compares prices by amount and currency.
func (p Price) Equals(other Price) bool {
	return p.amount == other.amount && p.currency == other.currency
}
