package domain

import (
	"fmt"
	"strings"
)

// Address is the value object for a user's postal address.
type Address struct {
	street     string
	city       string
	state      string
	country    string
	postalCode string
}

// NewAddress validates and builds an Address. Every field is required.
func NewAddress(street, city, state, country, postalCode string) (Address, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"street", &street},
		{"city", &city},
		{"state", &state},
		{"country", &country},
		{"postal code", &postalCode},
	}
	for _, f := range fields {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return Address{}, fmt.Errorf("%s is required: %w", f.name, ErrBadRequest)
		}
	}
	return Address{street: street, city: city, state: state, country: country, postalCode: postalCode}, nil
}

func (a Address) Street() string     { return a.street }
func (a Address) City() string       { return a.city }
func (a Address) State() string      { return a.state }
func (a Address) Country() string    { return a.country }
func (a Address) PostalCode() string { return a.postalCode }

// Format renders the address on a single line.
func (a Address) Format() string {
	return fmt.Sprintf("%s, %s, %s %s, %s", a.street, a.city, a.state, a.postalCode, a.country)
}

// Equals compares addresses by structural value.
func (a Address) Equals(other Address) bool { return a == other }
