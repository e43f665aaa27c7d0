package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email is the value object for a validated, normalized email address.
type Email struct {
	value string
}

// NewEmail validates the format and normalizes the address to lower case.
func NewEmail(value string) (Email, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return Email{}, fmt.Errorf("email is required: %w", ErrBadRequest)
	}
	if !emailPattern.MatchString(value) {
		return Email{}, fmt.Errorf("invalid email format: %w", ErrBadRequest)
	}
	return Email{value: value}, nil
}

func (e Email) String() string      { return e.value }
func (e Email) IsZero() bool        { return e.value == "" }
func (e Email) Equals(o Email) bool { return e.value == o.value }
