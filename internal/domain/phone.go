package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var phonePattern = regexp.MustCompile(`^\+?[\d\s\-()]{10,}$`)

// PhoneNumber is the value object for a user's phone number.
type PhoneNumber struct {
	value string
}

// NewPhoneNumber validates the format: at least 10 characters of digits,
// spaces, dashes or parentheses, with an optional leading +.
func NewPhoneNumber(value string) (PhoneNumber, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return PhoneNumber{}, fmt.Errorf("phone number is required: %w", ErrBadRequest)
	}
	if !phonePattern.MatchString(value) {
		return PhoneNumber{}, fmt.Errorf("invalid phone number format: %w", ErrBadRequest)
	}
	return PhoneNumber{value: value}, nil
}

func (p PhoneNumber) String() string { return p.value }

// Format renders ten-digit numbers as (XXX) XXX-XXXX; anything else is
// returned unchanged.
func (p PhoneNumber) Format() string {
	var digits strings.Builder
	for _, r := range p.value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	if len(d) != 10 {
		return p.value
	}
	return fmt.Sprintf("(%s) %s-%s", d[:3], d[3:6], d[6:])
}

// Equals compares phone numbers by raw value.
func (p PhoneNumber) Equals(other PhoneNumber) bool { return p.value == other.value }
