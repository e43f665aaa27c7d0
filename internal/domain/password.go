package domain

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

// Password is the value object holding a bcrypt hash of a user's password.
// The plaintext is validated against the policy at construction and never
// retained.
type Password struct {
	hash string
}

// NewPassword enforces the password policy (at least 8 characters with at
// least one letter and one digit) and hashes the plaintext with bcrypt.
func NewPassword(plain string) (Password, error) {
	if err := checkPasswordPolicy(plain); err != nil {
		return Password{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return Password{}, fmt.Errorf("hash password: %w", err)
	}
	return Password{hash: string(hash)}, nil
}

// PasswordFromHash rehydrates a Password from a stored bcrypt hash.
func PasswordFromHash(hash string) (Password, error) {
	if hash == "" {
		return Password{}, fmt.Errorf("password hash is required: %w", ErrBadRequest)
	}
	return Password{hash: hash}, nil
}

// Verify reports whether the plaintext matches the stored hash.
func (p Password) Verify(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(p.hash), []byte(plain)) == nil
}

// Hash returns the bcrypt hash for persistence.
func (p Password) Hash() string { return p.hash }

// Equals compares by hashed representation.
func (p Password) Equals(other Password) bool { return p.hash == other.hash }

func checkPasswordPolicy(plain string) error {
	if len(plain) < 8 {
		return fmt.Errorf("password must be at least 8 characters long: %w", ErrBadRequest)
	}
	var hasLetter, hasDigit bool
	for _, r := range plain {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit: %w", ErrBadRequest)
	}
	return nil
}
