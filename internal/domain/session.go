package domain

import "time"

// Session is the process-visible login state for one authenticated user.
// It replaces a global "current user" reference: callers exchange the opaque
// token for the user explicitly on every operation that needs identity.
type Session struct {
	ID        string    `json:"id" dynamodbav:"session_id"`
	Token     string    `json:"token" dynamodbav:"token"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	ExpiresAt time.Time `json:"expires" dynamodbav:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
