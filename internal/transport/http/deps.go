package http

import (
	"context"
	"io"
	"time"

	"github.com/go-trip-booking/internal/domain"
	"github.com/go-trip-booking/internal/event"
)

// ObjectStore is the minimal interface the router requires from an object
// storage backend. *s3.Store satisfies it.
type ObjectStore interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// TokenSigner is the minimal interface the router requires from a JWT
// provider. *jwt.Provider satisfies it.
type TokenSigner interface {
	Sign(userID, role, sessionID string) (string, error)
	Verify(token string) (userID, sessionID string, err error)
}

// Deps holds all infrastructure dependencies for the router. ImageStore and
// Signer may be nil; the affected features degrade gracefully (no image
// storage, opaque session tokens instead of JWTs).
type Deps struct {
	TripRepo    domain.TripRepository
	UserRepo    domain.UserRepository
	SessionRepo domain.SessionRepository
	ImageStore  ObjectStore
	Signer      TokenSigner
	Bus         *event.Bus
}
