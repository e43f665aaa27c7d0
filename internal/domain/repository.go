package domain

import "context"

// TripRepository is the only sanctioned path to durable trip state.
// Save upserts by ID (idempotent); lookups return ErrNotFound-wrapped errors
// when the aggregate does not exist. Implementations offer no concurrency
// control: the system assumes a single writer per aggregate.
type TripRepository interface {
	FindByID(ctx context.Context, id TripID) (Trip, error)
	FindAll(ctx context.Context) ([]Trip, error)
	Save(ctx context.Context, t Trip) error
	Delete(ctx context.Context, id TripID) error
	Exists(ctx context.Context, id TripID) (bool, error)
}

// UserRepository is the persistence contract for User aggregates. The extra
// lookups back the uniqueness checks performed by the auth service.
type UserRepository interface {
	FindByID(ctx context.Context, id UserID) (User, error)
	FindByEmail(ctx context.Context, email Email) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	Save(ctx context.Context, u User) error
	Delete(ctx context.Context, id UserID) error
	Exists(ctx context.Context, id UserID) (bool, error)
	ExistsByEmail(ctx context.Context, email Email) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// SessionRepository stores login sessions keyed by their opaque token.
type SessionRepository interface {
	Put(ctx context.Context, s Session) error
	GetByToken(ctx context.Context, token string) (Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID UserID) error
}
