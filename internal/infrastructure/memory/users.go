package memory

import (
	"context"
	"sync"

	"github.com/go-trip-booking/internal/domain"
)

// UserRepository is a map-backed user store with email and username indexes
// kept in lockstep with the primary map.
type UserRepository struct {
	mu         sync.RWMutex
	users      map[string]domain.UserSnapshot
	byEmail    map[string]string
	byUsername map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:      make(map[string]domain.UserSnapshot),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

func (r *UserRepository) FindByID(_ context.Context, id domain.UserID) (domain.User, error) {
	r.mu.RLock()
	snap, ok := r.users[id.String()]
	r.mu.RUnlock()
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return domain.UserFromSnapshot(snap)
}

func (r *UserRepository) FindByEmail(_ context.Context, email domain.Email) (domain.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email.String()]
	var snap domain.UserSnapshot
	if ok {
		snap = r.users[id]
	}
	r.mu.RUnlock()
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return domain.UserFromSnapshot(snap)
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (domain.User, error) {
	r.mu.RLock()
	id, ok := r.byUsername[username]
	var snap domain.UserSnapshot
	if ok {
		snap = r.users[id]
	}
	r.mu.RUnlock()
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return domain.UserFromSnapshot(snap)
}

func (r *UserRepository) FindAll(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.User, 0, len(r.users))
	for _, snap := range r.users {
		u, err := domain.UserFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

func (r *UserRepository) Save(_ context.Context, u domain.User) error {
	snap := u.Snapshot()
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.users[snap.ID]; ok {
		delete(r.byEmail, old.Email)
		delete(r.byUsername, old.Username)
	}
	r.users[snap.ID] = snap
	r.byEmail[snap.Email] = snap.ID
	r.byUsername[snap.Username] = snap.ID
	return nil
}

func (r *UserRepository) Delete(_ context.Context, id domain.UserID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap, ok := r.users[id.String()]
	if !ok {
		return domain.ErrNotFound
	}
	delete(r.users, id.String())
	delete(r.byEmail, snap.Email)
	delete(r.byUsername, snap.Username)
	return nil
}

func (r *UserRepository) Exists(_ context.Context, id domain.UserID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.users[id.String()]
	return ok, nil
}

func (r *UserRepository) ExistsByEmail(_ context.Context, email domain.Email) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byEmail[email.String()]
	return ok, nil
}

func (r *UserRepository) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUsername[username]
	return ok, nil
}
