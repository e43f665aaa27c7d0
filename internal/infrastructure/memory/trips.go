package memory

import (
	"context"
	"sync"

	"github.com/go-trip-booking/internal/domain"
)

// TripRepository is a map-backed trip store. Aggregates are stored as
// snapshots so reads rehydrate through the same validation path as the
// persistent adapters. Insertion order is tracked so unfiltered listings
// are stable across calls.
type TripRepository struct {
	mu    sync.RWMutex
	trips map[string]domain.TripSnapshot
	order []string
}

func NewTripRepository() *TripRepository {
	return &TripRepository{trips: make(map[string]domain.TripSnapshot)}
}

func (r *TripRepository) FindByID(_ context.Context, id domain.TripID) (domain.Trip, error) {
	r.mu.RLock()
	snap, ok := r.trips[id.String()]
	r.mu.RUnlock()
	if !ok {
		return domain.Trip{}, domain.ErrNotFound
	}
	return domain.TripFromSnapshot(snap)
}

func (r *TripRepository) FindAll(_ context.Context) ([]domain.Trip, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Trip, 0, len(r.order))
	for _, id := range r.order {
		t, err := domain.TripFromSnapshot(r.trips[id])
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *TripRepository) Save(_ context.Context, t domain.Trip) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := t.ID().String()
	if _, ok := r.trips[id]; !ok {
		r.order = append(r.order, id)
	}
	r.trips[id] = t.Snapshot()
	return nil
}

func (r *TripRepository) Delete(_ context.Context, id domain.TripID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trips[id.String()]; !ok {
		return domain.ErrNotFound
	}
	delete(r.trips, id.String())
	for i, v := range r.order {
		if v == id.String() {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *TripRepository) Exists(_ context.Context, id domain.TripID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.trips[id.String()]
	return ok, nil
}
