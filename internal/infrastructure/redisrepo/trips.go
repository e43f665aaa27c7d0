package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/go-trip-booking/internal/domain"
)

const (
	tripKeyPrefix = "trip:"
	tripIndexKey  = "trips"
)

// TripRepository stores trip snapshots as JSON values with a set index over
// all trip IDs for full scans.
type TripRepository struct {
	client *redis.Client
}

func NewTripRepository(client *redis.Client) *TripRepository {
	return &TripRepository{client: client}
}

func tripKey(id domain.TripID) string { return tripKeyPrefix + id.String() }

func (r *TripRepository) FindByID(ctx context.Context, id domain.TripID) (domain.Trip, error) {
	raw, err := r.client.Get(ctx, tripKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Trip{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Trip{}, fmt.Errorf("get trip %s: %w", id, err)
	}
	return decodeTrip(raw)
}

func (r *TripRepository) FindAll(ctx context.Context) ([]domain.Trip, error) {
	ids, err := r.client.SMembers(ctx, tripIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list trip ids: %w", err)
	}
	trips := make([]domain.Trip, 0, len(ids))
	for _, id := range ids {
		raw, err := r.client.Get(ctx, tripKeyPrefix+id).Bytes()
		if errors.Is(err, redis.Nil) {
			// index entry for a deleted trip: skip rather than fail the scan
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("get trip %s: %w", id, err)
		}
		t, err := decodeTrip(raw)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	return trips, nil
}

func (r *TripRepository) Save(ctx context.Context, t domain.Trip) error {
	raw, err := json.Marshal(t.Snapshot())
	if err != nil {
		return fmt.Errorf("marshal trip %s: %w", t.ID(), err)
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tripKey(t.ID()), raw, 0)
	pipe.SAdd(ctx, tripIndexKey, t.ID().String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save trip %s: %w", t.ID(), err)
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id domain.TripID) error {
	deleted, err := r.client.Del(ctx, tripKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete trip %s: %w", id, err)
	}
	if deleted == 0 {
		return domain.ErrNotFound
	}
	if err := r.client.SRem(ctx, tripIndexKey, id.String()).Err(); err != nil {
		return fmt.Errorf("unindex trip %s: %w", id, err)
	}
	return nil
}

func (r *TripRepository) Exists(ctx context.Context, id domain.TripID) (bool, error) {
	n, err := r.client.Exists(ctx, tripKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("check trip %s: %w", id, err)
	}
	return n > 0, nil
}

func decodeTrip(raw []byte) (domain.Trip, error) {
	var snap domain.TripSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.Trip{}, fmt.Errorf("unmarshal trip: %w", err)
	}
	return domain.TripFromSnapshot(snap)
}
