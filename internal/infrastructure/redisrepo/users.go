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
	userKeyPrefix   = "user:"
	userEmailPrefix = "user:email:"
	userNamePrefix  = "user:username:"
	userIndexKey    = "users"
)

// UserRepository stores user snapshots as JSON values plus email and
// username lookup keys pointing back at the user ID.
type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

func userKey(id string) string { return userKeyPrefix + id }

func (r *UserRepository) FindByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	return r.getByKey(ctx, userKey(id.String()))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email domain.Email) (domain.User, error) {
	return r.getByIndex(ctx, userEmailPrefix+email.String())
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getByIndex(ctx, userNamePrefix+username)
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	ids, err := r.client.SMembers(ctx, userIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list user ids: %w", err)
	}
	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := r.getByKey(ctx, userKey(id))
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) Save(ctx context.Context, u domain.User) error {
	snap := u.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal user %s: %w", snap.ID, err)
	}
	// Drop stale index keys when email or username changed.
	if old, err := r.getByKey(ctx, userKey(snap.ID)); err == nil {
		pipe := r.client.TxPipeline()
		if old.Email().String() != snap.Email {
			pipe.Del(ctx, userEmailPrefix+old.Email().String())
		}
		if old.Username() != snap.Username {
			pipe.Del(ctx, userNamePrefix+old.Username())
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("clear stale user indexes %s: %w", snap.ID, err)
		}
	}
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, userKey(snap.ID), raw, 0)
	pipe.Set(ctx, userEmailPrefix+snap.Email, snap.ID, 0)
	pipe.Set(ctx, userNamePrefix+snap.Username, snap.ID, 0)
	pipe.SAdd(ctx, userIndexKey, snap.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save user %s: %w", snap.ID, err)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id domain.UserID) error {
	u, err := r.getByKey(ctx, userKey(id.String()))
	if err != nil {
		return err
	}
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, userKey(id.String()))
	pipe.Del(ctx, userEmailPrefix+u.Email().String())
	pipe.Del(ctx, userNamePrefix+u.Username())
	pipe.SRem(ctx, userIndexKey, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, id domain.UserID) (bool, error) {
	n, err := r.client.Exists(ctx, userKey(id.String())).Result()
	if err != nil {
		return false, fmt.Errorf("check user %s: %w", id, err)
	}
	return n > 0, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	n, err := r.client.Exists(ctx, userEmailPrefix+email.String()).Result()
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Exists(ctx, userNamePrefix+username).Result()
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) getByIndex(ctx context.Context, indexKey string) (domain.User, error) {
	id, err := r.client.Get(ctx, indexKey).Result()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("resolve user index: %w", err)
	}
	return r.getByKey(ctx, userKey(id))
}

func (r *UserRepository) getByKey(ctx context.Context, key string) (domain.User, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.User{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	var snap domain.UserSnapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return domain.User{}, fmt.Errorf("unmarshal user: %w", err)
	}
	return domain.UserFromSnapshot(snap)
}
