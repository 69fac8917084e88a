package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "activity:log:"

// RedisStore implements Store with one JSON-encoded log per user.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisKeyPrefix overrides the default key prefix.
func WithRedisKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		if prefix != "" {
			rs.prefix = prefix
		}
	}
}

// NewRedisStore creates an activity store backed by the given Redis client.
func NewRedisStore(client *redis.Client, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client: client,
		prefix: defaultRedisKeyPrefix,
	}

	for _, opt := range opts {
		opt(rs)
	}

	return rs
}

// Fetch returns the user's log, or ErrNoLog.
func (rs *RedisStore) Fetch(ctx context.Context, userID uuid.UUID) (Log, error) {
	raw, err := rs.client.Get(ctx, rs.prefix+userID.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoLog
		}
		return nil, fmt.Errorf("activity: redis fetch: %w", err)
	}

	var log Log
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("activity: corrupt log for %s: %w", userID, err)
	}
	return log, nil
}

// Save persists the user's log.
func (rs *RedisStore) Save(ctx context.Context, userID uuid.UUID, log Log) error {
	raw, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("activity: encode log: %w", err)
	}

	if err := rs.client.Set(ctx, rs.prefix+userID.String(), raw, 0).Err(); err != nil {
		return fmt.Errorf("activity: redis save: %w", err)
	}
	return nil
}
