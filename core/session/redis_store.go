package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTokenPrefix = "session:token:"
	defaultIDPrefix    = "session:id:"
)

// RedisStore implements Store on top of a Redis client. Sessions are stored
// as JSON keyed by token, with a secondary id-to-token index. Expiry is
// delegated to Redis key TTLs.
type RedisStore struct {
	client      redis.UniversalClient
	tokenPrefix string
	idPrefix    string
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithRedisSessionKeyPrefix overrides the default key prefixes. The prefix is
// applied to both the token keys and the id index keys.
func WithRedisSessionKeyPrefix(prefix string) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.tokenPrefix = prefix + "token:"
		rs.idPrefix = prefix + "id:"
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	rs := &RedisStore{
		client:      client,
		tokenPrefix: defaultTokenPrefix,
		idPrefix:    defaultIDPrefix,
	}
	for _, opt := range opts {
		opt(rs)
	}
	return rs
}

// GetByID resolves the id index and loads the session by token.
func (rs *RedisStore) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	token, err := rs.client.Get(ctx, rs.idPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: get id index: %w", err)
	}
	return rs.GetByToken(ctx, token)
}

// GetByToken loads and decodes the session stored under the token key.
func (rs *RedisStore) GetByToken(ctx context.Context, token string) (*Session, error) {
	raw, err := rs.client.Get(ctx, rs.tokenPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: get by token: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session: decode: %w", err)
	}
	return &sess, nil
}

// Save writes the session JSON and the id index, both expiring at the
// session's ExpiresAt. A stale token key left by token rotation is removed in
// the same pipeline.
func (rs *RedisStore) Save(ctx context.Context, sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	prevToken, err := rs.client.Get(ctx, rs.idPrefix+sess.ID.String()).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("session: get id index: %w", err)
	}

	pipe := rs.client.TxPipeline()
	if prevToken != "" && prevToken != sess.Token {
		pipe.Del(ctx, rs.tokenPrefix+prevToken)
	}
	pipe.Set(ctx, rs.tokenPrefix+sess.Token, raw, 0)
	pipe.PExpireAt(ctx, rs.tokenPrefix+sess.Token, sess.ExpiresAt)
	pipe.Set(ctx, rs.idPrefix+sess.ID.String(), sess.Token, 0)
	pipe.PExpireAt(ctx, rs.idPrefix+sess.ID.String(), sess.ExpiresAt)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: save: %w", err)
	}
	return nil
}

// Delete removes the session and its id index entry.
func (rs *RedisStore) Delete(ctx context.Context, id uuid.UUID) error {
	token, err := rs.client.Get(ctx, rs.idPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("session: get id index: %w", err)
	}

	pipe := rs.client.TxPipeline()
	pipe.Del(ctx, rs.tokenPrefix+token)
	pipe.Del(ctx, rs.idPrefix+id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: delete: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op for Redis, which evicts expired keys itself.
func (rs *RedisStore) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}
