package presence

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRedisKeyPrefix = "presence:online:"

// updateScript refreshes last_seen only while the record still exists, so a
// concurrent stop_tracking is never resurrected as a partial record.
var updateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
redis.call('HSET', KEYS[1], 'last_seen', ARGV[1])
if tonumber(ARGV[2]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[2])
end
return 1
`)

// RedisStore implements Store on Redis with one hash per user. An optional
// TTL lets records of crashed sessions age out on their own.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
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

// WithRedisTTL expires records that have not been refreshed within ttl.
// Zero disables expiration.
func WithRedisTTL(ttl time.Duration) RedisStoreOption {
	return func(rs *RedisStore) {
		rs.ttl = ttl
	}
}

// NewRedisStore creates a presence store backed by the given Redis client.
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

func (rs *RedisStore) key(userID uuid.UUID) string {
	return rs.prefix + userID.String()
}

// Get returns the user's record or ErrNotFound.
func (rs *RedisStore) Get(ctx context.Context, userID uuid.UUID) (Record, error) {
	fields, err := rs.client.HGetAll(ctx, rs.key(userID)).Result()
	if err != nil {
		return Record{}, fmt.Errorf("presence: redis get: %w", err)
	}
	if len(fields) == 0 {
		return Record{}, ErrNotFound
	}

	return recordFromFields(userID, fields)
}

// Start creates or refreshes the record. Concurrent first-sight requests all
// write the same key, so exactly one record exists afterwards.
func (rs *RedisStore) Start(ctx context.Context, rec Record) error {
	key := rs.key(rec.UserID)

	pipe := rs.client.TxPipeline()
	pipe.HSet(ctx, key,
		"last_seen", rec.LastSeen.UTC().Format(time.RFC3339Nano),
		"hidden", boolField(rec.Hidden),
	)
	if rs.ttl > 0 {
		pipe.PExpire(ctx, key, rs.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("presence: redis start: %w", err)
	}
	return nil
}

// Update refreshes the record's LastSeen, or returns ErrNotFound when the
// record was deleted in the meantime.
func (rs *RedisStore) Update(ctx context.Context, userID uuid.UUID, lastSeen time.Time) error {
	updated, err := updateScript.Run(ctx, rs.client,
		[]string{rs.key(userID)},
		lastSeen.UTC().Format(time.RFC3339Nano),
		rs.ttl.Milliseconds(),
	).Int()
	if err != nil {
		return fmt.Errorf("presence: redis update: %w", err)
	}
	if updated == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record if present.
func (rs *RedisStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := rs.client.Del(ctx, rs.key(userID)).Err(); err != nil {
		return fmt.Errorf("presence: redis delete: %w", err)
	}
	return nil
}

// List returns all records, most recently seen first.
func (rs *RedisStore) List(ctx context.Context) ([]Record, error) {
	var records []Record

	iter := rs.client.Scan(ctx, 0, rs.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		userID, err := uuid.Parse(strings.TrimPrefix(key, rs.prefix))
		if err != nil {
			continue // foreign key under our prefix
		}

		rec, err := rs.Get(ctx, userID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue // expired between scan and read
			}
			return nil, err
		}
		records = append(records, rec)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("presence: redis list: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].LastSeen.After(records[j].LastSeen)
	})

	return records, nil
}

func recordFromFields(userID uuid.UUID, fields map[string]string) (Record, error) {
	lastSeen, err := time.Parse(time.RFC3339Nano, fields["last_seen"])
	if err != nil {
		return Record{}, fmt.Errorf("presence: corrupt last_seen for %s: %w", userID, err)
	}

	return Record{
		UserID:   userID,
		LastSeen: lastSeen,
		Hidden:   fields["hidden"] == "1",
	}, nil
}

func boolField(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
