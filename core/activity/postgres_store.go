package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresDB is the subset of pgx connection behavior the store needs.
// *pgxpool.Pool satisfies it.
type PostgresDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PostgresStore implements Store on the forum_activity table, with logs held
// in a jsonb column. It also implements Toucher: the transition runs inside a
// transaction holding a row lock, so concurrent touches from different
// processes serialize instead of overwriting each other.
type PostgresStore struct {
	db PostgresDB
}

// NewPostgresStore creates an activity store backed by the given database.
func NewPostgresStore(db PostgresDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Fetch returns the user's log, or ErrNoLog.
func (ps *PostgresStore) Fetch(ctx context.Context, userID uuid.UUID) (Log, error) {
	var raw []byte
	err := ps.db.QueryRow(ctx,
		`SELECT entries FROM forum_activity WHERE user_id = $1`,
		userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoLog
		}
		return nil, fmt.Errorf("activity: postgres fetch: %w", err)
	}

	return decodeLog(userID, raw)
}

// Save persists the user's log, creating the row if needed.
func (ps *PostgresStore) Save(ctx context.Context, userID uuid.UUID, log Log) error {
	raw, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("activity: encode log: %w", err)
	}

	_, err = ps.db.Exec(ctx,
		`INSERT INTO forum_activity (user_id, entries) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET entries = EXCLUDED.entries`,
		userID, raw,
	)
	if err != nil {
		return fmt.Errorf("activity: postgres save: %w", err)
	}
	return nil
}

// Touch applies the append-or-replace transition under a row lock.
func (ps *PostgresStore) Touch(ctx context.Context, userID uuid.UUID, now time.Time) error {
	tx, err := ps.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("activity: postgres touch begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	var raw []byte
	err = tx.QueryRow(ctx,
		`SELECT entries FROM forum_activity WHERE user_id = $1 FOR UPDATE`,
		userID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoLog
		}
		return fmt.Errorf("activity: postgres touch fetch: %w", err)
	}

	log, err := decodeLog(userID, raw)
	if err != nil {
		return err
	}

	touched := log.Touch(now)
	if len(touched) == 0 {
		// Empty logs stay untouched; nothing to write.
		return tx.Commit(ctx)
	}

	encoded, err := json.Marshal(touched)
	if err != nil {
		return fmt.Errorf("activity: encode log: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE forum_activity SET entries = $2 WHERE user_id = $1`,
		userID, encoded,
	); err != nil {
		return fmt.Errorf("activity: postgres touch save: %w", err)
	}

	return tx.Commit(ctx)
}

func decodeLog(userID uuid.UUID, raw []byte) (Log, error) {
	var log Log
	if err := json.Unmarshal(raw, &log); err != nil {
		return nil, fmt.Errorf("activity: corrupt log for %s: %w", userID, err)
	}
	return log, nil
}
