package presence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgresDB is the subset of pgx connection behavior the store needs.
// Both *pgxpool.Pool and pgx.Tx satisfy it.
type PostgresDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore implements Store on the forum_online table. The unique
// constraint on user_id plus the upsert in Start make record creation safe
// under concurrent first sight: one insert wins, the rest degrade to a
// last_seen refresh.
type PostgresStore struct {
	db PostgresDB
}

// NewPostgresStore creates a presence store backed by the given database.
func NewPostgresStore(db PostgresDB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Get returns the user's record or ErrNotFound.
func (ps *PostgresStore) Get(ctx context.Context, userID uuid.UUID) (Record, error) {
	var rec Record
	err := ps.db.QueryRow(ctx,
		`SELECT user_id, last_seen, is_hidden FROM forum_online WHERE user_id = $1`,
		userID,
	).Scan(&rec.UserID, &rec.LastSeen, &rec.Hidden)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, fmt.Errorf("presence: postgres get: %w", err)
	}
	return rec, nil
}

// Start creates the record, or refreshes last_seen when it already exists.
func (ps *PostgresStore) Start(ctx context.Context, rec Record) error {
	_, err := ps.db.Exec(ctx,
		`INSERT INTO forum_online (user_id, last_seen, is_hidden)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET last_seen = EXCLUDED.last_seen`,
		rec.UserID, rec.LastSeen.UTC(), rec.Hidden,
	)
	if err != nil {
		return fmt.Errorf("presence: postgres start: %w", err)
	}
	return nil
}

// Update refreshes the record's last_seen.
func (ps *PostgresStore) Update(ctx context.Context, userID uuid.UUID, lastSeen time.Time) error {
	tag, err := ps.db.Exec(ctx,
		`UPDATE forum_online SET last_seen = $2 WHERE user_id = $1`,
		userID, lastSeen.UTC(),
	)
	if err != nil {
		return fmt.Errorf("presence: postgres update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the record if present.
func (ps *PostgresStore) Delete(ctx context.Context, userID uuid.UUID) error {
	_, err := ps.db.Exec(ctx, `DELETE FROM forum_online WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("presence: postgres delete: %w", err)
	}
	return nil
}

// List returns all records, most recently seen first.
func (ps *PostgresStore) List(ctx context.Context) ([]Record, error) {
	rows, err := ps.db.Query(ctx,
		`SELECT user_id, last_seen, is_hidden FROM forum_online ORDER BY last_seen DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("presence: postgres list: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.UserID, &rec.LastSeen, &rec.Hidden); err != nil {
			return nil, fmt.Errorf("presence: postgres list scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("presence: postgres list rows: %w", err)
	}

	return records, nil
}
