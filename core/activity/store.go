package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence interface for per-user activity logs.
type Store interface {
	// Fetch returns the user's log, or ErrNoLog when the user has no
	// activity history at all. An existing empty log is returned as-is.
	Fetch(ctx context.Context, userID uuid.UUID) (Log, error)

	// Save persists the user's log.
	Save(ctx context.Context, userID uuid.UUID, log Log) error
}

// Toucher is an optional Store upgrade. Stores that can apply the
// append-or-replace transition atomically (for example under a row lock)
// implement it; the Recorder then delegates instead of doing a
// read-modify-write, which extends lost-update protection across processes.
type Toucher interface {
	Touch(ctx context.Context, userID uuid.UUID, now time.Time) error
}
