package presence

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store defines the persistence interface for presence records.
// Implementations must handle concurrent access safely: in particular Start
// must be idempotent, so that N concurrent first-sight requests for the same
// user leave exactly one record behind.
type Store interface {
	// Get returns the user's record or ErrNotFound.
	Get(ctx context.Context, userID uuid.UUID) (Record, error)

	// Start creates the record, or refreshes LastSeen when a concurrent
	// request created it first.
	Start(ctx context.Context, rec Record) error

	// Update refreshes the record's LastSeen. Returns ErrNotFound when the
	// record no longer exists.
	Update(ctx context.Context, userID uuid.UUID, lastSeen time.Time) error

	// Delete removes the record. Deleting a missing record is a no-op.
	Delete(ctx context.Context, userID uuid.UUID) error

	// List returns all records, most recently seen first.
	List(ctx context.Context) ([]Record, error)
}
