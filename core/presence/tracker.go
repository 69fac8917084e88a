package presence

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/forumkit/core/identity"
)

// Tracker maintains the per-user online state machine across the request
// lifecycle. Each user is either untracked or tracked; StartTracking moves a
// user to tracked, UpdateTracker keeps them there, and StopTracking moves
// them back when they go anonymous.
type Tracker struct {
	store  Store
	clock  func() time.Time
	logger *slog.Logger
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithTrackerLogger sets the logger for best-effort failures.
func WithTrackerLogger(logger *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTrackerClock overrides the time source. Intended for tests.
func WithTrackerClock(clock func() time.Time) TrackerOption {
	return func(t *Tracker) {
		if clock != nil {
			t.clock = clock
		}
	}
}

// NewTracker creates a tracker over the given store.
func NewTracker(store Store, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		store:  store,
		clock:  time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Track returns the record for an authenticated principal, creating one on
// first sight. This is the request-start hook: the returned record is the
// per-request handle the response hook acts on.
func (t *Tracker) Track(ctx context.Context, p identity.Principal) (Record, error) {
	rec, err := t.store.Get(ctx, p.ID)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Record{}, fmt.Errorf("presence: fetch record: %w", err)
	}

	return t.StartTracking(ctx, p)
}

// StartTracking transitions a user from untracked to tracked. Creation is
// idempotent; when a concurrent request wins the race this degrades to a
// refresh and both requests observe a single record.
func (t *Tracker) StartTracking(ctx context.Context, p identity.Principal) (Record, error) {
	rec := Record{
		UserID:   p.ID,
		LastSeen: t.clock(),
		Hidden:   p.Hidden,
	}

	if err := t.store.Start(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("presence: start tracking: %w", err)
	}

	return rec, nil
}

// UpdateTracker refreshes the record's last-seen timestamp; the user stays
// tracked. A record deleted in the meantime is not recreated.
func (t *Tracker) UpdateTracker(ctx context.Context, rec Record) {
	if err := t.store.Update(ctx, rec.UserID, t.clock()); err != nil && !errors.Is(err, ErrNotFound) {
		t.logger.ErrorContext(ctx, "presence: update tracker failed", "user_id", rec.UserID, "error", err)
	}
}

// StopTracking transitions a user from tracked to untracked by deleting the
// record. Called when the user observed at request start ended the request
// anonymous (logout, ban or idle timeout).
func (t *Tracker) StopTracking(ctx context.Context, rec Record) {
	if err := t.store.Delete(ctx, rec.UserID); err != nil {
		t.logger.ErrorContext(ctx, "presence: stop tracking failed", "user_id", rec.UserID, "error", err)
	}
}
