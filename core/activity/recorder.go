package activity

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/forumkit/core/identity"
)

// Recorder appends to per-user activity logs after the response has been
// produced. Recording is best-effort by policy: a user without a log, a
// malformed principal or a store failure is logged and swallowed, and the
// response reaches the client unmodified.
type Recorder struct {
	store  Store
	clock  func() time.Time
	logger *slog.Logger
	locks  keyedMutex
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithRecorderLogger sets the logger for swallowed failures.
func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRecorderClock overrides the time source. Intended for tests.
func WithRecorderClock(clock func() time.Time) RecorderOption {
	return func(r *Recorder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(store Store, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		store:  store,
		clock:  time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Record stamps the principal's activity log with the current time, which is
// the response-finalize time: sessions are stamped on exit, not entry.
//
// Concurrent requests for the same user serialize on a per-user lock, so two
// simultaneous touches can not overwrite each other's append. Stores that
// implement Toucher extend that guarantee across processes.
func (r *Recorder) Record(ctx context.Context, p identity.Principal) {
	if p.IsAnonymous() {
		return
	}

	now := r.clock()

	unlock := r.locks.lock(p.ID)
	defer unlock()

	if toucher, ok := r.store.(Toucher); ok {
		if err := toucher.Touch(ctx, p.ID, now); err != nil && !errors.Is(err, ErrNoLog) {
			r.logger.ErrorContext(ctx, "activity: touch failed", "user", p.String(), "error", err)
		}
		return
	}

	log, err := r.store.Fetch(ctx, p.ID)
	if err != nil {
		if !errors.Is(err, ErrNoLog) {
			r.logger.ErrorContext(ctx, "activity: fetch failed", "user", p.String(), "error", err)
		}
		return
	}

	touched := log.Touch(now)
	if len(touched) == 0 {
		// Brand-new user with an empty history: skip entirely.
		return
	}

	if err := r.store.Save(ctx, p.ID, touched); err != nil {
		r.logger.ErrorContext(ctx, "activity: save failed", "user", p.String(), "error", err)
	}
}

// keyedMutex serializes work per user ID. Entries are reference-counted and
// removed as soon as the last holder releases, so the map stays bounded by
// in-flight requests.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func (km *keyedMutex) lock(id uuid.UUID) func() {
	km.mu.Lock()
	if km.locks == nil {
		km.locks = make(map[uuid.UUID]*userLock)
	}
	l, ok := km.locks[id]
	if !ok {
		l = &userLock{}
		km.locks[id] = l
	}
	l.refs++
	km.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		km.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(km.locks, id)
		}
		km.mu.Unlock()
	}
}
