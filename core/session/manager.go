package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle including creation, retrieval, and
// expiration. The touch interval determines how often session expiration is
// automatically extended on access, reducing write operations to the store.
type Manager struct {
	store         Store
	ttl           time.Duration
	touchInterval time.Duration
}

// NewManager creates a session manager over the given store.
func NewManager(store Store, opts ...Option) *Manager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Manager{
		store:         store,
		ttl:           cfg.TTL,
		touchInterval: cfg.TouchInterval,
	}
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager) GetByID(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrExpired
	}

	return *sess, nil
}

// Load returns the session for the given token, or a fresh anonymous session
// when the token is empty, unknown, or expired. The fresh session is marked
// modified so Store persists it.
func (m *Manager) Load(ctx context.Context, token string, params NewSessionParams) (Session, error) {
	if token != "" {
		sess, err := m.store.GetByToken(ctx, token)
		switch {
		case err == nil && !sess.IsExpired():
			return *sess, nil
		case err != nil && !errors.Is(err, ErrNotFound):
			return Session{}, err
		}
		// Unknown or expired token falls through to a fresh session.
	}

	return New(params, m.ttl)
}

// Store handles all session persistence based on session state: sessions
// marked for deletion are removed, modified sessions are saved, and untouched
// sessions produce no writes.
func (m *Manager) Store(ctx context.Context, sess Session) error {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return errors.Join(ErrDeleteSession, err)
		}
		return nil
	}

	sess.Touch(m.ttl, m.touchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return errors.Join(ErrSaveSession, err)
		}
	}

	return nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent session table growth.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// GetTTL returns the session time-to-live duration.
func (m *Manager) GetTTL() time.Duration {
	return m.ttl
}
