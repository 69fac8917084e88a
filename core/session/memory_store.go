package session

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory storage.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]Session
	byToken  map[string]uuid.UUID
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[uuid.UUID]Session),
		byToken:  make(map[string]uuid.UUID),
	}
}

// GetByID returns a copy of the session or ErrNotFound.
func (ms *MemoryStore) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	sess, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

// GetByToken returns a copy of the session or ErrNotFound.
func (ms *MemoryStore) GetByToken(_ context.Context, token string) (*Session, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	id, ok := ms.byToken[token]
	if !ok {
		return nil, ErrNotFound
	}

	sess, ok := ms.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSession(sess), nil
}

// Save persists the session, replacing any previous token index entry.
func (ms *MemoryStore) Save(_ context.Context, sess *Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if prev, ok := ms.sessions[sess.ID]; ok && prev.Token != sess.Token {
		delete(ms.byToken, prev.Token)
	}

	stored := *cloneSession(*sess)
	ms.sessions[sess.ID] = stored
	ms.byToken[sess.Token] = sess.ID
	return nil
}

// Delete removes the session if present.
func (ms *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if sess, ok := ms.sessions[id]; ok {
		delete(ms.byToken, sess.Token)
		delete(ms.sessions, id)
	}
	return nil
}

// DeleteExpired removes all expired sessions.
func (ms *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var removed int64
	for id, sess := range ms.sessions {
		if sess.IsExpired() {
			delete(ms.byToken, sess.Token)
			delete(ms.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// cloneSession copies the session including its values map, so callers never
// share mutable state with the store.
func cloneSession(sess Session) *Session {
	out := sess
	if sess.Values != nil {
		out.Values = make(map[string]string, len(sess.Values))
		for k, v := range sess.Values {
			out.Values[k] = v
		}
	}
	return &out
}
