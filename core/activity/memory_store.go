package activity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory storage.
type MemoryStore struct {
	mu   sync.RWMutex
	logs map[uuid.UUID]Log
}

// NewMemoryStore creates a new in-memory activity store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		logs: make(map[uuid.UUID]Log),
	}
}

// Fetch returns a copy of the user's log, or ErrNoLog.
func (ms *MemoryStore) Fetch(_ context.Context, userID uuid.UUID) (Log, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	log, ok := ms.logs[userID]
	if !ok {
		return nil, ErrNoLog
	}
	return log.Clone(), nil
}

// Save persists the user's log.
func (ms *MemoryStore) Save(_ context.Context, userID uuid.UUID, log Log) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.logs[userID] = log.Clone()
	return nil
}
