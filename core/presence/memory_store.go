package presence

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store using in-memory storage. Suitable for tests
// and single-process deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryStore creates a new in-memory presence store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[uuid.UUID]Record),
	}
}

// Get returns the user's record or ErrNotFound.
func (ms *MemoryStore) Get(_ context.Context, userID uuid.UUID) (Record, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	rec, ok := ms.records[userID]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Start creates the record, refreshing LastSeen if a concurrent request
// created it first. The map write is guarded, so concurrent first sight
// converges on a single record.
func (ms *MemoryStore) Start(_ context.Context, rec Record) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if existing, ok := ms.records[rec.UserID]; ok {
		existing.LastSeen = rec.LastSeen
		ms.records[rec.UserID] = existing
		return nil
	}

	ms.records[rec.UserID] = rec
	return nil
}

// Update refreshes the record's LastSeen.
func (ms *MemoryStore) Update(_ context.Context, userID uuid.UUID, lastSeen time.Time) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	rec, ok := ms.records[userID]
	if !ok {
		return ErrNotFound
	}

	rec.LastSeen = lastSeen
	ms.records[userID] = rec
	return nil
}

// Delete removes the record if present.
func (ms *MemoryStore) Delete(_ context.Context, userID uuid.UUID) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.records, userID)
	return nil
}

// List returns all records, most recently seen first.
func (ms *MemoryStore) List(_ context.Context) ([]Record, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	records := make([]Record, 0, len(ms.records))
	for _, rec := range ms.records {
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].LastSeen.After(records[j].LastSeen)
	})

	return records, nil
}
