package session

import (
	"context"
	"sync"
)

// MemoryBackend implements Backend with an in-process map. Expired
// sessions are repaired lazily through the canary on next touch, so no
// background sweep runs here.
type MemoryBackend struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryBackend creates an in-memory session backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		records: make(map[string]Record),
	}
}

func (m *MemoryBackend) Get(ctx context.Context, id string) (Record, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	return rec, ok, nil
}

func (m *MemoryBackend) Put(ctx context.Context, id string, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id] = rec
	return nil
}

func (m *MemoryBackend) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// Len returns the number of stored rows
func (m *MemoryBackend) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}
