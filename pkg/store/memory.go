package store

import (
	"context"
	"sync"
)

// MemoryBackend keeps totals in memory with no persistence. All data is
// lost when the process exits; it exists for tests and ephemeral runs.
//
// MemoryBackend is thread-safe and supports concurrent access using
// sync.RWMutex.
type MemoryBackend struct {
	totals map[string]uint64
	mu     sync.RWMutex
}

// NewMemoryBackend creates a new in-memory storage backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{totals: make(map[string]uint64)}
}

// Load returns a copy of the stored totals.
func (m *MemoryBackend) Load(_ context.Context) (map[string]uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	totals := make(map[string]uint64, len(m.totals))
	for app, total := range m.totals {
		totals[app] = total
	}
	return totals, nil
}

// Save replaces the stored totals with a copy of the input.
func (m *MemoryBackend) Save(_ context.Context, totals map[string]uint64) error {
	fresh := make(map[string]uint64, len(totals))
	for app, total := range totals {
		fresh[app] = total
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.totals = fresh
	return nil
}

// Close releases any resources held by the backend.
func (m *MemoryBackend) Close() error {
	return nil
}

// Size returns the current number of stored totals.
// This is useful for monitoring and testing.
func (m *MemoryBackend) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.totals)
}
