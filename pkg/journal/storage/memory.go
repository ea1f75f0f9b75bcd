package storage

import (
	"context"
	"sort"
	"sync"

	"datawarden-hq/vigil/pkg/journal"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// Entries do not survive a restart; use it for testing or when journaling
// is wanted only for the lifetime of the process.
type MemoryStorage struct {
	entries map[string]*journal.Entry
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]*journal.Entry),
	}
}

// Store persists a journal entry to memory.
func (s *MemoryStorage) Store(ctx context.Context, entry *journal.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Create a copy to avoid mutation
	entryCopy := *entry
	s.entries[entry.ID] = &entryCopy

	return nil
}

// Query retrieves entries matching the filters, newest first.
func (s *MemoryStorage) Query(ctx context.Context, query *journal.Query) ([]*journal.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*journal.Entry{}
	for _, entry := range s.entries {
		if s.matchesQuery(entry, query) {
			entryCopy := *entry
			results = append(results, &entryCopy)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Time.After(results[j].Time)
	})

	// Apply pagination
	if query.Offset >= len(results) {
		return []*journal.Entry{}, nil
	}
	results = results[query.Offset:]

	if query.Limit > 0 && len(results) > query.Limit {
		results = results[:query.Limit]
	}

	return results, nil
}

// Count returns the number of entries matching the filters.
func (s *MemoryStorage) Count(ctx context.Context, query *journal.Query) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, entry := range s.entries {
		if s.matchesQuery(entry, query) {
			count++
		}
	}

	return count, nil
}

// Delete removes entries matching the filters.
func (s *MemoryStorage) Delete(ctx context.Context, query *journal.Query) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, entry := range s.entries {
		if s.matchesQuery(entry, query) {
			delete(s.entries, id)
			deleted++
		}
	}

	return deleted, nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]*journal.Entry)
	return nil
}

// matchesQuery checks if an entry matches the query filters.
func (s *MemoryStorage) matchesQuery(entry *journal.Entry, query *journal.Query) bool {
	if query.Since != nil && entry.Time.Before(*query.Since) {
		return false
	}
	if query.Until != nil && entry.Time.After(*query.Until) {
		return false
	}
	if query.App != "" && entry.App != query.App {
		return false
	}
	if query.Outcome != "" && entry.Outcome != query.Outcome {
		return false
	}
	return true
}

// Size returns the number of entries in storage (for testing).
func (s *MemoryStorage) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
