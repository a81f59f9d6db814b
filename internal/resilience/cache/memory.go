package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a mutex-guarded in-process snapshot store. The zero
// configuration default; also used by tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, nil
	}
	// Copy out so callers never share the stored slice.
	value := make([]byte, len(e.Value))
	copy(value, e.Value)
	return &Entry{Key: e.Key, Value: value, StoredAt: e.StoredAt}, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = Entry{Key: key, Value: stored, StoredAt: time.Now()}
	return nil
}
