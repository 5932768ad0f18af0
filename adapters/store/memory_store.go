package store

import (
	"context"
	"sync"
	"time"

	"github.com/penpalhq/warden/ports"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore is an in-memory implementation of the Store interface,
// intended for tests and local development.
type MemoryStore struct {
	entries map[string]entry
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
	}
}

// Set stores a key with a value and expiration time
func (s *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := time.Now().Add(ttl)
	s.entries[key] = entry{value: value, expiresAt: expiresAt}

	// Reclaim the slot once the TTL passes
	go func() {
		time.Sleep(ttl)

		s.mu.Lock()
		defer s.mu.Unlock()

		// Only delete if the entry hasn't been overwritten since
		if e, exists := s.entries[key]; exists && !e.expiresAt.After(expiresAt) {
			delete(s.entries, key)
		}
	}()

	return nil
}

// Get retrieves a value by key. Expiry is re-checked at read time so an
// entry whose cleanup hasn't run yet is still reported as absent.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.entries[key]
	if !exists {
		return "", ports.ErrKeyNotFound
	}
	if time.Now().After(e.expiresAt) {
		return "", ports.ErrKeyNotFound
	}
	return e.value, nil
}

// Delete removes a key. Deleting an absent key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}
