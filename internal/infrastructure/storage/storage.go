// internal/infrastructure/storage/storage.go

// Package storage provides the client's persistent key-value store:
// auth token, preference flags, and the last-synced cart snapshot.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned when a key does not exist
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is the persistent key-value contract the client depends on
type KeyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// MemoryStore is an in-process KeyValue used by tests and as a
// fallback when no Redis is configured. Values never expire eagerly;
// expiry is checked on read.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]memoryEntry)}
}

// Get retrieves a value by key
func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	entry, ok := m.values[key]
	m.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.values, key)
		m.mu.Unlock()
		return "", ErrNotFound
	}
	return entry.value, nil
}

// Set stores a key-value pair with an optional TTL (0 means no expiry)
func (m *MemoryStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	m.mu.Lock()
	m.values[key] = entry
	m.mu.Unlock()
	return nil
}

// Delete removes a key
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.values, key)
	m.mu.Unlock()
	return nil
}
