// Package registry stores metadata about Hawk key ids. It answers
// "who owns this id" for application code running behind a guard; it
// makes no authentication decision and never holds the shared secret.
package registry

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrKeyNotFound is returned when no key with the given id exists.
var ErrKeyNotFound = errors.New("registry: key not found")

// Key describes the metadata stored for one Hawk key id.
type Key struct {
	ID        string
	Owner     string
	Algorithm string
	CreatedAt time.Time
}

// Registry looks up key metadata by Hawk key id.
type Registry interface {
	GetKey(ctx context.Context, id string) (*Key, error)
	PutKey(ctx context.Context, key *Key) error
	RemoveKey(ctx context.Context, id string) error
}

// MemoryRegistry is a map-backed Registry, safe for concurrent use.
// Useful for tests and single-process deployments.
type MemoryRegistry struct {
	mu   sync.RWMutex
	keys map[string]Key
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{keys: make(map[string]Key)}
}

// GetKey returns a copy of the stored key.
func (m *MemoryRegistry) GetKey(ctx context.Context, id string) (*Key, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.keys[id]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return &key, nil
}

// PutKey stores or replaces a key.
func (m *MemoryRegistry) PutKey(ctx context.Context, key *Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.keys[key.ID] = *key
	return nil
}

// RemoveKey deletes a key. Removing an unknown id is not an error.
func (m *MemoryRegistry) RemoveKey(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.keys, id)
	return nil
}
