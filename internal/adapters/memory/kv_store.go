// Package memory contains an in-process KV store, used when nothing should outlive the process.
package memory

import (
	"context"
	"sync"

	"github.com/example/campuscare/internal/ports/secondary"
)

// KVStore implements secondary.KVStore with a map.
type KVStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKVStore creates an empty store.
func NewKVStore() *KVStore {
	return &KVStore{values: make(map[string][]byte)}
}

// Load returns a copy of the value stored under key.
func (s *KVStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Save stores a copy of value under key.
func (s *KVStore) Save(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

// Close is a no-op.
func (s *KVStore) Close() error {
	return nil
}

// Ensure KVStore implements the interface
var _ secondary.KVStore = (*KVStore)(nil)
