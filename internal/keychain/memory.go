package keychain

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore is an in-memory implementation of Store for testing and for
// platforms without a system keychain.
type MemoryStore struct {
	mu      sync.RWMutex
	secrets map[string][]byte
	locked  bool
}

// NewMemoryStore creates a new in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{secrets: make(map[string][]byte)}
}

// SetLocked simulates the device lock: while locked, reads and writes fail
// with ErrLocked.
func (s *MemoryStore) SetLocked(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return fmt.Errorf("%w: %s", ErrLocked, key)
	}
	clear(s.secrets[key])
	s.secrets[key] = bytes.Clone(value)
	return nil
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, key)
	}
	val, ok := s.secrets[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return bytes.Clone(val), nil
}

func (s *MemoryStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.secrets))
	for k := range s.secrets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locked {
		return fmt.Errorf("%w: %s", ErrLocked, key)
	}
	clear(s.secrets[key])
	delete(s.secrets, key)
	return nil
}
