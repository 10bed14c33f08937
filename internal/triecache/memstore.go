package triecache

import "sync"

// MemStore is an in-memory Store used by tests, grounded on
// original_source/core/storage/src/adapter/memory.rs's MemoryAdapter.
type MemStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemStore constructs an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string][]byte)}
}

func (m *MemStore) Get(key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *MemStore) Contains(key []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[string(key)]
	return ok, nil
}

func (m *MemStore) Put(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.data[string(key)] = v
	return nil
}

func (m *MemStore) PutBatch(keys, values [][]byte) error {
	if len(keys) != len(values) {
		return ErrLengthMismatch
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, key := range keys {
		v := make([]byte, len(values[i]))
		copy(v, values[i])
		m.data[string(key)] = v
	}
	return nil
}

func (m *MemStore) Close() error { return nil }
