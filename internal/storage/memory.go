package storage

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// MemoryKV keeps values in process memory. A positive maxBytes caps the total
// size of all stored values.
type MemoryKV struct {
	mu       sync.Mutex
	values   map[string][]byte
	maxBytes int
}

func NewMemoryKV(maxBytes int) *MemoryKV {
	return &MemoryKV{values: map[string][]byte{}, maxBytes: maxBytes}
}

func (m *MemoryKV) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(v), nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.maxBytes > 0 {
		used := len(value)
		for k, v := range m.values {
			if k != key {
				used += len(v)
			}
		}
		if used > m.maxBytes {
			return fmt.Errorf("%w: %d bytes over a %d byte limit", ErrQuotaExceeded, used, m.maxBytes)
		}
	}
	m.values[key] = slices.Clone(value)
	return nil
}

func (m *MemoryKV) Close() error {
	return nil
}
