package storage

import (
	"context"
	"sync"
)

// MemoryGateway keeps documents in process memory.
type MemoryGateway struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{data: make(map[string]string)}
}

func (m *MemoryGateway) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryGateway) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
