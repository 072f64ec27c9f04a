package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Memory keeps slots in-process. Values go through a JSON round-trip so
// callers get copies, never aliases into the map.
type Memory struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, out interface{}) error {
	m.mu.RLock()
	data, ok := m.slots[key]
	m.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal slot %s failed: %w", key, err)
	}
	return nil
}

func (m *Memory) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal slot %s failed: %w", key, err)
	}

	m.mu.Lock()
	m.slots[key] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.slots, key)
	m.mu.Unlock()
	return nil
}
