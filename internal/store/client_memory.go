package store

import (
	"bytes"
	"context"
	"sync"
)

// memorySlotStorage is a process-local [KeyValueStorage]. Everything is lost
// when the process exits.
type memorySlotStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemorySlotStorage returns an empty in-memory [KeyValueStorage].
func NewMemorySlotStorage() KeyValueStorage {
	return &memorySlotStorage{slots: make(map[string][]byte)}
}

func (m *memorySlotStorage) Get(ctx context.Context, slot string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "get", Slot: slot, Err: err}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[slot]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return bytes.Clone(value), nil
}

func (m *memorySlotStorage) Set(ctx context.Context, slot string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "set", Slot: slot, Err: err}
	}
	if len(value) == 0 {
		return m.Remove(ctx, slot)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[slot] = bytes.Clone(value)
	return nil
}

func (m *memorySlotStorage) Remove(ctx context.Context, slot string) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "remove", Slot: slot, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.slots[slot]; ok {
		clear(old)
		delete(m.slots, slot)
	}
	return nil
}
