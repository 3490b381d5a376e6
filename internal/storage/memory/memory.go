// Package memory is an in-process storage.Slot. It backs tests and the
// "memory" storage driver, where nothing should survive a restart.
package memory

import (
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
)

// Memory keeps every slot in a map guarded by a mutex.
// Payloads are copied on the way in and out.
type Memory struct {
	mu    sync.Mutex
	slots map[string][]byte
}

var _ storage.Slot = (*Memory)(nil)

// New returns an empty Memory.
func New() *Memory {
	return &Memory{slots: make(map[string][]byte)}
}

// Get returns a copy of the payload under key, or storage.ErrNotFound.
func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	payload, ok := m.slots[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}

// Set stores a copy of payload under key.
func (m *Memory) Set(key string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.slots[key] = append([]byte(nil), payload...)
	return nil
}
