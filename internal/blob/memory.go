package blob

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStorage keeps blobs in a map. It backs tests and demo runs.
type MemoryStorage struct {
	mu       sync.RWMutex
	objects  map[string][]byte
	BaseURL  string
	MaxBytes int64
}

// NewMemoryStorage creates an empty MemoryStorage.
// maxBytes <= 0 falls back to DefaultMaxBytes.
func NewMemoryStorage(maxBytes int64) *MemoryStorage {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &MemoryStorage{
		objects:  make(map[string][]byte),
		BaseURL:  "https://blobs.invalid",
		MaxBytes: maxBytes,
	}
}

func (m *MemoryStorage) Upload(_ context.Context, data []byte, objectPath string) (string, error) {
	if int64(len(data)) > m.MaxBytes {
		return "", ErrFileTooLarge
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	m.objects[objectPath] = cp

	return fmt.Sprintf("%s/%s", m.BaseURL, objectPath), nil
}

func (m *MemoryStorage) Delete(_ context.Context, objectPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[objectPath]; !ok {
		return ErrNotFound
	}
	delete(m.objects, objectPath)
	return nil
}

// Get returns a stored blob, for test assertions.
func (m *MemoryStorage) Get(objectPath string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[objectPath]
	return data, ok
}

// Len reports how many blobs are stored.
func (m *MemoryStorage) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ Storage = (*MemoryStorage)(nil)
