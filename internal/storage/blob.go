// ABOUTME: BlobStore interface for the persisted snapshot and an in-memory backend.
// ABOUTME: Backends only move opaque bytes under a key; encoding belongs to the store.
package storage

import (
	"errors"
	"sync"
)

// ErrNotExist is returned by Get when nothing is stored under the key.
var ErrNotExist = errors.New("blob does not exist")

// DefaultKey is the key the snapshot is stored under.
const DefaultKey = "mtbmaint_data"

// BlobStore is a key-value store over bytes.
// This interface allows swapping implementations (e.g., for testing).
type BlobStore interface {
	// Get returns the bytes stored under key, or ErrNotExist.
	Get(key string) ([]byte, error)
	// Set replaces the bytes stored under key.
	Set(key string, data []byte) error
	Close() error
}

// MemoryBlobs keeps blobs in process memory.
type MemoryBlobs struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobs returns an empty in-memory store.
func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{blobs: make(map[string][]byte)}
}

// Get returns a copy of the stored bytes.
func (m *MemoryBlobs) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotExist
	}
	return append([]byte(nil), data...), nil
}

// Set stores a copy of data.
func (m *MemoryBlobs) Set(key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

// Close is a no-op.
func (m *MemoryBlobs) Close() error { return nil }
