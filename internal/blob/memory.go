package blob

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"shelf-go/internal/shelf"
)

// MemoryStore is an in-memory implementation of the BlobStore interface.
// It keeps the inventory blob in memory, making it useful for testing.
// This implementation is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	data    []byte
	version int64
	stored  bool
}

// NewMemoryStore creates a new empty in-memory blob store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// PutInventory stores the serialized collection, replacing any previous
// contents.
func (m *MemoryStore) PutInventory(r io.Reader, size int64, version int64) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read inventory: %w", err)
	}
	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = data
	m.version = version
	m.stored = true
	return nil
}

// GetInventory writes the stored collection to w.
func (m *MemoryStore) GetInventory(w io.Writer) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.stored {
		return shelf.ErrNoInventory
	}
	if _, err := io.Copy(w, bytes.NewReader(m.data)); err != nil {
		return fmt.Errorf("failed to write inventory: %w", err)
	}
	return nil
}

// InventoryVersion returns the stored version, 0 if nothing stored yet.
func (m *MemoryStore) InventoryVersion() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.version, nil
}

// ValidateSetup always succeeds for the in-memory store.
func (m *MemoryStore) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryStore implements shelf.BlobStore
var _ shelf.BlobStore = (*MemoryStore)(nil)
