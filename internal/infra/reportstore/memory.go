package reportstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/primalpath/report-engine/internal/domain/report"
)

// MemoryStorage keeps report documents in memory. Useful for tests and local dev.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string]storedBlob
}

type storedBlob struct {
	data     []byte
	mimeType string
}

// NewMemoryStorage constructs storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string]storedBlob)}
}

// Put stores the document.
func (s *MemoryStorage) Put(_ context.Context, key string, data []byte, mimeType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([]byte, len(data))
	copy(copied, data)
	s.blobs[key] = storedBlob{data: copied, mimeType: mimeType}
	return nil
}

// Get returns the stored document bytes.
func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	blob, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", key)
	}
	return blob.data, nil
}

var _ report.ObjectStorage = (*MemoryStorage)(nil)
