package reportrepo

import (
	"context"
	"sync"

	"github.com/primalpath/report-engine/internal/domain/report"
)

// MemoryRepository provides an in-memory report store for tests/dev.
type MemoryRepository struct {
	mu          sync.RWMutex
	records     map[string]report.Record
	digestIndex map[string]string
}

// NewMemoryRepository constructs a new in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records:     make(map[string]report.Record),
		digestIndex: make(map[string]string),
	}
}

// Create stores the report record.
func (r *MemoryRepository) Create(_ context.Context, rec report.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := rec.ID.String()
	r.records[id] = rec
	r.digestIndex[rec.TokenDigest] = id
	return nil
}

// FindByTokenDigest returns the record whose access token hashes to digest.
func (r *MemoryRepository) FindByTokenDigest(_ context.Context, digest string) (report.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.digestIndex[digest]
	if !ok {
		return report.Record{}, false, nil
	}
	rec, ok := r.records[id]
	return rec, ok, nil
}

var _ report.Repository = (*MemoryRepository)(nil)
