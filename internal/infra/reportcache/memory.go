package reportcache

import (
	"context"
	"sync"
	"time"

	"github.com/primalpath/report-engine/internal/domain/report"
)

// MemoryCache keeps rendered HTML in process memory. Useful for tests and
// single-node deployments without Valkey.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	html      string
	expiresAt time.Time
}

// NewMemoryCache constructs the cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get returns the cached HTML if present and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", false, nil
	}
	return entry.html, true, nil
}

// Set stores the HTML with the given TTL. A zero TTL means no expiry.
func (c *MemoryCache) Set(_ context.Context, key, html string, ttl time.Duration) error {
	entry := memoryEntry{html: html}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()
	return nil
}

var _ report.HTMLCache = (*MemoryCache)(nil)
