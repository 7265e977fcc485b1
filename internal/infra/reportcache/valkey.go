package reportcache

import (
	"context"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/primalpath/report-engine/internal/domain/report"
)

// ValkeyCache fronts object storage with a Valkey-compatible database so hot
// reports skip the bucket round trip.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "reports:html"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

// Get returns the cached HTML if present.
func (c *ValkeyCache) Get(ctx context.Context, key string) (string, bool, error) {
	cmd := c.client.B().Get().Key(c.entryKey(key)).Build()
	html, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return html, true, nil
}

// Set stores the HTML with the given TTL.
func (c *ValkeyCache) Set(ctx context.Context, key, html string, ttl time.Duration) error {
	builder := c.client.B().Set().Key(c.entryKey(key)).Value(html)
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) entryKey(key string) string {
	return c.prefix + ":" + key
}

var _ report.HTMLCache = (*ValkeyCache)(nil)
