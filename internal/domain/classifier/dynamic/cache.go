package dynamic

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/FACorreiaa/paynotify/pkg/observability"
)

// DefaultCacheTTL is how long a loaded pattern snapshot stays fresh.
const DefaultCacheTTL = 5 * time.Minute

// Cache holds the in-memory pattern snapshot with time-based expiry.
//
// Reload failures keep the previous snapshot: a transient store outage must
// not disable classification. Only a cold cache degrades to an empty set.
// Concurrent requests hitting a stale cache may race and issue duplicate
// reloads; the reload is a read-only query and the last swap wins, which is
// cheaper than serializing every request behind one reload.
type Cache struct {
	repo   PatternRepository
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger

	mu       sync.RWMutex
	snapshot []*Pattern
	loadedAt time.Time
	warm     bool
}

// NewCache creates a pattern cache; a non-positive ttl gets the default.
func NewCache(repo PatternRepository, ttl time.Duration, logger *slog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		repo:   repo,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// Get returns the current snapshot, reloading it first when cold or stale.
// The returned slice must be treated as read-only.
func (c *Cache) Get(ctx context.Context) []*Pattern {
	c.mu.RLock()
	fresh := c.warm && c.now().Sub(c.loadedAt) <= c.ttl
	snapshot := c.snapshot
	c.mu.RUnlock()

	if fresh {
		return snapshot
	}

	if err := c.Refresh(ctx); err != nil {
		c.mu.RLock()
		defer c.mu.RUnlock()
		if c.warm {
			c.logger.Warn("pattern reload failed, serving stale cache", "error", err)
			return c.snapshot
		}
		c.logger.Warn("pattern reload failed with cold cache, no dynamic patterns available", "error", err)
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Refresh reloads the snapshot from the store, replacing it wholesale.
func (c *Cache) Refresh(ctx context.Context) error {
	patterns, err := c.repo.ListActive(ctx)
	if err != nil {
		observability.PatternCacheRefreshesTotal.WithLabelValues("error").Inc()
		return err
	}

	c.mu.Lock()
	c.snapshot = patterns
	c.loadedAt = c.now()
	c.warm = true
	c.mu.Unlock()

	observability.PatternCacheRefreshesTotal.WithLabelValues("ok").Inc()
	c.logger.Debug("pattern cache refreshed", "patterns", len(patterns))
	return nil
}

// Invalidate forces the next Get to reload.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.loadedAt = time.Time{}
	c.mu.Unlock()
}
