package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mahirash.com/app/internal/schedule"
)

// Cache serves full scans from a snapshot that is refreshed in the
// background. Single-document reads go straight to the wrapped Source.
type Cache struct {
	src    Source
	logger *slog.Logger

	mu       sync.RWMutex
	snapshot []RawProduct
	loaded   bool
	task     *schedule.Task
}

func NewCache(src Source, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{src: src, logger: logger}
}

// Start loads the snapshot and refreshes it every interval until Stop.
func (c *Cache) Start(ctx context.Context, interval time.Duration) {
	_ = c.Refresh(ctx)
	if interval <= 0 {
		return
	}
	c.mu.Lock()
	c.task = schedule.Every(ctx, interval, func(ctx context.Context) { _ = c.Refresh(ctx) })
	c.mu.Unlock()
}

func (c *Cache) Stop() {
	c.mu.Lock()
	t := c.task
	c.task = nil
	c.mu.Unlock()
	t.Stop()
}

// Refresh replaces the snapshot. On failure the previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context) error {
	items, err := c.src.All(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "catalog_refresh_failed", slog.Any("err", err))
		return err
	}
	c.mu.Lock()
	c.snapshot = items
	c.loaded = true
	c.mu.Unlock()
	c.logger.DebugContext(ctx, "catalog_refreshed", slog.Int("products", len(items)))
	return nil
}

func (c *Cache) All(ctx context.Context) ([]RawProduct, error) {
	c.mu.RLock()
	loaded := c.loaded
	items := c.snapshot
	c.mu.RUnlock()
	if !loaded {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
		items = c.snapshot
		c.mu.RUnlock()
	}
	return append([]RawProduct(nil), items...), nil
}

func (c *Cache) Get(ctx context.Context, id string) (RawProduct, error) {
	return c.src.Get(ctx, id)
}
