// Package cache memoizes loaded ledger snapshots per source path.
package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/salesboard/backend/internal/domain/ledger"
)

// SnapshotLoader loads a ledger snapshot from a source path.
type SnapshotLoader interface {
	Load(ctx context.Context, path string) (*ledger.Snapshot, error)
}

// Stats reports cache behavior counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Loads  int64 `json:"loads"`
}

// LedgerCache memoizes snapshots keyed on source path. A path is loaded once
// and then served from memory until Refresh or Invalidate is called; there is
// no expiry. Concurrent first reads of the same path trigger a single load.
type LedgerCache struct {
	loader SnapshotLoader
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]*cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

type cacheEntry struct {
	mu   sync.Mutex
	snap *ledger.Snapshot
}

// Option is a functional option for LedgerCache configuration
type Option func(*LedgerCache)

// WithLogger sets the cache logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *LedgerCache) {
		c.logger = logger
	}
}

// NewLedgerCache creates a new LedgerCache backed by the given loader
func NewLedgerCache(loader SnapshotLoader, opts ...Option) *LedgerCache {
	c := &LedgerCache{
		loader:  loader,
		logger:  zap.NewNop(),
		entries: make(map[string]*cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile-time interface checks
var _ SnapshotLoader = (*LedgerCache)(nil)

// Load returns the snapshot for path, loading it on first use.
func (c *LedgerCache) Load(ctx context.Context, path string) (*ledger.Snapshot, error) {
	e := c.entry(path)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.snap != nil {
		c.hits.Add(1)
		return e.snap, nil
	}

	c.misses.Add(1)
	return c.fill(ctx, path, e)
}

// Refresh discards any cached snapshot for path and loads it again.
func (c *LedgerCache) Refresh(ctx context.Context, path string) (*ledger.Snapshot, error) {
	e := c.entry(path)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.snap = nil
	return c.fill(ctx, path, e)
}

// Invalidate drops the cached snapshot for path without reloading it.
func (c *LedgerCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
	c.logger.Debug("ledger cache invalidated", zap.String("path", path))
}

// Stats returns hit/miss/load counters.
func (c *LedgerCache) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Loads:  c.loads.Load(),
	}
}

func (c *LedgerCache) entry(path string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[path]
	if !ok {
		e = &cacheEntry{}
		c.entries[path] = e
	}
	return e
}

// fill loads the snapshot while holding the entry lock, so concurrent
// requests for the same path wait for one load instead of racing.
func (c *LedgerCache) fill(ctx context.Context, path string, e *cacheEntry) (*ledger.Snapshot, error) {
	c.loads.Add(1)
	snap, err := c.loader.Load(ctx, path)
	if err != nil {
		c.logger.Error("ledger load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}

	e.snap = snap
	c.logger.Info("ledger snapshot cached",
		zap.String("path", path),
		zap.Int("rows", len(snap.Rows)),
		zap.Int("undated_rows", snap.UndatedRows),
		zap.Bool("customer_type_available", snap.CustomerTypeAvailable))
	return snap, nil
}
