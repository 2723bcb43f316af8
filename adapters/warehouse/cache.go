// Package warehouse - Snapshot cache
package warehouse

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"print-cost/core/pricing"
	"print-cost/core/types"
)

// SnapshotCache holds the most recently loaded catalog with an explicit
// TTL. It is passed into the orchestration call by its owner; nothing in
// the engine reaches for hidden module state, which keeps estimation
// runs testable without clearing singletons.
type SnapshotCache struct {
	mu sync.Mutex

	path   string
	ttl    time.Duration
	logger *zap.Logger

	snapshot    *types.StockCatalogSnapshot
	policy      *pricing.Policy
	refreshedAt time.Time
}

// NewSnapshotCache creates a cache over a catalog file path
func NewSnapshotCache(path string, ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{path: path, ttl: ttl, logger: logger}
}

// Get returns the cached snapshot and policy, reloading when the TTL has
// elapsed or nothing is loaded yet.
func (c *SnapshotCache) Get() (*types.StockCatalogSnapshot, *pricing.Policy, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Since(c.refreshedAt) < c.ttl {
		return c.snapshot, c.policy, nil
	}
	return c.reloadLocked()
}

// Refresh forces a reload regardless of TTL
func (c *SnapshotCache) Refresh() (*types.StockCatalogSnapshot, *pricing.Policy, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reloadLocked()
}

// RefreshedAt returns when the cached snapshot was loaded
func (c *SnapshotCache) RefreshedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshedAt
}

func (c *SnapshotCache) reloadLocked() (*types.StockCatalogSnapshot, *pricing.Policy, error) {
	snapshot, policy, err := Load(c.path)
	if err != nil {
		// Serve the stale snapshot if one exists; the caller decides
		// whether staleness is acceptable via RefreshedAt.
		if c.snapshot != nil {
			c.logger.Warn("catalog reload failed, serving stale snapshot",
				zap.String("path", c.path),
				zap.Time("refreshed_at", c.refreshedAt),
				zap.Error(err))
			return c.snapshot, c.policy, nil
		}
		return nil, nil, err
	}

	c.snapshot = snapshot
	c.policy = policy
	c.refreshedAt = time.Now()
	c.logger.Debug("catalog snapshot refreshed",
		zap.String("snapshot_id", snapshot.ID),
		zap.Int("skus", snapshot.Len()))
	return c.snapshot, c.policy, nil
}
