// Package cache keeps the safety resource set in memory behind an atomic
// snapshot. The set is small and changes rarely, so lookups are a linear
// scan over the current snapshot; refreshes swap the whole snapshot at once
package cache

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"safetymapper/internal/core/geo"
	"safetymapper/internal/services/resources/domain"
)

type snapshot struct {
	items   []domain.Resource
	builtAt time.Time
	stale   bool
}

// Cache is safe for concurrent use. Readers never block writers
type Cache struct {
	now func() time.Time

	mu   sync.Mutex
	snap atomic.Pointer[snapshot]
}

// New returns a cache holding an empty, non-stale snapshot
func New() *Cache {
	c := &Cache{now: time.Now}
	c.snap.Store(&snapshot{builtAt: c.now()})
	return c
}

// Replace swaps in a full resource set
func (c *Cache) Replace(items []domain.Resource, stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cp := make([]domain.Resource, len(items))
	copy(cp, items)
	c.snap.Store(&snapshot{items: cp, builtAt: c.now(), stale: stale})
}

// MarkStale flips the staleness flag without touching the resource set
func (c *Cache) MarkStale(stale bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cur := c.snap.Load()
	if cur.stale == stale {
		return
	}
	c.snap.Store(&snapshot{items: cur.items, builtAt: cur.builtAt, stale: stale})
}

// NearPoint returns resources within radiusMeters of center, nearest first.
// Returns nil when nothing is in range
func (c *Cache) NearPoint(center geo.Point, radiusMeters float64) []domain.Near {
	if radiusMeters <= 0 {
		return nil
	}
	snap := c.snap.Load()

	var out []domain.Near
	for _, res := range snap.items {
		d := geo.Distance(center, res.Point)
		if d > radiusMeters {
			continue
		}
		out = append(out, domain.Near{Resource: res, DistanceMeters: d})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DistanceMeters < out[j].DistanceMeters
	})
	return out
}

// Stale reports whether the snapshot may lag the backing source
func (c *Cache) Stale() bool { return c.snap.Load().stale }

// Size reports how many resources the current snapshot holds
func (c *Cache) Size() int { return len(c.snap.Load().items) }

// BuiltAt reports when the current snapshot was published
func (c *Cache) BuiltAt() time.Time { return c.snap.Load().builtAt }
