package cache

import (
	"context"
	"sync"
	"time"

	"slot-reservation/internal/domain/slot"
)

// Source is the authoritative earliest-eligible query.
type Source interface {
	FindNextAvailable(ctx context.Context, now time.Time) (*slot.Slot, error)
}

// NextSlotCache is a single-entry read-through cache over the next
// available slot. All request handlers share the one entry, so a claim that
// hits the store on every call is avoided. The cache is never the source of
// truth for the write path: callers must re-validate against the store
// before mutating.
type NextSlotCache struct {
	mu     sync.Mutex
	source Source
	cached *slot.Slot
}

func New(source Source) *NextSlotCache {
	return &NextSlotCache{source: source}
}

// Get returns the cached next slot, loading it from the source on a miss.
// Empty results are not cached, so a pool that fills up later is seen
// immediately. A cached slot whose start time has passed is treated as a
// miss.
func (c *NextSlotCache) Get(ctx context.Context, now time.Time) (*slot.Slot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.cached.StartTime.Before(now) {
		c.cached = nil
	}
	if c.cached != nil {
		cp := *c.cached
		return &cp, nil
	}

	loaded, err := c.source.FindNextAvailable(ctx, now)
	if err != nil {
		return nil, err
	}
	c.cached = loaded
	cp := *loaded
	return &cp, nil
}

// Evict drops the cached pointer. Called after every successful claim,
// cancellation, and expiry sweep, since each makes the pointer stale.
func (c *NextSlotCache) Evict() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}
