package cache

import (
	"context"
	"sync"
	"time"

	"reviewdesk/internal/model"
)

type memoryListCache struct {
	mu        sync.Mutex
	records   []model.FeedbackRecord
	expiresAt time.Time
	filled    bool
	gen       uint64
	ttl       time.Duration
	now       func() time.Time
}

// NewMemoryFeedbackListCache creates an in-process listing cache.
// A ttl <= 0 disables caching.
func NewMemoryFeedbackListCache(ttl time.Duration) FeedbackListCache {
	return newMemoryListCache(ttl, time.Now)
}

func newMemoryListCache(ttl time.Duration, now func() time.Time) *memoryListCache {
	return &memoryListCache{ttl: ttl, now: now}
}

func (c *memoryListCache) Get(_ context.Context) ([]model.FeedbackRecord, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	out := make([]model.FeedbackRecord, len(c.records))
	copy(out, c.records)
	return out, true, nil
}

func (c *memoryListCache) Generation(_ context.Context) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen, nil
}

func (c *memoryListCache) SetIfGeneration(_ context.Context, records []model.FeedbackRecord, gen uint64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ttl <= 0 || c.gen != gen {
		return false, nil
	}
	c.records = make([]model.FeedbackRecord, len(records))
	copy(c.records, records)
	c.filled = true
	c.expiresAt = c.now().Add(c.ttl)
	return true, nil
}

func (c *memoryListCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.records = nil
	c.filled = false
	return nil
}
