package cache

import (
	"context"
	"testing"
	"time"

	"reviewdesk/internal/model"
)

func fill(t *testing.T, c FeedbackListCache, records []model.FeedbackRecord) {
	t.Helper()
	ctx := context.Background()
	gen, err := c.Generation(ctx)
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if _, err := c.SetIfGeneration(ctx, records, gen); err != nil {
		t.Fatalf("SetIfGeneration: %v", err)
	}
}

func TestMemoryCacheExpires(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := newMemoryListCache(10*time.Minute, func() time.Time { return now })
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx); ok {
		t.Fatalf("empty cache should miss")
	}

	fill(t, c, []model.FeedbackRecord{{ID: "1", Rating: 5}})
	got, ok, err := c.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("Get after fill: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("records: got=%+v", got)
	}

	now = now.Add(10 * time.Minute)
	if _, ok, _ := c.Get(ctx); ok {
		t.Fatalf("entry should expire at ttl")
	}
}

func TestMemoryCacheInvalidate(t *testing.T) {
	c := NewMemoryFeedbackListCache(time.Hour)
	ctx := context.Background()

	fill(t, c, []model.FeedbackRecord{{ID: "1"}})
	c.Invalidate(ctx)
	if _, ok, _ := c.Get(ctx); ok {
		t.Fatalf("Invalidate should drop the entry")
	}
	if gen, _ := c.Generation(ctx); gen != 1 {
		t.Fatalf("generation: want=1 got=%d", gen)
	}
}

func TestMemoryCacheRejectsStaleGeneration(t *testing.T) {
	c := NewMemoryFeedbackListCache(time.Hour)
	ctx := context.Background()

	gen, _ := c.Generation(ctx)
	c.Invalidate(ctx)
	stored, err := c.SetIfGeneration(ctx, []model.FeedbackRecord{{ID: "old"}}, gen)
	if err != nil || stored {
		t.Fatalf("stale set: stored=%v err=%v", stored, err)
	}
	if _, ok, _ := c.Get(ctx); ok {
		t.Fatalf("stale listing was cached")
	}
}

func TestMemoryCacheEmptyListIsAHit(t *testing.T) {
	c := NewMemoryFeedbackListCache(time.Hour)
	ctx := context.Background()

	fill(t, c, nil)
	got, ok, _ := c.Get(ctx)
	if !ok {
		t.Fatalf("cached empty listing should hit")
	}
	if len(got) != 0 {
		t.Fatalf("want empty, got %d", len(got))
	}
}

func TestMemoryCacheZeroTTLNeverHits(t *testing.T) {
	c := NewMemoryFeedbackListCache(0)
	ctx := context.Background()

	fill(t, c, []model.FeedbackRecord{{ID: "1"}})
	if _, ok, _ := c.Get(ctx); ok {
		t.Fatalf("zero ttl should disable caching")
	}
}

func TestMemoryCacheReturnsCopy(t *testing.T) {
	c := NewMemoryFeedbackListCache(time.Hour)
	ctx := context.Background()

	fill(t, c, []model.FeedbackRecord{{ID: "1", Summary: "a"}})
	got, _, _ := c.Get(ctx)
	got[0].Summary = "mutated"

	again, _, _ := c.Get(ctx)
	if again[0].Summary != "a" {
		t.Fatalf("cache leaked its backing slice")
	}
}
