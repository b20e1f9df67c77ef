package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"reviewdesk/internal/model"
)

// FeedbackListCache memoizes the newest-first listing of every record.
//
// Every Invalidate bumps a write generation. A refill reads the generation
// before loading from the store and stores its result only while the
// generation is unchanged, so a listing loaded before a write is never cached
// after it. The generation lives next to the listing, which keeps the guard
// valid when several processes share one cache.
type FeedbackListCache interface {
	// Get returns ok=false on a miss
	Get(ctx context.Context) (records []model.FeedbackRecord, ok bool, err error)
	Generation(ctx context.Context) (uint64, error)
	// SetIfGeneration stores records unless an Invalidate happened after gen was read
	SetIfGeneration(ctx context.Context, records []model.FeedbackRecord, gen uint64) (stored bool, err error)
	Invalidate(ctx context.Context) error
}

type feedbackListCache struct {
	client *redis.Client
	key    string
	genKey string
	ttl    time.Duration
}

// NewFeedbackListCache creates a Redis-backed listing cache.
// A ttl <= 0 disables caching, same as the in-process cache.
func NewFeedbackListCache(client *redis.Client, ttl time.Duration) FeedbackListCache {
	return &feedbackListCache{
		client: client,
		key:    "feedback:list",
		genKey: "feedback:list:gen",
		ttl:    ttl,
	}
}

func (c *feedbackListCache) Get(ctx context.Context) ([]model.FeedbackRecord, bool, error) {
	data, err := c.client.Get(ctx, c.key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var records []model.FeedbackRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, false, err
	}
	return records, true, nil
}

func (c *feedbackListCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := c.client.Get(ctx, c.genKey).Uint64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *feedbackListCache) SetIfGeneration(ctx context.Context, records []model.FeedbackRecord, gen uint64) (bool, error) {
	if c.ttl <= 0 {
		return false, nil
	}
	if records == nil {
		records = []model.FeedbackRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return false, err
	}

	stored := false
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := tx.Get(ctx, c.genKey).Uint64()
		if err != nil && err != redis.Nil {
			return err
		}
		if cur != gen {
			return nil
		}
		// EXEC fails with TxFailedErr if an Invalidate lands after WATCH
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, c.key, data, c.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, c.genKey)
	if errors.Is(err, redis.TxFailedErr) {
		return false, nil
	}
	return stored, err
}

func (c *feedbackListCache) Invalidate(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey)
		pipe.Del(ctx, c.key)
		return nil
	})
	return err
}
