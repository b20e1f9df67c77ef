package repository

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"reviewdesk/internal/cache"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
)

// CachedFeedbackRepo is a read-through cache in front of another FeedbackRepo.
// Append invalidates the listing before returning, so a ListAll issued after
// Append always sees the new record, on this instance or any other sharing the cache.
type CachedFeedbackRepo struct {
	inner FeedbackRepo
	cache cache.FeedbackListCache
	log   *logger.Logger

	// keyed by cache generation: a read after an append never joins an older refill
	group singleflight.Group
}

// NewCachedFeedbackRepo wraps inner with the given listing cache
func NewCachedFeedbackRepo(inner FeedbackRepo, c cache.FeedbackListCache, log *logger.Logger) *CachedFeedbackRepo {
	return &CachedFeedbackRepo{
		inner: inner,
		cache: c,
		log:   log.With("component", "CachedFeedbackRepo"),
	}
}

func (r *CachedFeedbackRepo) Append(ctx context.Context, record *model.FeedbackRecord) error {
	if err := r.inner.Append(ctx, record); err != nil {
		return err
	}
	r.Invalidate(ctx)
	return nil
}

// Invalidate drops the cached listing and bumps its generation
func (r *CachedFeedbackRepo) Invalidate(ctx context.Context) {
	if err := r.cache.Invalidate(ctx); err != nil {
		r.log.Warn("feedback cache invalidate failed", "error", err)
	}
}

func (r *CachedFeedbackRepo) ListAll(ctx context.Context) ([]model.FeedbackRecord, error) {
	if records, ok, err := r.cache.Get(ctx); err != nil {
		r.log.Warn("feedback cache read failed", "error", err)
	} else if ok {
		return records, nil
	}

	gen, err := r.cache.Generation(ctx)
	if err != nil {
		// without a generation the result cannot be cached safely
		r.log.Warn("feedback cache generation read failed", "error", err)
		return r.inner.ListAll(ctx)
	}

	v, err, _ := r.group.Do(strconv.FormatUint(gen, 10), func() (interface{}, error) {
		records, err := r.inner.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := r.cache.SetIfGeneration(ctx, records, gen); err != nil {
			r.log.Warn("feedback cache write failed", "error", err)
		}
		return records, nil
	})
	if err != nil {
		return nil, err
	}

	shared := v.([]model.FeedbackRecord)
	out := make([]model.FeedbackRecord, len(shared))
	copy(out, shared)
	return out, nil
}
