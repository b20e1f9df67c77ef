package repository

import (
	"context"
	"strconv"
	"sync"
	"time"

	"reviewdesk/internal/model"
)

// FeedbackRepo is the append-only feedback store. Append assigns ID and
// CreatedAt; ListAll returns every record, newest first.
type FeedbackRepo interface {
	Append(ctx context.Context, record *model.FeedbackRecord) error
	ListAll(ctx context.Context) ([]model.FeedbackRecord, error)
}

type memoryFeedbackRepo struct {
	mu      sync.RWMutex
	records []model.FeedbackRecord
	seq     int64
}

// NewMemoryFeedbackRepo creates a process-local store, used for development and tests
func NewMemoryFeedbackRepo() FeedbackRepo {
	return &memoryFeedbackRepo{}
}

func (r *memoryFeedbackRepo) Append(_ context.Context, record *model.FeedbackRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	record.ID = strconv.FormatInt(r.seq, 10)
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	r.records = append(r.records, *record)
	return nil
}

func (r *memoryFeedbackRepo) ListAll(_ context.Context) ([]model.FeedbackRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.FeedbackRecord, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}
