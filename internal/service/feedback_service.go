package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"reviewdesk/internal/classify"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
	"reviewdesk/internal/repository"
)

// FeedbackOptions controls how a submission is finalized
type FeedbackOptions struct {
	// Async returns the reply before extraction and persistence finish
	Async bool
	// FinalizeTimeout bounds a background finalization
	FinalizeTimeout time.Duration
}

// FeedbackService runs a submission end to end
type FeedbackService struct {
	classifier  *classify.Classifier
	replies     *ReplyService
	insights    *InsightService
	repo        repository.FeedbackRepo
	broadcaster Broadcaster
	log         *logger.Logger
	opts        FeedbackOptions

	inflight sync.WaitGroup
}

// NewFeedbackService creates the submission service
func NewFeedbackService(classifier *classify.Classifier, replies *ReplyService, insights *InsightService, repo repository.FeedbackRepo, log *logger.Logger, opts FeedbackOptions) *FeedbackService {
	if opts.FinalizeTimeout <= 0 {
		opts.FinalizeTimeout = time.Minute
	}
	return &FeedbackService{
		classifier: classifier,
		replies:    replies,
		insights:   insights,
		repo:       repo,
		log:        log.With("component", "FeedbackService"),
		opts:       opts,
	}
}

// SetBroadcaster sets the broadcaster for WebSocket events
func (s *FeedbackService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Submit validates the input, writes the reply, then extracts and stores
// the record. Only validation errors are returned.
func (s *FeedbackService) Submit(ctx context.Context, rating int, review string) (*model.SubmitResponse, error) {
	text := strings.TrimSpace(review)
	if text == "" {
		return nil, &ValidationError{Field: "review", Err: ErrEmptyReview}
	}
	if !model.ValidRating(rating) {
		return nil, &ValidationError{Field: "rating", Err: ErrInvalidRating}
	}

	classification := s.classifier.Classification(text, rating)
	reply := s.replies.Reply(ctx, text, rating, classification)

	record := &model.FeedbackRecord{
		Rating:     rating,
		ReviewText: text,
		UserReply:  reply,
	}
	resp := &model.SubmitResponse{
		Reply:          reply,
		Classification: classification,
	}

	if s.opts.Async {
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.opts.FinalizeTimeout)
			defer cancel()
			s.finalize(fctx, record)
		}()
		resp.Pending = true
		return resp, nil
	}

	resp.Persisted = s.finalize(ctx, record)
	if resp.Persisted {
		resp.RecordID = record.ID
	}
	return resp, nil
}

// finalize extracts insights, appends the record and notifies staff.
// It reports whether the record was stored.
func (s *FeedbackService) finalize(ctx context.Context, record *model.FeedbackRecord) bool {
	insight := s.insights.Extract(ctx, record.ReviewText, record.Rating)
	record.Summary = insight.Summary
	record.RecommendedAction = insight.RecommendedAction
	record.Category = insight.Category

	if err := s.repo.Append(ctx, record); err != nil {
		s.log.Error("failed to persist feedback", "rating", record.Rating, "error", err)
		return false
	}
	s.log.Info("feedback stored", "id", record.ID, "rating", record.Rating, "category", record.Category)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToStaff(EventFeedbackCreated, *record)
	}
	return true
}

// Wait blocks until background finalizations finish or ctx is done
func (s *FeedbackService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.inflight.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
