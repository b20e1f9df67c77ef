package service

import (
	"context"
	"errors"
	"math"

	"reviewdesk/internal/classify"
	"reviewdesk/internal/model"
	"reviewdesk/internal/repository"
)

// EmptyStateMessage is shown by staff views when nothing has been submitted
const EmptyStateMessage = "No feedback yet. Check back soon!"

var ErrUnknownView = errors.New("unknown feedback view")

var viewHeaders = map[model.FeedbackView]string{
	model.ViewReviews:   "User Reviews",
	model.ViewResponses: "AI Responses",
	model.ViewSummaries: "Review Summaries",
	model.ViewActions:   "Recommended Actions",
}

// DashboardService aggregates stored feedback for staff
type DashboardService struct {
	repo repository.FeedbackRepo
}

// NewDashboardService creates a dashboard service
func NewDashboardService(repo repository.FeedbackRepo) *DashboardService {
	return &DashboardService{repo: repo}
}

// Records returns every record, newest first
func (s *DashboardService) Records(ctx context.Context) ([]model.FeedbackRecord, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []model.FeedbackRecord{}
	}
	return records, nil
}

// Stats computes the key metrics and the rating distribution
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(records), nil
}

// ComputeStats aggregates records. An empty input yields zeroed stats with Empty set.
func ComputeStats(records []model.FeedbackRecord) *model.DashboardStats {
	stats := &model.DashboardStats{
		Distribution: make(map[int]int, model.MaxRating),
		Empty:        len(records) == 0,
	}
	for r := model.MinRating; r <= model.MaxRating; r++ {
		stats.Distribution[r] = 0
	}
	if stats.Empty {
		return stats
	}

	sum := 0
	for _, rec := range records {
		stats.Total++
		sum += rec.Rating
		stats.Distribution[rec.Rating]++
		switch classify.Polarity(rec.Rating) {
		case model.ClassificationPositive:
			stats.Positive++
		case model.ClassificationNegative:
			stats.Negative++
		}
	}
	stats.AverageRating = math.Round(float64(sum)/float64(stats.Total)*100) / 100
	return stats
}

// View projects every record onto one column for the explorer
func (s *DashboardService) View(ctx context.Context, view model.FeedbackView) (*model.FeedbackViewPage, error) {
	if !model.ValidView(view) {
		return nil, ErrUnknownView
	}
	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	page := &model.FeedbackViewPage{
		View:   view,
		Header: viewHeaders[view],
		Items:  make([]model.ViewItem, 0, len(records)),
		Empty:  len(records) == 0,
	}
	for _, rec := range records {
		page.Items = append(page.Items, model.ViewItem{
			ID:     rec.ID,
			Rating: model.RatingStars(rec.Rating),
			Text:   viewText(view, rec),
		})
	}
	return page, nil
}

func viewText(view model.FeedbackView, rec model.FeedbackRecord) string {
	switch view {
	case model.ViewResponses:
		return rec.UserReply
	case model.ViewSummaries:
		return rec.Summary
	case model.ViewActions:
		return rec.RecommendedAction
	default:
		return rec.ReviewText
	}
}
