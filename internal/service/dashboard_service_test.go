package service

import (
	"context"
	"errors"
	"testing"

	"reviewdesk/internal/model"
	"reviewdesk/internal/repository"
)

func seedRepo(t *testing.T, ratings ...int) repository.FeedbackRepo {
	t.Helper()
	repo := repository.NewMemoryFeedbackRepo()
	for i, r := range ratings {
		rec := &model.FeedbackRecord{
			Rating:            r,
			ReviewText:        "review " + string(rune('A'+i)),
			UserReply:         "reply " + string(rune('A'+i)),
			Summary:           "summary " + string(rune('A'+i)),
			RecommendedAction: "action " + string(rune('A'+i)),
		}
		if err := repo.Append(context.Background(), rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return repo
}

func TestStatsOnFixedSet(t *testing.T) {
	svc := NewDashboardService(seedRepo(t, 5, 4, 3, 1, 5, 2))

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Empty || stats.Total != 6 {
		t.Fatalf("total: %+v", stats)
	}
	// 20/6 = 3.333...
	if stats.AverageRating != 3.33 {
		t.Fatalf("average: want=3.33 got=%v", stats.AverageRating)
	}
	if stats.Positive != 3 || stats.Negative != 2 {
		t.Fatalf("polarity: positive=%d negative=%d", stats.Positive, stats.Negative)
	}
	want := map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 2}
	for star, n := range want {
		if stats.Distribution[star] != n {
			t.Fatalf("distribution[%d]: want=%d got=%d", star, n, stats.Distribution[star])
		}
	}
}

func TestStatsEmptyStore(t *testing.T) {
	svc := NewDashboardService(repository.NewMemoryFeedbackRepo())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if !stats.Empty || stats.Total != 0 || stats.AverageRating != 0 {
		t.Fatalf("want empty stats, got %+v", stats)
	}
	if len(stats.Distribution) != 5 {
		t.Fatalf("distribution should list every star, got %v", stats.Distribution)
	}
}

func TestViewProjectsColumnNewestFirst(t *testing.T) {
	svc := NewDashboardService(seedRepo(t, 2, 5))

	cases := []struct {
		view   model.FeedbackView
		header string
		first  string
	}{
		{model.ViewReviews, "User Reviews", "review B"},
		{model.ViewResponses, "AI Responses", "reply B"},
		{model.ViewSummaries, "Review Summaries", "summary B"},
		{model.ViewActions, "Recommended Actions", "action B"},
	}
	for _, tc := range cases {
		page, err := svc.View(context.Background(), tc.view)
		if err != nil {
			t.Fatalf("View(%s): %v", tc.view, err)
		}
		if page.Header != tc.header || page.Empty || len(page.Items) != 2 {
			t.Fatalf("View(%s): %+v", tc.view, page)
		}
		if page.Items[0].Text != tc.first || page.Items[0].Rating != "5 ★" {
			t.Fatalf("View(%s) first row: %+v", tc.view, page.Items[0])
		}
	}
}

func TestViewEmptyAndUnknown(t *testing.T) {
	svc := NewDashboardService(repository.NewMemoryFeedbackRepo())

	page, err := svc.View(context.Background(), model.ViewReviews)
	if err != nil {
		t.Fatalf("View: %v", err)
	}
	if !page.Empty || page.Items == nil || len(page.Items) != 0 {
		t.Fatalf("want explicit empty page, got %+v", page)
	}

	if _, err := svc.View(context.Background(), "charts"); !errors.Is(err, ErrUnknownView) {
		t.Fatalf("unknown view: want=%v got=%v", ErrUnknownView, err)
	}
}
