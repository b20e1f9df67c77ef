package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
)

func sampleRecord(i int) *model.FeedbackRecord {
	return &model.FeedbackRecord{
		Rating:            i%5 + 1,
		ReviewText:        fmt.Sprintf("review %d", i),
		UserReply:         fmt.Sprintf("reply %d", i),
		Summary:           fmt.Sprintf("summary %d", i),
		RecommendedAction: fmt.Sprintf("action %d", i),
	}
}

// exerciseRepo checks the contract every backend shares
func exerciseRepo(t *testing.T, repo FeedbackRepo) {
	t.Helper()
	ctx := context.Background()

	got, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll empty: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("empty store: want=0 got=%d", len(got))
	}

	ids := map[string]bool{}
	for i := 1; i <= 3; i++ {
		rec := sampleRecord(i)
		if err := repo.Append(ctx, rec); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		if rec.ID == "" {
			t.Fatalf("Append %d: id not assigned", i)
		}
		if rec.CreatedAt.IsZero() {
			t.Fatalf("Append %d: createdAt not assigned", i)
		}
		if ids[rec.ID] {
			t.Fatalf("Append %d: duplicate id %q", i, rec.ID)
		}
		ids[rec.ID] = true
	}

	got, err = repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("count: want=3 got=%d", len(got))
	}
	for i, want := range []string{"review 3", "review 2", "review 1"} {
		if got[i].ReviewText != want {
			t.Fatalf("order[%d]: want=%q got=%q", i, want, got[i].ReviewText)
		}
	}
	first := got[2]
	if first.Rating != 2 || first.UserReply != "reply 1" || first.Summary != "summary 1" || first.RecommendedAction != "action 1" {
		t.Fatalf("fields not stored verbatim: %+v", first)
	}
}

func TestMemoryFeedbackRepo(t *testing.T) {
	exerciseRepo(t, NewMemoryFeedbackRepo())
}

func TestMemoryFeedbackRepoConcurrentAppend(t *testing.T) {
	repo := NewMemoryFeedbackRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, sampleRecord(i))
		}(i)
	}
	wg.Wait()

	got, _ := repo.ListAll(ctx)
	if len(got) != 50 {
		t.Fatalf("count: want=50 got=%d", len(got))
	}
}

func TestBoltFeedbackRepo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "feedback.db")
	repo, err := OpenBoltFeedbackRepo(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	exerciseRepo(t, repo)
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	// records survive a reopen
	repo, err = OpenBoltFeedbackRepo(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer repo.Close()
	got, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll after reopen: %v", err)
	}
	if len(got) != 3 || got[0].ReviewText != "review 3" {
		t.Fatalf("after reopen: got=%+v", got)
	}
}

func TestSQLiteFeedbackRepo(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "reviews.db"), logger.NewNop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	repo, err := NewSQLFeedbackRepo(db)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	exerciseRepo(t, repo)

	got, _ := repo.ListAll(context.Background())
	if got[0].ID != "3" || got[2].ID != "1" {
		t.Fatalf("ids: want 3..1 got %q..%q", got[0].ID, got[2].ID)
	}
}
