package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"reviewdesk/internal/config"
	"reviewdesk/internal/logger"
)

// fakeOllama answers /api/generate: JSON for analysis prompts, a sentence otherwise
func fakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		resp := "Thank you so much for the kind words!"
		if strings.Contains(req.Prompt, "recommended_action") {
			resp = `{"category":"positive","summary":"Pleased customer.","recommended_action":"Keep it up."}`
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"response": resp, "done": true})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, driver string, baseURL string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		StoreDriver:     driver,
		SQLitePath:      filepath.Join(dir, "reviews.db"),
		BoltPath:        filepath.Join(dir, "feedback.bolt"),
		CacheTTL:        time.Minute,
		FinalizeAsync:   false,
		FinalizeTimeout: time.Second,
		Staff: config.StaffConfig{
			Username:  "admin",
			Password:  "pw",
			JWTSecret: "secret",
			TokenTTL:  time.Hour,
		},
		AI: &config.AIConfig{
			Provider:       config.ProviderOllama,
			BaseURL:        baseURL,
			Models:         config.LLMModels{User: "llama3", Admin: "llama3:70b"},
			TimeoutSeconds: 5,
		},
	}
}

func TestNewWiresEveryLocalStore(t *testing.T) {
	srv := fakeOllama(t)
	for _, driver := range []string{config.StoreMemory, config.StoreBolt, config.StoreSQLite} {
		t.Run(driver, func(t *testing.T) {
			cfg := testConfig(t, driver, srv.URL)
			a, err := New(context.Background(), cfg, logger.NewNop())
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			defer a.Close(context.Background())

			resp, err := a.FeedbackService.Submit(context.Background(), 5, "This is amazing, thank you!")
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if !resp.Persisted || resp.Reply != "Thank you so much for the kind words!" {
				t.Fatalf("response: %+v", resp)
			}

			records, err := a.DashboardService.Records(context.Background())
			if err != nil {
				t.Fatalf("Records: %v", err)
			}
			if len(records) != 1 || records[0].Summary != "Pleased customer." || records[0].RecommendedAction != "Keep it up." {
				t.Fatalf("records: %+v", records)
			}
		})
	}
}

func TestNewWiresRedisCache(t *testing.T) {
	srv := fakeOllama(t)
	mr := miniredis.RunT(t)
	cfg := testConfig(t, config.StoreMemory, srv.URL)
	cfg.RedisURI = "redis://" + mr.Addr()

	a, err := New(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close(context.Background())
	ctx := context.Background()

	if _, err := a.FeedbackService.Submit(ctx, 5, "This is amazing, thank you!"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if records, _ := a.DashboardService.Records(ctx); len(records) != 1 {
		t.Fatalf("records: want=1 got=%d", len(records))
	}
	if !mr.Exists("feedback:list") {
		t.Fatalf("listing not cached in redis")
	}

	if _, err := a.FeedbackService.Submit(ctx, 1, "It crashed again."); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	records, _ := a.DashboardService.Records(ctx)
	if len(records) != 2 || records[0].ReviewText != "It crashed again." {
		t.Fatalf("read after write: got=%+v", records)
	}
}

func TestNewFailsOnUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig(t, config.StoreMemory, "http://127.0.0.1:1")
	cfg.RedisURI = "redis://" + addr
	if _, err := New(context.Background(), cfg, logger.NewNop()); err == nil {
		t.Fatalf("want error for unreachable redis")
	}
}

func TestNewLoadsClassifierRules(t *testing.T) {
	srv := fakeOllama(t)
	cfg := testConfig(t, config.StoreMemory, srv.URL)
	cfg.ClassifierRulesFile = filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(cfg.ClassifierRulesFile, []byte("threshold: 1\nkeywords: [refund]\n"), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	a, err := New(context.Background(), cfg, logger.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer a.Close(context.Background())

	resp, _ := a.FeedbackService.Submit(context.Background(), 4, "I want a refund")
	if resp.Classification != "query" {
		t.Fatalf("custom rules not applied: %q", resp.Classification)
	}
}

func TestNewFailsOnBadRulesFile(t *testing.T) {
	cfg := testConfig(t, config.StoreMemory, "http://127.0.0.1:1")
	cfg.ClassifierRulesFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := New(context.Background(), cfg, logger.NewNop()); err == nil {
		t.Fatalf("want error for missing rules file")
	}
}

func TestNewFailsOnUnknownDriver(t *testing.T) {
	cfg := testConfig(t, "cassandra", "http://127.0.0.1:1")
	if _, err := New(context.Background(), cfg, logger.NewNop()); err == nil {
		t.Fatalf("want error for unknown driver")
	}
}
