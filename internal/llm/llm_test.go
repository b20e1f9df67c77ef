package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reviewdesk/internal/config"
	"reviewdesk/internal/logger"
)

func TestChatCompletionsSendsRequest(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path: want=%q got=%q", "/chat/completions", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer sk-test" {
			t.Errorf("Authorization: got=%q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"  Thanks a lot!  "}}]}`))
	}))
	defer srv.Close()

	b := NewChatCompletions("openrouter", srv.URL+"/", "sk-test", "google/gemma-7b-it", 5*time.Second)
	text, err := b.Complete(context.Background(), "hello", 40, 0.5)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "Thanks a lot!" {
		t.Fatalf("text: want=%q got=%q", "Thanks a lot!", text)
	}
	if got.Model != "google/gemma-7b-it" || got.MaxTokens != 40 || got.Temperature != 0.5 {
		t.Fatalf("request: got=%+v", got)
	}
	if len(got.Messages) != 1 || got.Messages[0].Role != "user" || got.Messages[0].Content != "hello" {
		t.Fatalf("messages: got=%+v", got.Messages)
	}
}

func TestChatCompletionsNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	b := NewChatCompletions("openrouter", srv.URL, "sk-test", "m", 5*time.Second)
	_, err := b.Complete(context.Background(), "hello", 40, 0.5)
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("want *StatusError, got %T (%v)", err, err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("StatusCode: want=%d got=%d", http.StatusTooManyRequests, statusErr.StatusCode)
	}
}

func TestChatCompletionsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	b := NewChatCompletions("openai", srv.URL, "sk-test", "m", 5*time.Second)
	if _, err := b.Complete(context.Background(), "hello", 40, 0.5); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("want ErrEmptyCompletion, got %v", err)
	}
}

func TestChatCompletionsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	b := NewChatCompletions("openrouter", srv.URL, "sk-test", "m", 50*time.Millisecond)
	if _, err := b.Complete(context.Background(), "hello", 40, 0.5); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestOllamaComplete(t *testing.T) {
	var got ollamaRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path: got=%q", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"response":"We are sorry to hear that.","done":true}`))
	}))
	defer srv.Close()

	b := NewOllama(srv.URL, "gemma:7b", 5*time.Second)
	text, err := b.Complete(context.Background(), "hi", 40, 0.5)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "We are sorry to hear that." {
		t.Fatalf("text: got=%q", text)
	}
	if got.Stream || got.Options.NumPredict != 40 || got.Model != "gemma:7b" {
		t.Fatalf("request: got=%+v", got)
	}
}

func TestOllamaEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"   "}`))
	}))
	defer srv.Close()

	b := NewOllama(srv.URL, "gemma:7b", 5*time.Second)
	if _, err := b.Complete(context.Background(), "hi", 40, 0.5); !errors.Is(err, ErrEmptyCompletion) {
		t.Fatalf("want ErrEmptyCompletion, got %v", err)
	}
}

func TestNewSelectsProvider(t *testing.T) {
	ctx := context.Background()
	log := logger.NewNop()

	b, err := New(ctx, &config.AIConfig{Provider: config.ProviderOpenRouter, BaseURL: "http://x", APIKey: "k", TimeoutSeconds: 1}, "m", log)
	if err != nil {
		t.Fatalf("New openrouter: %v", err)
	}
	if b.Name() != "openrouter:m" {
		t.Fatalf("Name: got=%q", b.Name())
	}

	b, err = New(ctx, &config.AIConfig{Provider: config.ProviderOllama, BaseURL: "http://x"}, "gemma", log)
	if err != nil {
		t.Fatalf("New ollama: %v", err)
	}
	if _, ok := b.(*Ollama); !ok {
		t.Fatalf("want *Ollama, got %T", b)
	}

	if _, err := New(ctx, &config.AIConfig{Provider: "bard"}, "m", log); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}
