// Package llm holds the text-generation backends. Every provider satisfies
// Backend; callers decide what to do when a completion fails.
package llm

import (
	"context"
	"errors"
	"fmt"

	"reviewdesk/internal/config"
	"reviewdesk/internal/logger"
)

// Backend is a synchronous text-completion service
type Backend interface {
	Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
	Name() string
}

// ErrEmptyCompletion is returned when a provider answers 2xx without any text
var ErrEmptyCompletion = errors.New("llm: empty completion")

// StatusError is a non-2xx answer from a provider
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

const maxErrorBodyRunes = 200

func (e *StatusError) Error() string {
	body := []rune(e.Body)
	if len(body) > maxErrorBodyRunes {
		body = body[:maxErrorBodyRunes]
	}
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, string(body))
}

// New builds the backend for cfg.Provider that generates with model
func New(ctx context.Context, cfg *config.AIConfig, model string, log *logger.Logger) (Backend, error) {
	switch cfg.Provider {
	case config.ProviderOpenRouter, config.ProviderOpenAI:
		return NewChatCompletions(cfg.Provider, cfg.BaseURL, cfg.APIKey, model, cfg.Timeout()), nil
	case config.ProviderOllama:
		return NewOllama(cfg.BaseURL, model, cfg.Timeout()), nil
	case config.ProviderGemini:
		return NewGemini(ctx, cfg.APIKey, model, cfg.Timeout(), log)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
