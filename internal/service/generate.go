package service

import (
	"context"
	"strings"

	"reviewdesk/internal/llm"
	"reviewdesk/internal/logger"
)

// complete calls the backend and converts every failure into an empty string.
// Callers apply their own fallback on "".
func complete(ctx context.Context, backend llm.Backend, log *logger.Logger, prompt string, maxTokens int, temperature float64) string {
	if backend == nil {
		return ""
	}
	out, err := backend.Complete(ctx, prompt, maxTokens, temperature)
	if err != nil {
		log.Warn("generation backend call failed", "backend", backend.Name(), "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}
