// Package llmtest provides a scripted llm.Backend for tests.
package llmtest

import (
	"context"
	"sync"
)

// Call records one Complete invocation
type Call struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Scripted answers every call from Responses in order, repeating the last
// entry once exhausted. Respond, when set, takes precedence.
type Scripted struct {
	Responses []string
	Err       error
	Respond   func(ctx context.Context, prompt string) (string, error)

	mu    sync.Mutex
	calls []Call
}

// Reply returns a backend that always answers text
func Reply(text string) *Scripted {
	return &Scripted{Responses: []string{text}}
}

// Failing returns a backend that always fails with err
func Failing(err error) *Scripted {
	return &Scripted{Err: err}
}

func (s *Scripted) Name() string { return "scripted" }

func (s *Scripted) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	s.mu.Lock()
	idx := len(s.calls)
	s.calls = append(s.calls, Call{Prompt: prompt, MaxTokens: maxTokens, Temperature: temperature})
	s.mu.Unlock()

	if s.Respond != nil {
		return s.Respond(ctx, prompt)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if len(s.Responses) == 0 {
		return "", nil
	}
	if idx >= len(s.Responses) {
		idx = len(s.Responses) - 1
	}
	return s.Responses[idx], nil
}

// Calls returns a copy of every recorded call
func (s *Scripted) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}
