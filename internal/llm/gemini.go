package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"reviewdesk/internal/logger"
)

// Gemini generates text through the Google generative AI SDK
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     *logger.Logger
}

// NewGemini opens an SDK client; Close releases it
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration, log *logger.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: missing api key")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Gemini{client: client, model: model, timeout: timeout, log: log}, nil
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

// Close releases the underlying SDK client
func (g *Gemini) Close() error {
	return g.client.Close()
}

// Complete asks the model for a single candidate
func (g *Gemini) Complete(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	// GenerativeModel carries per-call settings, so build one per request
	m := g.client.GenerativeModel(g.model)
	m.SetMaxOutputTokens(int32(maxTokens))
	m.SetTemperature(float32(temperature))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return candidateText(resp, g.log)
}

// candidateText joins the text parts of the first candidate
func candidateText(resp *genai.GenerateContentResponse, log *logger.Logger) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			sb.WriteString(string(p))
		default:
			log.Debug("gemini: ignoring non-text part", "type", fmt.Sprintf("%T", p))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}
