package service

import (
	"context"
	"fmt"

	"reviewdesk/internal/llm"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
)

// Generation budget for internal analysis
const (
	InsightMaxTokens   = 150
	InsightTemperature = 0.3
)

// InsightService derives the staff-facing summary and recommended action
type InsightService struct {
	backend llm.Backend
	log     *logger.Logger
}

// NewInsightService creates an insight service on the analysis model
func NewInsightService(backend llm.Backend, log *logger.Logger) *InsightService {
	return &InsightService{
		backend: backend,
		log:     log.With("component", "InsightService"),
	}
}

// Extract never fails. Missing keys fall back one by one; anything
// unparseable falls back as a whole.
func (s *InsightService) Extract(ctx context.Context, text string, rating int) model.Insight {
	raw := complete(ctx, s.backend, s.log, buildInsightPrompt(text, rating), InsightMaxTokens, InsightTemperature)

	obj, err := ExtractJSONObject(raw)
	if err != nil {
		s.log.Debug("insight output not parseable, using fallback", "error", err)
		return fallbackInsight(text)
	}

	insight := fallbackInsight(text)
	if v, ok := stringField(obj, "summary"); ok {
		insight.Summary = v
	}
	if v, ok := stringField(obj, "recommended_action"); ok {
		insight.RecommendedAction = v
	}
	if v, ok := stringField(obj, "category"); ok {
		insight.Category = v
	}
	return insight
}

func fallbackInsight(text string) model.Insight {
	return model.Insight{
		Summary:           FallbackSummary(text),
		RecommendedAction: FallbackAction,
	}
}

func buildInsightPrompt(text string, rating int) string {
	return fmt.Sprintf(`Analyze this feedback and return ONLY valid JSON:

{"category":"positive/negative/query",
  "summary":"brief summary",
  "recommended_action":"action"}

Rating: %d/5
Feedback: "%s"
`, rating, text)
}
