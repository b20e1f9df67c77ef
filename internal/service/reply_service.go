package service

import (
	"context"
	"fmt"
	"strings"

	"reviewdesk/internal/llm"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
)

// Generation budgets for customer replies
const (
	QueryMaxTokens       = 100
	QueryTemperature     = 0.6
	StatementMaxTokens   = 40
	StatementTemperature = 0.5

	// minReplyLength is the shortest model output accepted as a reply
	minReplyLength = 5
)

var fallbackReplies = map[model.Classification][]string{
	model.ClassificationQuery: {
		"Thank you for reaching out! Our support team will assist you shortly.",
		"Thanks for your question! A member of our team will get back to you soon.",
	},
	model.ClassificationPositive: {
		"Thank you for your feedback. We appreciate you reaching out!",
		"Thank you so much for the kind words!",
	},
	model.ClassificationNegative: {
		"We're sorry about your experience and appreciate you telling us.",
		"Thank you for your feedback. We apologize and will work to improve.",
	},
	model.ClassificationNeutral: {
		"Thank you for your feedback. We appreciate you reaching out!",
		"Thanks for sharing your thoughts with us!",
	},
}

// ReplyService writes the customer-facing reply
type ReplyService struct {
	backend llm.Backend
	log     *logger.Logger
}

// NewReplyService creates a reply service on the user-facing model
func NewReplyService(backend llm.Backend, log *logger.Logger) *ReplyService {
	return &ReplyService{
		backend: backend,
		log:     log.With("component", "ReplyService"),
	}
}

// Reply never fails: backend errors and degenerate output become a canned reply
func (s *ReplyService) Reply(ctx context.Context, text string, rating int, classification model.Classification) string {
	var out string
	if classification == model.ClassificationQuery {
		out = complete(ctx, s.backend, s.log, buildQueryPrompt(text), QueryMaxTokens, QueryTemperature)
	} else {
		out = complete(ctx, s.backend, s.log, buildStatementPrompt(text, classification), StatementMaxTokens, StatementTemperature)
	}

	out = stripQuotes(out)
	if len([]rune(out)) < minReplyLength {
		s.log.Debug("using fallback reply", "classification", classification, "rating", rating)
		return FallbackReply(classification, rating)
	}
	return out
}

// FallbackReply picks a canned reply for the branch, indexed by rating
func FallbackReply(classification model.Classification, rating int) string {
	pool, ok := fallbackReplies[classification]
	if !ok {
		pool = fallbackReplies[model.ClassificationNeutral]
	}
	idx := rating % len(pool)
	if idx < 0 {
		idx = -idx
	}
	return pool[idx]
}

func buildQueryPrompt(text string) string {
	return fmt.Sprintf(`You are a helpful customer service assistant.
Answer clearly in 2-3 sentences (max 50 words).

Question: "%s"
`, text)
}

func buildStatementPrompt(text string, classification model.Classification) string {
	tone := "Acknowledge the feedback politely."
	switch classification {
	case model.ClassificationPositive:
		tone = "The feedback is positive: thank the customer warmly."
	case model.ClassificationNegative:
		tone = "The feedback is negative: apologize sincerely."
	}
	return fmt.Sprintf(`You are a customer service assistant.
Reply in ONE sentence (max 15 words).

%s

Feedback: "%s"
`, tone, text)
}

var quotePairs = [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, p := range quotePairs {
		if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return strings.TrimSpace(s[len(p[0]) : len(s)-len(p[1])])
		}
	}
	return s
}
