package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Failure modes of ExtractJSONObject. All of them lead to the same fallback.
var (
	ErrNoOpeningBrace = errors.New("no opening brace in model output")
	ErrNoClosingBrace = errors.New("no closing brace after opening brace in model output")
	ErrInvalidJSON    = errors.New("braced content is not a valid JSON object")
)

// FallbackAction is recorded whenever the model gives no usable action
const FallbackAction = "Review feedback and take appropriate action."

// fallbackSummaryRunes is how much of the review the fallback summary keeps
const fallbackSummaryRunes = 80

// ExtractJSONObject parses the text between the first '{' and the last '}'
// of raw. Prose before or after the object is ignored.
func ExtractJSONObject(raw string) (map[string]interface{}, error) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return nil, ErrNoOpeningBrace
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return nil, ErrNoClosingBrace
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	if obj == nil {
		return nil, ErrInvalidJSON
	}
	return obj, nil
}

// FallbackSummary is the first 80 characters of the review, with "..." when cut
func FallbackSummary(review string) string {
	r := []rune(review)
	if len(r) <= fallbackSummaryRunes {
		return review
	}
	return string(r[:fallbackSummaryRunes]) + "..."
}

// stringField returns obj[key] when it is a non-blank string
func stringField(obj map[string]interface{}, key string) (string, bool) {
	v, ok := obj[key].(string)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}
