// Package classify decides whether a piece of feedback asks for help or
// states an opinion. The heuristic is keyword based and best-effort: it only
// steers how long and in what tone the automated reply is.
package classify

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"reviewdesk/internal/model"
)

// Kind is the binary result of Classify
type Kind string

const (
	KindQuery     Kind = "query"
	KindStatement Kind = "statement"
)

// DefaultThreshold is how many distinct keyword hits turn a statement into a query
const DefaultThreshold = 2

// DefaultKeywords are interrogative and help-seeking phrases.
// "?" is listed for completeness; a literal "?" short-circuits before counting.
var DefaultKeywords = []string{
	"how", "what", "when", "where", "why", "can i", "could you",
	"please help", "help", "support", "question", "wondering",
	"clarify", "explain", "guide", "tell me", "show me", "?",
	"does this", "do you", "is there", "will this", "should i",
}

// Polarity thresholds on the star rating
const (
	PositiveMinRating = 4
	NegativeMaxRating = 2
)

var (
	ErrInvalidThreshold = errors.New("classifier threshold must be at least 1")
	ErrNoKeywords       = errors.New("classifier keyword list is empty")
)

// Rules is the tunable part of the classifier
type Rules struct {
	Threshold int      `yaml:"threshold"`
	Keywords  []string `yaml:"keywords"`
}

// DefaultRules returns the built-in threshold and dictionary
func DefaultRules() Rules {
	kw := make([]string, len(DefaultKeywords))
	copy(kw, DefaultKeywords)
	return Rules{Threshold: DefaultThreshold, Keywords: kw}
}

// Validate checks the rules can classify anything
func (r Rules) Validate() error {
	if r.Threshold < 1 {
		return ErrInvalidThreshold
	}
	if len(r.Keywords) == 0 {
		return ErrNoKeywords
	}
	return nil
}

// LoadRules reads rules from a YAML file. Keys left out of the file keep their defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read classifier rules: %w", err)
	}

	var fileRules struct {
		Threshold *int     `yaml:"threshold"`
		Keywords  []string `yaml:"keywords"`
	}
	if err := yaml.Unmarshal(data, &fileRules); err != nil {
		return Rules{}, fmt.Errorf("parse classifier rules: %w", err)
	}
	if fileRules.Threshold != nil {
		rules.Threshold = *fileRules.Threshold
	}
	if fileRules.Keywords != nil {
		rules.Keywords = fileRules.Keywords
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Classifier applies Rules to feedback text
type Classifier struct {
	threshold int
	keywords  []string
}

// New creates a classifier. Keywords are lower-cased and blanks dropped.
func New(rules Rules) *Classifier {
	kws := make([]string, 0, len(rules.Keywords))
	for _, kw := range rules.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			kws = append(kws, kw)
		}
	}
	return &Classifier{threshold: rules.Threshold, keywords: kws}
}

// Threshold returns the configured hit threshold
func (c *Classifier) Threshold() int {
	return c.threshold
}

// KeywordHits counts dictionary entries present in text. Each entry counts at
// most once, and overlapping entries ("please help" and "help") both count.
func (c *Classifier) KeywordHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range c.keywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

// Classify returns KindQuery when text contains "?" or enough keyword hits
func (c *Classifier) Classify(text string) Kind {
	if strings.Contains(text, "?") {
		return KindQuery
	}
	if c.KeywordHits(text) >= c.threshold {
		return KindQuery
	}
	return KindStatement
}

// Classification refines Classify with the star rating
func (c *Classifier) Classification(text string, rating int) model.Classification {
	if c.Classify(text) == KindQuery {
		return model.ClassificationQuery
	}
	return Polarity(rating)
}

// Polarity maps a rating to the sentiment of a statement
func Polarity(rating int) model.Classification {
	switch {
	case rating >= PositiveMinRating:
		return model.ClassificationPositive
	case rating <= NegativeMaxRating:
		return model.ClassificationNegative
	default:
		return model.ClassificationNeutral
	}
}
