package model

import (
	"fmt"
	"time"
)

// Rating bounds for a submission
const (
	MinRating = 1
	MaxRating = 5
)

// Classification shapes the reply sent back to the customer.
// It is computed on every submission and never stored.
type Classification string

const (
	ClassificationQuery    Classification = "query"
	ClassificationPositive Classification = "positive"
	ClassificationNegative Classification = "negative"
	ClassificationNeutral  Classification = "neutral"
)

// FeedbackRecord is one submission plus everything derived from it.
// Records are written once and never updated.
type FeedbackRecord struct {
	ID                string    `json:"id"`
	Rating            int       `json:"rating"`
	ReviewText        string    `json:"review"`
	UserReply         string    `json:"aiResponse"`
	Summary           string    `json:"summary"`
	RecommendedAction string    `json:"recommendedAction"`
	Category          string    `json:"category,omitempty"` // informational only
	CreatedAt         time.Time `json:"createdAt"`
}

// Insight is the internal analysis of a single piece of feedback
type Insight struct {
	Summary           string `json:"summary"`
	RecommendedAction string `json:"recommended_action"`
	Category          string `json:"category,omitempty"`
}

var ratingLabels = map[int]string{
	1: "Poor",
	2: "Fair",
	3: "Good",
	4: "Very Good",
	5: "Excellent",
}

// ValidRating reports whether r is inside [MinRating, MaxRating]
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// RatingLabel is the word shown next to the star slider
func RatingLabel(r int) string {
	return ratingLabels[r]
}

// RatingStars renders a rating the way staff views list it, e.g. "5 ★"
func RatingStars(r int) string {
	return fmt.Sprintf("%d ★", r)
}

// SubmitRequest is the body of a feedback submission
type SubmitRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// SubmitResponse is returned to the customer once the reply is ready.
// Pending is true while extraction and persistence continue in the background.
type SubmitResponse struct {
	Reply          string         `json:"reply"`
	Classification Classification `json:"classification"`
	Persisted      bool           `json:"persisted"`
	Pending        bool           `json:"pending"`
	RecordID       string         `json:"recordId,omitempty"`
}

// RatingOption is one entry of the star selector
type RatingOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// RatingOptions lists every selectable rating, lowest first
func RatingOptions() []RatingOption {
	opts := make([]RatingOption, 0, MaxRating-MinRating+1)
	for r := MinRating; r <= MaxRating; r++ {
		opts = append(opts, RatingOption{Value: r, Label: RatingLabel(r)})
	}
	return opts
}
