package model

// FeedbackView selects which column of a record the staff explorer shows
type FeedbackView string

const (
	ViewReviews   FeedbackView = "reviews"
	ViewResponses FeedbackView = "responses"
	ViewSummaries FeedbackView = "summaries"
	ViewActions   FeedbackView = "actions"
)

// ValidView reports whether v names one of the explorer views
func ValidView(v FeedbackView) bool {
	switch v {
	case ViewReviews, ViewResponses, ViewSummaries, ViewActions:
		return true
	}
	return false
}

// DashboardStats are the key metrics over every stored record
type DashboardStats struct {
	Total         int         `json:"total"`
	AverageRating float64     `json:"averageRating"` // rounded to 2 decimals
	Positive      int         `json:"positive"`      // rating >= 4
	Negative      int         `json:"negative"`      // rating <= 2
	Distribution  map[int]int `json:"distribution"`  // star -> count, always 1..5
	Empty         bool        `json:"empty"`
}

// ViewItem is one row of an explorer view
type ViewItem struct {
	ID     string `json:"id"`
	Rating string `json:"rating"`
	Text   string `json:"text"`
}

// FeedbackViewPage is what the explorer renders for a single view
type FeedbackViewPage struct {
	View   FeedbackView `json:"view"`
	Header string       `json:"header"`
	Items  []ViewItem   `json:"items"`
	Empty  bool         `json:"empty"`
}
