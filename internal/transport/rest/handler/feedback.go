package handler

import (
	"encoding/json"
	"net/http"

	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
	"reviewdesk/internal/service"
)

// maxSubmitBody caps the submission body; reviews are short free text
const maxSubmitBody = 64 << 10

// FeedbackHandler handles the customer-facing endpoints
type FeedbackHandler struct {
	feedbackSvc *service.FeedbackService
	log         *logger.Logger
}

// NewFeedbackHandler creates a new feedback handler
func NewFeedbackHandler(feedbackSvc *service.FeedbackService, log *logger.Logger) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackSvc: feedbackSvc,
		log:         log.With("component", "FeedbackHandler"),
	}
}

// Submit handles POST /v1/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSubmitBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.feedbackSvc.Submit(r.Context(), req.Rating, req.Review)
	if err != nil {
		if service.IsValidation(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.Error("submit failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to submit feedback")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Ratings handles GET /v1/feedback/ratings
func (h *FeedbackHandler) Ratings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.RatingOptions())
}
