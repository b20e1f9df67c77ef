package handler

import (
	"net/http"

	"reviewdesk/internal/logger"
	"reviewdesk/internal/model"
	"reviewdesk/internal/service"
	"reviewdesk/internal/transport/rest/middleware"
)

// DashboardHandler handles the staff dashboard endpoints
type DashboardHandler struct {
	dashboardSvc *service.DashboardService
	log          *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardSvc *service.DashboardService, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardSvc: dashboardSvc,
		log:          log.With("component", "DashboardHandler"),
	}
}

type recordsResponse struct {
	Items   []model.FeedbackRecord `json:"items"`
	Empty   bool                   `json:"empty"`
	Message string                 `json:"message,omitempty"`
}

// Feedback handles GET /v1/admin/feedback?view=
func (h *DashboardHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	view := r.URL.Query().Get("view")
	if view == "" {
		records, err := h.dashboardSvc.Records(r.Context())
		if err != nil {
			h.storeError(w, r, err)
			return
		}
		resp := recordsResponse{Items: records, Empty: len(records) == 0}
		if resp.Empty {
			resp.Message = service.EmptyStateMessage
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if !model.ValidView(model.FeedbackView(view)) {
		writeError(w, http.StatusBadRequest, "unknown view: "+view)
		return
	}

	page, err := h.dashboardSvc.View(r.Context(), model.FeedbackView(view))
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// Stats handles GET /v1/admin/stats
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboardSvc.Stats(r.Context())
	if err != nil {
		h.storeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *DashboardHandler) storeError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("failed to read feedback",
		"requestId", middleware.GetRequestID(r.Context()),
		"staffId", middleware.GetStaffID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "failed to load feedback")
}
