package rest

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"reviewdesk/internal/logger"
	"reviewdesk/internal/service"
	"reviewdesk/internal/transport/rest/handler"
	"reviewdesk/internal/transport/rest/middleware"
	"reviewdesk/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	FeedbackService  *service.FeedbackService
	DashboardService *service.DashboardService
	WSHub            *ws.Hub
	Logger           *logger.Logger

	// Comma-separated list, "*" when empty
	CORSAllowedOrigins string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	feedbackHandler := handler.NewFeedbackHandler(c.FeedbackService, c.Logger)
	dashboardHandler := handler.NewDashboardHandler(c.DashboardService, c.Logger)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.CORSAllowedOrigins, c.Logger)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	r.Use(middleware.RequestLogger(c.Logger))
	r.Use(corsMiddleware(c.CORSAllowedOrigins))

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/feedback", feedbackHandler.Submit).Methods("POST", "OPTIONS")
	v1.HandleFunc("/feedback/ratings", feedbackHandler.Ratings).Methods("GET", "OPTIONS")
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/docs/openapi.json", handler.OpenAPI).Methods("GET")

	// WebSocket routes (token in query param)
	v1.HandleFunc("/ws/staff", wsHandler.StaffWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Staff routes (require staff auth)
	staffRoutes := v1.PathPrefix("/admin").Subrouter()
	staffRoutes.Use(authMW.RequireStaff)

	staffRoutes.HandleFunc("/feedback", dashboardHandler.Feedback).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/stats", dashboardHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	allowedOrigins = strings.TrimSpace(allowedOrigins)
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	origins := map[string]bool{}
	for _, o := range strings.Split(allowedOrigins, ",") {
		origins[strings.TrimSpace(o)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origins["*"] {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin := r.Header.Get("Origin"); origins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Add("Vary", "Origin")
			}
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
