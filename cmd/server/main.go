package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"reviewdesk/internal/app"
	"reviewdesk/internal/config"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/transport/rest"
)

// @title reviewdesk API
// @version 1.0
// @description Customer feedback intake with automated replies and a staff dashboard
// @BasePath /v1
func main() {
	cfg, cfgErr := config.Load()
	mode := os.Getenv("LOG_MODE")
	if cfg != nil {
		mode = cfg.LogMode
	}

	log, err := logger.New(mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfgErr != nil {
		log.Fatal("invalid configuration", "error", cfgErr)
	}

	if cfg.UsesDefaultStaffCredentials() {
		log.Warn("staff login uses the development password or JWT secret; set STAFF_PASSWORD and JWT_SECRET")
	}

	log.Info("AI config",
		"provider", cfg.AI.Provider,
		"baseUrl", cfg.AI.BaseURL,
		"userModel", cfg.AI.Models.User,
		"adminModel", cfg.AI.Models.Admin,
		"timeout", cfg.AI.Timeout().String(),
	)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("startup failed", "error", err)
	}

	router := rest.NewRouter(&rest.Container{
		AuthService:        application.AuthService,
		FeedbackService:    application.FeedbackService,
		DashboardService:   application.DashboardService,
		WSHub:              application.WSHub,
		Logger:             log,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting",
			"addr", srv.Addr,
			"store", cfg.StoreDriver,
			"asyncFinalize", cfg.FinalizeAsync,
			"staffUser", cfg.Staff.Username,
		)
		log.Info("endpoints",
			"public", []string{"POST /v1/feedback", "GET /v1/feedback/ratings", "POST /v1/auth/login", "GET /v1/docs/openapi.json", "GET /health"},
			"staff", []string{"GET /v1/admin/feedback", "GET /v1/admin/stats", "WS /v1/ws/staff"},
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ListenAndServe failed", "error", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "error", err)
	}
	application.Close(shutdownCtx)

	log.Info("server exited")
}
