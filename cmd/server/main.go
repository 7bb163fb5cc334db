package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/permitprep/backend/internal/advisor"
	"github.com/permitprep/backend/internal/analytics"
	"github.com/permitprep/backend/internal/api"
	"github.com/permitprep/backend/internal/domain/question"
	"github.com/permitprep/backend/internal/infrastructure/config"
	"github.com/permitprep/backend/internal/recommend"
	"github.com/permitprep/backend/internal/service"
	"github.com/permitprep/backend/internal/store"

	_ "github.com/permitprep/backend/docs" // generated swagger docs
)

// @title           PermitPrep API
// @version         1.0
// @description     Analytics backend for a California DMV permit-test prep app: attempt recording, study stats, diagnostic scoring, and cached AI study recommendations.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// ── Dependencies ────────────────────────────────────────────────
	db, err := store.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// A missing or malformed question file is not fatal: diagnostic
	// selection falls back to the per-category quota draw.
	generalPool, err := question.Load(cfg.QuestionFile)
	if err != nil {
		logger.Warn("general question pool unavailable", "path", cfg.QuestionFile, "error", err)
	}
	diagnosticPool, err := question.Load(cfg.DiagnosticFile)
	if err != nil {
		logger.Warn("diagnostic question pool unavailable, using quota fallback",
			"path", cfg.DiagnosticFile, "error", err)
	}

	stats := analytics.New(db, logger)
	llm := advisor.NewChatAdvisor(cfg.LLMURL, cfg.LLMModel)
	cache := recommend.NewCache(db, stats, logger)
	recommendationSvc := service.NewRecommendationService(cache, llm, stats, logger)
	defer recommendationSvc.Close()
	handler := api.NewHandler(db, stats, recommendationSvc, diagnosticPool, generalPool, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
