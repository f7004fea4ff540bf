package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	httpadapter "github.com/kirillkom/email-triage-assistant/internal/adapters/http"
	"github.com/kirillkom/email-triage-assistant/internal/bootstrap"
	"github.com/kirillkom/email-triage-assistant/internal/config"
	"github.com/kirillkom/email-triage-assistant/internal/observability/logging"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_load_failed", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.NewJSONLogger(bootstrap.ServiceName, cfg.LogLevel))
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		slog.Warn("dotenv_load_failed", "error", envErr)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	router := httpadapter.NewRouter(
		cfg,
		app.TriageUC,
		app.FileTriageUC,
		app.Metrics,
		httpadapter.WithCircuitReporter(app.Breakers),
	).Handler()
	server := &http.Server{
		Addr:              ":" + cfg.APIPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		// Three sequential model calls, each bounded by LLM_TIMEOUT_SECONDS.
		WriteTimeout: 3*cfg.LLMTimeout() + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("api_listening", "addr", server.Addr, "model", cfg.GeminiModel, "allowed_origins", cfg.AllowedOrigins)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api_server_failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("api_shutdown_failed", "error", err)
	}
}
