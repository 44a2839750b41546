package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"zenbot/internal/api/openai"
	"zenbot/internal/composer"
	"zenbot/internal/config"
	"zenbot/internal/router"
	"zenbot/internal/server"
	"zenbot/internal/sheets"
	"zenbot/internal/telemetry"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Initialize OpenTelemetry
	shutdownTracer, err := telemetry.InitTracer("zenbot", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Completion client and the two composers sharing it
	client := openai.NewClient(cfg.OpenAI.APIKey)
	conversational := composer.NewConversational(client, cfg.OpenAI.Model, logger)
	code := composer.NewCode(client, cfg.OpenAI.Model, logger)

	// Spreadsheet audit log with the ambient-then-keyfile credential chain
	resolver := sheets.NewChainResolver(cfg.Sheets.CredsFile, logger)
	audit := sheets.NewLogger(cfg.Sheets, resolver, logger)

	rt := router.New(conversational, code, audit, logger)

	srv := server.New(cfg.Server.Port, logger)
	server.NewWebhookHandler(rt, audit, logger).Register(srv.Router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("webhook ready",
		slog.Int("port", cfg.Server.Port),
		slog.String("model", cfg.OpenAI.Model),
	)

	// Wait for shutdown signal or listener failure
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	case <-sigChan:
		logger.Info("shutdown signal received, stopping server...")
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server shutdown complete")
}
