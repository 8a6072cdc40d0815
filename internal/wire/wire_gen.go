// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/sevigo/code-reviewer/internal/app"
	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/llm"
	"github.com/sevigo/code-reviewer/internal/logger"
	"github.com/sevigo/code-reviewer/internal/metrics"
	"github.com/sevigo/code-reviewer/internal/server"
	"github.com/sevigo/code-reviewer/internal/server/handler"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	reviewService, slogLogger, cfg, cleanup, err := initializeReview(ctx)
	if err != nil {
		return nil, nil, err
	}

	metricsMetrics := metrics.NewMetrics()
	supervisor := server.NewSupervisor(slogLogger)
	reviewHandler := handler.NewReviewHandler(cfg, reviewService, metricsMetrics, slogLogger)
	mux := server.NewRouter(cfg, reviewHandler, metricsMetrics, supervisor, slogLogger)
	srv := server.NewServer(cfg, mux, slogLogger)
	application := app.NewApp(cfg, srv, supervisor, slogLogger)

	return application, cleanup, nil
}

// InitializeReviewer builds only the review service, for in-process use.
func InitializeReviewer(ctx context.Context) (*llm.ReviewService, func(), error) {
	reviewService, _, _, cleanup, err := initializeReview(ctx)
	if err != nil {
		return nil, nil, err
	}
	return reviewService, cleanup, nil
}

func initializeReview(ctx context.Context) (*llm.ReviewService, *slog.Logger, *config.Config, func(), error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	loggerConfig := provideLoggerConfig(cfg)
	writer, cleanup, err := provideLogWriter(loggerConfig)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	slogLogger := provideSlogLogger(loggerConfig, writer)

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Generator LLM
	generator, err := llm.NewGenerator(ctx, cfg, slogLogger)
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}

	// Review Service
	reviewService := llm.NewReviewService(cfg, promptMgr, generator, slogLogger)

	return reviewService, slogLogger, cfg, cleanup, nil
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(loggerConfig logger.Config) (io.Writer, func(), error) {
	return logger.OpenOutput(loggerConfig)
}

func provideSlogLogger(loggerConfig logger.Config, writer io.Writer) *slog.Logger {
	l := logger.NewLogger(loggerConfig, writer)
	slog.SetDefault(l)
	return l
}
