//go:build wireinject
// +build wireinject

package wire

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/code-reviewer/internal/app"
	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
	"github.com/sevigo/code-reviewer/internal/logger"
	"github.com/sevigo/code-reviewer/internal/metrics"
	"github.com/sevigo/code-reviewer/internal/server"
	"github.com/sevigo/code-reviewer/internal/server/handler"
)

var reviewSet = wire.NewSet(
	config.LoadConfig,
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
	llm.NewPromptManager,
	llm.NewGenerator,
	llm.NewReviewService,
)

func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(
		reviewSet,
		wire.Bind(new(core.Reviewer), new(*llm.ReviewService)),
		metrics.NewMetrics,
		server.NewSupervisor,
		handler.NewReviewHandler,
		server.NewRouter,
		server.NewServer,
		app.NewApp,
	)
	return &app.App{}, nil, nil
}

func InitializeReviewer(ctx context.Context) (*llm.ReviewService, func(), error) {
	wire.Build(reviewSet)
	return &llm.ReviewService{}, nil, nil
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
