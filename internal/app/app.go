// Package app ties the HTTP server, the fail-fast supervisor and the review
// service into one lifecycle.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/server"
)

// Server is the part of *server.Server the app drives.
type Server interface {
	Start() error
	Stop() error
}

// App holds the main application components.
type App struct {
	cfg        *config.Config
	server     Server
	supervisor *server.Supervisor
	logger     *slog.Logger
}

func NewApp(cfg *config.Config, srv *server.Server, sup *server.Supervisor, logger *slog.Logger) *App {
	return newApp(cfg, srv, sup, logger)
}

func newApp(cfg *config.Config, srv Server, sup *server.Supervisor, logger *slog.Logger) *App {
	return &App{
		cfg:        cfg,
		server:     srv,
		supervisor: sup,
		logger:     logger,
	}
}

// Run serves until ctx is cancelled, the listener fails or a fatal error is
// reported, and then stops the server gracefully. It returns nil only for a
// requested shutdown.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting code reviewer",
		"server_port", a.cfg.Server.Port,
		"provider", a.cfg.AI.LLMProvider,
		"model", a.cfg.AI.GeneratorModel,
	)

	var fatal error
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.server.Start(); err != nil {
			a.logger.Error("failed to start HTTP server", "error", err)
			return err
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-gctx.Done():
		case fatal = <-a.supervisor.Done():
		}
		return a.Stop()
	})

	err := g.Wait()
	if fatal != nil {
		return fmt.Errorf("fatal error while serving: %w", fatal)
	}
	return err
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down code reviewer")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("code reviewer stopped successfully")
	return nil
}
