package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/server"
)

// fakeServer blocks in Start until Stop is called, like http.Server.
type fakeServer struct {
	startErr error
	stopped  chan struct{}
	stops    atomic.Int32
}

func newFakeServer(startErr error) *fakeServer {
	return &fakeServer{startErr: startErr, stopped: make(chan struct{})}
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Stop() error {
	if f.stops.Add(1) == 1 {
		close(f.stopped)
	}
	return nil
}

func newTestApp(srv Server) (*App, *server.Supervisor) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sup := server.NewSupervisor(logger)
	cfg := &config.Config{Server: config.ServerConfig{Port: "3000"}}
	return newApp(cfg, srv, sup, logger), sup
}

func runAsync(ctx context.Context, a *App) <-chan error {
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	return done
}

func wait(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
		return nil
	}
}

func TestRun_ContextCancelStopsGracefully(t *testing.T) {
	srv := newFakeServer(nil)
	a, _ := newTestApp(srv)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, a)
	cancel()

	assert.NoError(t, wait(t, done))
	assert.Equal(t, int32(1), srv.stops.Load())
}

func TestRun_FatalErrorStopsWithError(t *testing.T) {
	srv := newFakeServer(nil)
	a, sup := newTestApp(srv)

	done := runAsync(context.Background(), a)
	panicErr := errors.New("panic serving POST /ai/get-review: boom")
	sup.Fail(panicErr)

	err := wait(t, done)
	require.Error(t, err)
	assert.ErrorIs(t, err, panicErr)
	assert.Equal(t, int32(1), srv.stops.Load())
}

func TestRun_ListenerErrorIsReturned(t *testing.T) {
	listenErr := errors.New("address already in use")
	a, _ := newTestApp(newFakeServer(listenErr))

	err := wait(t, runAsync(context.Background(), a))
	assert.ErrorIs(t, err, listenErr)
}
