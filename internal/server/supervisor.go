package server

import (
	"log/slog"
	"sync"
)

// Supervisor collects fatal errors raised while serving requests. Only the
// first report is kept; the process is expected to stop after it.
type Supervisor struct {
	once   sync.Once
	fatal  chan error
	logger *slog.Logger
}

func NewSupervisor(logger *slog.Logger) *Supervisor {
	return &Supervisor{
		fatal:  make(chan error, 1),
		logger: logger,
	}
}

// Fail reports a fatal error. It never blocks and later calls are ignored.
func (s *Supervisor) Fail(err error) {
	reported := false
	s.once.Do(func() {
		s.fatal <- err
		reported = true
	})
	if reported {
		s.logger.Error("fatal error, shutting down", "error", err)
	} else {
		s.logger.Warn("fatal error after shutdown was requested", "error", err)
	}
}

// Done delivers the first fatal error.
func (s *Supervisor) Done() <-chan error {
	return s.fatal
}
