package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-reviewer/internal/apierror"
	"github.com/sevigo/code-reviewer/internal/metrics"
)

// FailFast recovers a panicking handler, answers 500 and reports the panic to
// the supervisor so the process shuts down instead of running on in an
// unknown state.
func FailFast(sup *Supervisor, m *metrics.Metrics, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic recovered",
					"error", rvr,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
					"stack", string(debug.Stack()),
				)
				m.PanicsTotal.Inc()

				err := fmt.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rvr)
				if !headersWritten(w) {
					apierror.Write(w, apierror.NewInternalError(err))
				}
				sup.Fail(err)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// headersWritten reports whether the response has already started. Once it
// has, the status cannot change and the partial body is left as is.
func headersWritten(w http.ResponseWriter) bool {
	ww, ok := w.(middleware.WrapResponseWriter)
	return ok && ww.Status() != 0
}

// CORS allows browser front-ends on allowedOrigin to call the API.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, X-Request-Id")
			if allowedOrigin != "*" {
				w.Header().Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
