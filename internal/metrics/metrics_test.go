package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_InstancesAreIndependent(t *testing.T) {
	m1 := NewMetrics()
	m2 := NewMetrics()

	m1.ReviewsTotal.WithLabelValues(OutcomeSuccess).Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m1.ReviewsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m2.ReviewsTotal.WithLabelValues(OutcomeSuccess)))
}

func TestNewMetrics_PreinitializesReviewOutcomes(t *testing.T) {
	m := NewMetrics()

	n, err := testutil.GatherAndCount(m.Registry(), "code_reviewer_reviews_total")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestHandler_ExposesReviewCounter(t *testing.T) {
	m := NewMetrics()
	m.ReviewsTotal.WithLabelValues(OutcomeUpstream).Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `code_reviewer_reviews_total{outcome="upstream_error"} 1`)
	assert.Contains(t, string(body), `code_reviewer_reviews_total{outcome="success"} 0`)
}

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Get("/ok", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/items/1", "/items/2", "/ok", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/items/{id}", "418")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestsTotal.WithLabelValues("/ok", "200")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.ActiveRequests.WithLabelValues(http.MethodGet)))
}
