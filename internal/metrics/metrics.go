// Package metrics holds the Prometheus collectors of the review service. All
// collectors live in a private registry so tests can build as many instances as
// they need.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Review outcomes, used as the "outcome" label of ReviewsTotal.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeConfigError  = "configuration_error"
	OutcomeUpstream     = "upstream_error"
	OutcomeTooLarge     = "too_large"
)

type Metrics struct {
	registry        *prometheus.Registry
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	ActiveRequests  *prometheus.GaugeVec
	ReviewsTotal    *prometheus.CounterVec
	ReviewDuration  prometheus.Histogram
	PanicsTotal     prometheus.Counter
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		registry: registry,
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "code_reviewer_http_requests_total",
				Help: "Total number of HTTP requests by route and status",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "code_reviewer_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		ActiveRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "code_reviewer_http_active_requests",
				Help: "Number of HTTP requests currently being served",
			},
			[]string{"method"},
		),
		ReviewsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "code_reviewer_reviews_total",
				Help: "Total number of review requests by outcome",
			},
			[]string{"outcome"},
		),
		ReviewDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "code_reviewer_review_duration_seconds",
				Help:    "Time spent waiting for the model to answer a review",
				Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
			},
		),
		PanicsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "code_reviewer_panics_total",
				Help: "Total number of panics recovered in HTTP handlers",
			},
		),
	}

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	for _, outcome := range []string{OutcomeSuccess, OutcomeInvalidInput, OutcomeConfigError, OutcomeUpstream, OutcomeTooLarge} {
		m.ReviewsTotal.WithLabelValues(outcome).Add(0)
	}

	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: false,
	})
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
