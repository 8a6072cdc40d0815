// Package handler provides the HTTP handlers of the review service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/sevigo/code-reviewer/internal/apierror"
	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/metrics"
)

// ReviewHandler serves POST /ai/get-review.
type ReviewHandler struct {
	reviewer     core.Reviewer
	metrics      *metrics.Metrics
	validate     *validator.Validate
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewReviewHandler(cfg *config.Config, reviewer core.Reviewer, m *metrics.Metrics, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewer:     reviewer,
		metrics:      m,
		validate:     validator.New(validator.WithRequiredStructEnabled()),
		maxBodyBytes: cfg.Server.MaxBodyBytes,
		logger:       logger,
	}
}

// Handle validates the submitted code, asks the reviewer for a review and
// returns the text as-is. Invalid input never reaches the reviewer.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	req, apiErr := h.decode(w, r)
	if apiErr != nil {
		h.logger.Debug("rejecting review request", "reason", apiErr.Error(), "request_id", middleware.GetReqID(r.Context()))
		h.fail(w, apiErr)
		return
	}

	// The model call runs to completion even if the client goes away.
	ctx := context.WithoutCancel(r.Context())

	start := time.Now()
	text, err := h.reviewer.Review(ctx, req.Code)
	h.metrics.ReviewDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.logger.Error("error in review request", "error", err, "request_id", middleware.GetReqID(r.Context()))
		h.fail(w, classify(err))
		return
	}

	h.metrics.ReviewsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// decode reads and validates the request body. Malformed JSON, a non-object
// body, and a missing, non-string or blank "code" are all the same client error.
func (h *ReviewHandler) decode(w http.ResponseWriter, r *http.Request) (core.ReviewRequest, *apierror.Error) {
	var req core.ReviewRequest

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, apierror.NewTooLarge(tooLarge.Limit)
		}
		return req, apierror.NewInvalidInput(apierror.MsgInvalidCode)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return req, apierror.NewInvalidInput(apierror.MsgInvalidCode)
	}

	code, ok := payload["code"].(string)
	if !ok {
		return req, apierror.NewInvalidInput(apierror.MsgInvalidCode)
	}

	req.Code = code
	req.Normalize()
	if err := h.validate.Struct(req); err != nil {
		return req, apierror.NewInvalidInput(apierror.MsgInvalidCode)
	}
	return req, nil
}

func (h *ReviewHandler) fail(w http.ResponseWriter, e *apierror.Error) {
	h.metrics.ReviewsTotal.WithLabelValues(outcomeOf(e.Type)).Inc()
	apierror.Write(w, e)
}

// classify maps a reviewer error to its API error. Any message mentioning
// "API key" or "API_KEY" is reported as a credential problem, even when the
// model failed for another reason.
func classify(err error) *apierror.Error {
	msg := err.Error()
	if strings.Contains(msg, "API key") || strings.Contains(msg, "API_KEY") {
		return apierror.NewConfigurationError(err)
	}
	return apierror.NewUpstreamError(err)
}

func outcomeOf(t apierror.Type) string {
	switch t {
	case apierror.InvalidInput:
		return metrics.OutcomeInvalidInput
	case apierror.ConfigurationError:
		return metrics.OutcomeConfigError
	case apierror.TooLarge:
		return metrics.OutcomeTooLarge
	default:
		return metrics.OutcomeUpstream
	}
}
