// Package apierror defines the error taxonomy of the review API and the single
// JSON shape every failure is written in:
//
//	{"error": "<message>"}
//
// Handlers build an *Error with one of the constructors and pass it to Write.
// The wrapped cause is kept for logging and errors.Is/As, never sent to clients.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Type categorizes an API error. Each type has a fixed HTTP status.
type Type string

const (
	// InvalidInput is a client request that cannot be reviewed.
	InvalidInput Type = "invalid_input"

	// ConfigurationError means the service is missing its model credential.
	ConfigurationError Type = "configuration_error"

	// UpstreamError is a failure reported by the remote model.
	UpstreamError Type = "upstream_error"

	// InternalError is an unexpected failure inside the service.
	InternalError Type = "internal_error"

	// TooLarge is a request body above the configured limit.
	TooLarge Type = "too_large"
)

// Messages sent to clients for the fixed-text error cases.
const (
	MsgInvalidCode   = "Code is required and must be a non-empty string"
	MsgInvalidAPIKey = "Invalid or missing Google Gemini API key. Please check your .env file."
	MsgInternal      = "Internal server error"
	MsgBodyTooLarge  = "request entity too large"
)

// Error is an API failure with the status it is reported with.
type Error struct {
	Type    Type
	Message string
	Code    int
	err     error
}

// Response is the wire format of every error body.
type Response struct {
	Error string `json:"error"`
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error of the same type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

func NewInvalidInput(message string) *Error {
	return &Error{Type: InvalidInput, Message: message, Code: http.StatusBadRequest}
}

func NewConfigurationError(err error) *Error {
	return &Error{Type: ConfigurationError, Message: MsgInvalidAPIKey, Code: http.StatusInternalServerError, err: err}
}

// NewUpstreamError reports the model's own error message to the client, or the
// generic internal message when it has none.
func NewUpstreamError(err error) *Error {
	msg := MsgInternal
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Type: UpstreamError, Message: msg, Code: http.StatusInternalServerError, err: err}
}

func NewInternalError(err error) *Error {
	return &Error{Type: InternalError, Message: MsgInternal, Code: http.StatusInternalServerError, err: err}
}

func NewTooLarge(limit int64) *Error {
	return &Error{
		Type:    TooLarge,
		Message: MsgBodyTooLarge,
		Code:    http.StatusRequestEntityTooLarge,
		err:     fmt.Errorf("body exceeds %d bytes", limit),
	}
}

// Write sends e as a JSON error body with its status code.
func Write(w http.ResponseWriter, e *Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Code)
	_ = json.NewEncoder(w).Encode(Response{Error: e.Message})
}
