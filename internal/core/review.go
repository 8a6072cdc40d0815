package core

import (
	"errors"
	"strings"
	"unicode"
)

// ErrMissingAPIKey is returned by a Reviewer when no usable model credential
// is configured. Its message carries the "API key" marker that the HTTP layer
// uses to recognise credential problems.
var ErrMissingAPIKey = errors.New("GOOGLE_GEMINI_KEY is not set: the Gemini API key is missing. Please add it to your .env file")

// ReviewRequest is the payload of a single review call.
type ReviewRequest struct {
	Code string `json:"code" validate:"required"`
}

// Normalize trims surrounding whitespace from the code.
func (r *ReviewRequest) Normalize() {
	r.Code = TrimCode(r.Code)
}

// TrimCode strips the whitespace a browser's String.prototype.trim strips:
// Unicode spaces, line terminators and the byte-order mark, but not U+0085.
func TrimCode(code string) string {
	return strings.TrimFunc(code, isCodeSpace)
}

func isCodeSpace(r rune) bool {
	return r == '\uFEFF' || (r != '\u0085' && unicode.IsSpace(r))
}

// ReviewData is the data rendered into review prompts.
type ReviewData struct {
	Code string
}
