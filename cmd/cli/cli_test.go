package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-reviewer/internal/config"
)

func TestRequestReview(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "Success",
			status:      http.StatusOK,
			contentType: "text/plain; charset=utf-8",
			body:        "✅ Good Code",
			want:        "✅ Good Code",
		},
		{
			name:        "Validation error",
			status:      http.StatusBadRequest,
			contentType: "application/json",
			body:        `{"error":"Code is required and must be a non-empty string"}`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Code is required and must be a non-empty string",
		},
		{
			name:        "Plain text error",
			status:      http.StatusBadGateway,
			contentType: "text/plain",
			body:        "bad gateway\n",
			wantStatus:  http.StatusBadGateway,
			wantMessage: "bad gateway",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotCode string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/ai/get-review", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var payload map[string]string
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				gotCode = payload["code"]

				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := requestReview(context.Background(), srv.Client(), srv.URL+"/", "x := 1")
			assert.Equal(t, "x := 1", gotCode)

			if tt.wantStatus != 0 {
				var se *serverError
				require.ErrorAs(t, err, &se)
				assert.Equal(t, tt.wantStatus, se.Status)
				assert.Equal(t, tt.wantMessage, se.Message)
				assert.Equal(t, tt.wantMessage, errorMessage(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestReview_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := requestReview(ctx, &http.Client{}, url, "x")
	assert.Error(t, err)
}

func TestReadSource(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(file, []byte("package main\n"), 0o600))

	name, code, err := readSource([]string{file}, nil)
	require.NoError(t, err)
	assert.Equal(t, file, name)
	assert.Equal(t, "package main\n", code)

	name, code, err = readSource(nil, strings.NewReader("print(1)"))
	require.NoError(t, err)
	assert.Equal(t, "stdin", name)
	assert.Equal(t, "print(1)", code)

	name, _, err = readSource([]string{"-"}, strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, "stdin", name)

	_, _, err = readSource([]string{filepath.Join(dir, "missing.go")}, nil)
	assert.Error(t, err)
}

func TestMaskKey(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"", "(not set)"},
		{"dummy-key", "dummy-key (offline placeholder)"},
		{"abc", "***"},
		{"AIzaSyExample1234", "*************1234"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, maskKey(tt.key))
		})
	}
}

func TestPrintConfig_MasksKey(t *testing.T) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	printConfig(cmd, &config.Config{
		Server: config.ServerConfig{Port: "3000", MaxBodyBytes: 102400, CORSAllowedOrigin: "*", ShutdownTimeout: 30 * time.Second},
		AI:     config.AIConfig{LLMProvider: config.ProviderGemini, GeminiAPIKey: "secret-value-9876", GeneratorModel: "gemini-2.0-flash"},
	})

	assert.Contains(t, out.String(), "*************9876")
	assert.NotContains(t, out.String(), "secret-value")
	assert.Contains(t, out.String(), "gemini-2.0-flash")
}

func TestErrorMessage_PlainError(t *testing.T) {
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))
}
