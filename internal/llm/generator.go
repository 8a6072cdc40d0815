package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/code-reviewer/internal/config"
)

//go:generate mockgen -destination=../../mocks/mock_generator.go -package=mocks github.com/sevigo/code-reviewer/internal/llm Generator

// Generator sends a fully rendered prompt to the remote model and returns its text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// modelGenerator adapts a goframe model to Generator.
type modelGenerator struct {
	model llms.Model
}

// NewModelGenerator wraps an already constructed goframe model.
func NewModelGenerator(model llms.Model) Generator {
	return &modelGenerator{model: model}
}

func (g *modelGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.model.Call(ctx, prompt)
}

// NewGenerator creates the model client for the configured provider once, at
// start-up. For Gemini without a usable key it returns a nil Generator and no
// error: the process still starts and ReviewService reports the missing key
// on every call.
func NewGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Generator, error) {
	switch cfg.AI.LLMProvider {
	case config.ProviderGemini:
		if !cfg.AI.HasCredential() {
			logger.Warn("gemini API key is not configured, generator disabled", "model", cfg.AI.GeneratorModel)
			return nil, nil
		}
		logger.Info("using Gemini LLM provider", "model", cfg.AI.GeneratorModel)
		model, err := gemini.New(ctx,
			gemini.WithModel(cfg.AI.GeneratorModel),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewModelGenerator(model), nil

	case config.ProviderOllama:
		logger.Info("using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		model, err := ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient()),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewModelGenerator(model), nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

// newOllamaHTTPClient gives local models enough time to load and answer.
func newOllamaHTTPClient() *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   5 * time.Minute,
	}
}
