package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-reviewer/internal/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"

	// OfflineAPIKey is the placeholder key used for local runs without network access.
	// It is treated exactly like a missing key.
	OfflineAPIKey = "dummy-key"
)

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Logging logger.Config
}

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Port              string
	MaxBodyBytes      int64
	CORSAllowedOrigin string
	ShutdownTimeout   time.Duration
}

// AIConfig holds the settings of the remote model.
type AIConfig struct {
	LLMProvider    string
	GeminiAPIKey   string
	GeneratorModel string
	OllamaHost     string
}

// HasCredential reports whether a usable API key is configured.
func (c AIConfig) HasCredential() bool {
	key := strings.TrimSpace(c.GeminiAPIKey)
	return key != "" && key != OfflineAPIKey
}

// RequiresCredential reports whether the configured provider authenticates with an API key.
func (c AIConfig) RequiresCredential() bool {
	return c.LLMProvider == ProviderGemini
}

// Validate checks provider and model settings.
func (c AIConfig) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini, ProviderOllama:
	default:
		return fmt.Errorf("unsupported LLM provider: %s", c.LLMProvider)
	}
	if c.GeneratorModel == "" {
		return errors.New("GENERATOR_MODEL_NAME must not be empty")
	}
	if c.LLMProvider == ProviderOllama && c.OllamaHost == "" {
		return errors.New("OLLAMA_HOST must be set for the ollama provider")
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Server.MaxBodyBytes)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must not be negative, got %s", c.Server.ShutdownTimeout)
	}
	return c.AI.Validate()
}

// LoadConfig reads configuration from a .env file in the working directory and
// from environment variables, applies defaults and validates the result.
// A missing API key is not an error; it is reported as a warning and every
// review call fails until the key is provided.
func LoadConfig() (*Config, error) {
	return load(viper.New(), ".env")
}

func load(v *viper.Viper, envFile string) (*Config, error) {
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("GENERATOR_MODEL_NAME", "gemini-2.0-flash")
	v.SetDefault("OLLAMA_HOST", "http://localhost:11434")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("LOG_FILE", "code-reviewer.log")
	v.SetDefault("MAX_BODY_BYTES", 100*1024)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "30s")

	// An explicit config file that does not exist surfaces as fs.ErrNotExist,
	// not as ConfigFileNotFoundError.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.Error("failed to read config file", "file", envFile, "error", err)
		}
	}

	apiKey := v.GetString("GOOGLE_GEMINI_KEY")
	if apiKey == "" {
		apiKey = v.GetString("GEMINI_API_KEY")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:              v.GetString("SERVER_PORT"),
			MaxBodyBytes:      v.GetInt64("MAX_BODY_BYTES"),
			CORSAllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
			ShutdownTimeout:   v.GetDuration("SHUTDOWN_TIMEOUT"),
		},
		AI: AIConfig{
			LLMProvider:    strings.ToLower(v.GetString("LLM_PROVIDER")),
			GeminiAPIKey:   apiKey,
			GeneratorModel: v.GetString("GENERATOR_MODEL_NAME"),
			OllamaHost:     v.GetString("OLLAMA_HOST"),
		},
		Logging: logger.Config{
			Level:  strings.ToLower(v.GetString("LOG_LEVEL")),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
			File:   v.GetString("LOG_FILE"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.AI.RequiresCredential() && !cfg.AI.HasCredential() {
		slog.Warn("GOOGLE_GEMINI_KEY is not set in environment variables, review requests will fail")
	}

	return cfg, nil
}
