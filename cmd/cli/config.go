package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-reviewer/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective service configuration",
	Long:  `Load the configuration the service would use from .env and the environment and print it, with the API key masked.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		printConfig(cmd, cfg)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(configCmd)
}

func printConfig(cmd *cobra.Command, cfg *config.Config) {
	out := cmd.OutOrStdout()
	titleColor.Fprintln(out, "Code Reviewer configuration")

	rows := [][2]string{
		{"SERVER_PORT", cfg.Server.Port},
		{"LLM_PROVIDER", cfg.AI.LLMProvider},
		{"GENERATOR_MODEL_NAME", cfg.AI.GeneratorModel},
		{"GOOGLE_GEMINI_KEY", maskKey(cfg.AI.GeminiAPIKey)},
		{"OLLAMA_HOST", cfg.AI.OllamaHost},
		{"MAX_BODY_BYTES", fmt.Sprint(cfg.Server.MaxBodyBytes)},
		{"CORS_ALLOWED_ORIGIN", cfg.Server.CORSAllowedOrigin},
		{"SHUTDOWN_TIMEOUT", cfg.Server.ShutdownTimeout.String()},
		{"LOG_LEVEL", cfg.Logging.Level},
		{"LOG_FORMAT", cfg.Logging.Format},
		{"LOG_OUTPUT", cfg.Logging.Output},
		{"LOG_FILE", cfg.Logging.File},
	}
	for _, row := range rows {
		fmt.Fprintf(out, "  %-22s %s\n", row[0], row[1])
	}

	if cfg.AI.RequiresCredential() && !cfg.AI.HasCredential() {
		errorColor.Fprintln(out, "  ! no usable Gemini API key, reviews will fail")
	}
}

// maskKey keeps the last four characters of a key.
func maskKey(key string) string {
	switch {
	case key == "":
		return "(not set)"
	case key == config.OfflineAPIKey:
		return key + " (offline placeholder)"
	case len(key) <= 4:
		return strings.Repeat("*", len(key))
	default:
		return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
	}
}
