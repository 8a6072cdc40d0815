package llm

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
)

// ReviewService is the model client behind the review endpoint. It combines
// the fixed reviewer instruction with the caller's code and performs exactly
// one model call per review.
type ReviewService struct {
	ai        config.AIConfig
	promptMgr *PromptManager
	generator Generator
	logger    *slog.Logger
}

var _ core.Reviewer = (*ReviewService)(nil)

func NewReviewService(cfg *config.Config, promptMgr *PromptManager, generator Generator, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		ai:        cfg.AI,
		promptMgr: promptMgr,
		generator: generator,
		logger:    logger,
	}
}

// Review returns the model's review of code. A missing or placeholder key fails
// with core.ErrMissingAPIKey before any network call. Model errors are returned
// unchanged; there is no retry.
func (s *ReviewService) Review(ctx context.Context, code string) (string, error) {
	if (s.ai.RequiresCredential() && !s.ai.HasCredential()) || s.generator == nil {
		s.logger.Error("review generation failed", "error", core.ErrMissingAPIKey)
		return "", core.ErrMissingAPIKey
	}

	prompt, err := s.promptMgr.Render(CodeReviewPrompt, ModelProvider(s.ai.LLMProvider), core.ReviewData{Code: code})
	if err != nil {
		return "", fmt.Errorf("could not render prompt '%s': %w", CodeReviewPrompt, err)
	}

	s.logger.Debug("calling LLM for code review",
		"provider", s.ai.LLMProvider,
		"model", s.ai.GeneratorModel,
		"code_chars", utf8.RuneCountInString(code),
	)

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error("review generation failed", "error", err.Error())
		return "", err
	}

	s.logger.Info("review generated", "chars", utf8.RuneCountInString(text))
	return text, nil
}
