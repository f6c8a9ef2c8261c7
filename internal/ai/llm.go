package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/opsdata/opschat/internal/constants"
)

// ModelConfig selects and configures the language model provider.
type ModelConfig struct {
	// Provider is "googleai" (Gemini) or "openai" (any OpenAI-compatible
	// endpoint; routed through OpenRouter).
	Provider string
	APIKey   string
	// Model overrides the provider default.
	Model string
}

// NewModel builds the llms.Model for the configured provider.
func NewModel(ctx context.Context, cfg ModelConfig) (llms.Model, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider == "" {
		provider = constants.ProviderGoogleAI
	}

	switch provider {
	case constants.ProviderGoogleAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required")
		}
		model := cfg.Model
		if model == "" {
			model = constants.DefaultGeminiModel
		}
		llm, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini LLM: %w", err)
		}
		return llm, nil

	case constants.ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
		}
		model := cfg.Model
		if model == "" {
			model = constants.DefaultOpenRouterModel
		}
		llm, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithBaseURL(constants.OpenRouterBaseURL),
			openai.WithModel(model),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OpenRouter LLM: %w", err)
		}
		return llm, nil

	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
