package llm

import (
	"context"
	"fmt"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// NewProvider creates the appropriate AIProvider based on configuration.
// Callers decide offline mode beforehand via cfg.HasCredentials; an
// unknown provider name is always an error.
func NewProvider(ctx context.Context, cfg *config.ProviderConfig) (core.AIProvider, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case "gemini":
		return NewGemini(ctx, cfg.GeminiAPIKey, cfg.Model)
	case "openai":
		return NewOpenAI(cfg.OpenAIAPIKey, cfg.Model), nil
	case "openrouter":
		return NewOpenRouter(cfg.OpenRouterAPIKey, cfg.Model), nil
	case "ollama":
		return NewOllama(cfg.OllamaBaseURL, cfg.OllamaAPIKey, cfg.Model), nil
	case "custom":
		return NewCustomOpenAI(cfg.CustomBaseURL, cfg.CustomAPIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}
