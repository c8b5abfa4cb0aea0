package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// ProviderConfig selects the generation backend. No key is required at
// parse time: a missing credential means the bot runs offline rather
// than failing at startup.
type ProviderConfig struct {
	Provider string `env:"SPARROW_PROVIDER" envDefault:"gemini"`
	Model    string `env:"SPARROW_MODEL" envDefault:"gemini-flash-latest"`

	GeminiAPIKey     string `env:"GEMINI_API_KEY"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	OllamaBaseURL string `env:"OLLAMA_BASE_URL" envDefault:"http://localhost:11434"`
	OllamaAPIKey  string `env:"OLLAMA_API_KEY"`

	CustomBaseURL string `env:"CUSTOM_OPENAI_BASE_URL"`
	CustomAPIKey  string `env:"CUSTOM_OPENAI_API_KEY"`
}

func NewProviderConfig(ctx context.Context) *ProviderConfig {
	c := &ProviderConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Provider config")
	}
	return c
}

// HasCredentials reports whether the configured provider can go online.
func (c ProviderConfig) HasCredentials() bool {
	switch c.Provider {
	case "gemini":
		return c.GeminiAPIKey != ""
	case "openai":
		return c.OpenAIAPIKey != ""
	case "openrouter":
		return c.OpenRouterAPIKey != ""
	case "ollama":
		// Local server, no key required.
		return c.OllamaBaseURL != ""
	case "custom":
		return c.CustomBaseURL != ""
	default:
		return false
	}
}
