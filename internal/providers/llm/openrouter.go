package llm

import (
	"github.com/sparrowbot/sparrowbot/internal/core"
)

type OpenRouter struct {
	*OpenAICompatible
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://openrouter.ai/api",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.SparrowRepositoryURL,
				"X-Title":      core.SparrowName,
			},
		}),
	}
}
