package llm

type Ollama struct {
	*OpenAICompatible
}

// NewOllama talks to a local Ollama server through its OpenAI-compatible
// endpoint. The key is optional and forwarded only when set.
func NewOllama(baseURL, apiKey, model string) *Ollama {
	return &Ollama{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
