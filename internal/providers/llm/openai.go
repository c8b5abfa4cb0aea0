package llm

// OpenAI rides the shared OpenAI-compatible transport against the hosted
// endpoint.
type OpenAI struct {
	*OpenAICompatible
}

func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    "https://api.openai.com",
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
		}),
	}
}
