package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/sparrowbot/sparrowbot/internal/core"
)

// Gemini talks to the Gemini API through the official SDK rather than the
// OpenAI-compatible plumbing, so system instructions ride in their native
// field and API errors keep their status codes.
type Gemini struct {
	client *genai.Client
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

func (g *Gemini) Generate(ctx context.Context, prompt, system string) (string, error) {
	cfg := &genai.GenerateContentConfig{}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, "")
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", geminiError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in response")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

// geminiError folds API status codes into the categories the orchestrator
// distinguishes, mirroring statusError on the HTTP side.
func geminiError(err error) error {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("generate: %w", err)
	}

	switch apiErr.Code {
	case 401, 403:
		return fmt.Errorf("generate: %v: %w", err, core.ErrUnauthenticated)
	case 429:
		return fmt.Errorf("generate: %v: %w", err, core.ErrResourceExhausted)
	default:
		return fmt.Errorf("generate: %w", err)
	}
}
