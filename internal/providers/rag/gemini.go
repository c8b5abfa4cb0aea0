// Package rag provides the embedding backends behind the knowledge index.
package rag

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/pkg/retry"
)

// GeminiEmbedder embeds text through the Gemini embedding API. Calls run
// behind a short backoff retry because the startup knowledge load fires a
// burst of requests and transient failures there are common.
type GeminiEmbedder struct {
	client  *genai.Client
	model   string
	dims    int
	retrier *retry.Retrier
}

func NewGeminiEmbedder(ctx context.Context, cfg *config.EmbeddingConfig) (*GeminiEmbedder, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiEmbedder{
		client: client,
		model:  cfg.Model,
		dims:   cfg.Dimensions,
		retrier: retry.NewRetrier(&retry.Config{
			MaxRetries:    3,
			BackoffFactor: 2.0,
			InitialDelay:  200 * time.Millisecond,
			MaxDelay:      2 * time.Second,
			Jitter:        50 * time.Millisecond,
		}),
	}, nil
}

func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	embedCfg := &genai.EmbedContentConfig{}
	if e.dims > 0 {
		embedCfg.OutputDimensionality = genai.Ptr(int32(e.dims))
	}

	var values []float32
	err := e.retrier.Do(ctx, func() error {
		resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), embedCfg)
		if err != nil {
			// Client-side rejections (bad key, bad request) will not heal
			// on a retry; only rate limits and server hiccups might.
			var apiErr genai.APIError
			if errors.As(err, &apiErr) && apiErr.Code != 429 && apiErr.Code < 500 {
				return retry.Permanent(err)
			}
			return err
		}
		if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
			return fmt.Errorf("empty embedding response")
		}
		values = resp.Embeddings[0].Values
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("gemini embedding: %w", err)
	}
	return values, nil
}

func (e *GeminiEmbedder) Dims() int { return e.dims }
