package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// EmbeddingConfig shares GEMINI_API_KEY with the generation backend.
// Without it the hashing embedder is used instead.
type EmbeddingConfig struct {
	Model        string `env:"SPARROW_EMBEDDING_MODEL" envDefault:"gemini-embedding-001"`
	Dimensions   int    `env:"SPARROW_EMBEDDING_DIMS" envDefault:"768"`
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
}

func NewEmbeddingConfig(ctx context.Context) *EmbeddingConfig {
	c := &EmbeddingConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Embedding config")
	}
	return c
}
