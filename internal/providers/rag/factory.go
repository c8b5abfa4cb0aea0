package rag

import (
	"context"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// NewEmbedder picks the embedding backend: Gemini when an API key is
// configured, the deterministic hash fallback otherwise. Both satisfy the
// same contract, so the index never knows the difference.
func NewEmbedder(ctx context.Context, cfg *config.EmbeddingConfig) (core.Embedder, error) {
	logger := log.FromCtx(ctx)

	if cfg.GeminiAPIKey != "" {
		logger.Info().
			Str("model", cfg.Model).
			Int("dims", cfg.Dimensions).
			Msg("using gemini embeddings")
		return NewGeminiEmbedder(ctx, cfg)
	}

	logger.Info().
		Int("dims", DefaultHashDims).
		Msg("no embedding credentials, using hash embeddings")
	return NewHashEmbedder(DefaultHashDims), nil
}
