package core

import "context"

// AIProvider generates a persona reply for an assembled prompt. The system
// instruction carries the persona; prompt carries facts, recent conversation
// and the current user message.
type AIProvider interface {
	Generate(ctx context.Context, prompt, system string) (string, error)
}

// Embedder maps text into a fixed-dimension vector space. Implementations
// must be deterministic for a given model so that index and query vectors
// stay comparable.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dims() int
}
