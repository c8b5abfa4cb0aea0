package rag

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// DefaultHashDims matches the MiniLM family's dimensionality so vector
// shapes look familiar in logs and tests.
const DefaultHashDims = 384

// HashEmbedder is the credential-less fallback: a deterministic bag-of-words
// embedding built with the signed hashing trick. It captures token overlap
// rather than meaning, which is enough to keep offline retrieval ranked and
// tests hermetic.
type HashEmbedder struct {
	dims int
}

func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDims
	}
	return &HashEmbedder{dims: dims}
}

func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dims)

	for _, word := range tokenize(text) {
		h := fnv.New64a()
		h.Write([]byte(word))
		sum := h.Sum64()

		idx := int(sum % uint64(e.dims))
		sign := float32(1)
		if sum&(1<<63) != 0 {
			sign = -1
		}
		vec[idx] += sign
	}

	// L2-normalize; text with no tokens stays a zero vector, which scores
	// zero against everything.
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm > 0 {
		inv := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= inv
		}
	}
	return vec, nil
}

func (e *HashEmbedder) Dims() int { return e.dims }

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
