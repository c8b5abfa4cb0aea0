// Package rag implements the knowledge retrieval index.
//
// The index is a flat in-memory list of (fact, embedding) pairs. Loading
// embeds every fact and swaps the whole list atomically; a query embeds the
// input once and linearly scores all entries by cosine similarity. There is
// no incremental mutation: a reload replaces everything.
package rag

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// Document is one indexed fact with its embedding.
type Document struct {
	Text      string
	Embedding []float32
}

type Index struct {
	mu       sync.RWMutex
	embedder core.Embedder
	docs     []Document
}

func NewIndex(embedder core.Embedder) *Index {
	return &Index{embedder: embedder}
}

// Load embeds the given facts and replaces the index contents. On error the
// previous contents stay in place. An empty slice clears the index.
func (idx *Index) Load(ctx context.Context, facts []string) error {
	logger := log.FromCtx(ctx)

	docs := make([]Document, 0, len(facts))
	for _, fact := range facts {
		text, wasCut := truncateFact(fact)
		if wasCut {
			logger.Warn().
				Int("limit_tokens", factTokenLimit).
				Str("fact", text[:min(len(text), 60)]).
				Msg("fact exceeds token limit, truncated")
		}
		vec, err := idx.embedder.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("embed fact: %w", err)
		}
		docs = append(docs, Document{Text: text, Embedding: vec})
	}

	idx.mu.Lock()
	idx.docs = docs
	idx.mu.Unlock()

	logger.Debug().Int("facts", len(docs)).Msg("knowledge index loaded")
	return nil
}

// LoadFile reads one fact per line, skips blank lines and replaces the index
// contents. A missing file surfaces as os.ErrNotExist; callers treat that as
// a warning, not a fatal condition.
func (idx *Index) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	var facts []string
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		facts = append(facts, line)
	}
	if err := sc.Err(); err != nil {
		return 0, fmt.Errorf("read knowledge file: %w", err)
	}

	if err := idx.Load(ctx, facts); err != nil {
		return 0, err
	}
	return len(facts), nil
}

// Query returns the k most similar facts, best first. Ties keep insertion
// order. An empty index yields no results without touching the embedder;
// embedding failures are the caller's to degrade on.
func (idx *Index) Query(ctx context.Context, text string, k int) ([]string, error) {
	if k <= 0 {
		return nil, nil
	}

	// Loads replace the slice wholesale and never mutate entries in place,
	// so a snapshot taken under RLock stays valid after release.
	idx.mu.RLock()
	docs := idx.docs
	idx.mu.RUnlock()

	if len(docs) == 0 {
		return nil, nil
	}

	qvec, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, len(docs))
	for i, d := range docs {
		ranked[i] = scored{text: d.Text, score: cosineSimilarity(qvec, d.Embedding)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]string, k)
	for i := range out {
		out[i] = ranked[i].text
	}
	return out, nil
}

func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
