// Package bot is the response orchestrator: it turns one user message into
// one in-character reply, combining the calculator, the knowledge index,
// the conversation window and the generation backend.
package bot

import (
	"math/rand"
	"sync"
	"time"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/rag"
)

// Bot holds the collaborators shared by every conversation. The provider is
// nil in offline mode; the archive is optional. Sessions hang off the bot
// keyed by transport identity and each owns its private window.
type Bot struct {
	cfg     *config.AppConfig
	ai      core.AIProvider
	index   *rag.Index
	archive core.TranscriptRepository

	mu       sync.Mutex
	sessions map[string]*Session

	rngMu sync.Mutex
	rng   *rand.Rand
}

type Option func(*Bot)

// WithRand fixes the source behind offline template selection.
func WithRand(r *rand.Rand) Option {
	return func(b *Bot) { b.rng = r }
}

func New(cfg *config.AppConfig, ai core.AIProvider, index *rag.Index, archive core.TranscriptRepository, opts ...Option) *Bot {
	b := &Bot{
		cfg:      cfg,
		ai:       ai,
		index:    index,
		archive:  archive,
		sessions: make(map[string]*Session),
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Online reports whether a generation backend is configured.
func (b *Bot) Online() bool {
	return b.ai != nil
}

// Session returns the conversation for the given transport identity,
// creating it on first use.
func (b *Bot) Session(id string) *Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[id]
	if !ok {
		s = newSession(b, id)
		b.sessions[id] = s
	}
	return s
}

// pick selects one canned line. Sessions share the source, so it carries
// its own lock.
func (b *Bot) pick(lines []string) string {
	b.rngMu.Lock()
	defer b.rngMu.Unlock()
	return lines[b.rng.Intn(len(lines))]
}
