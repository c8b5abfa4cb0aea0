package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sparrowbot/sparrowbot/internal/calc"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/memory"
	"github.com/sparrowbot/sparrowbot/internal/rag"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

// Session is one conversation: a private sliding window over the shared
// bot. A mutex serializes turns so transports may call Chat from any
// goroutine.
type Session struct {
	id  string
	bot *Bot

	mu     sync.Mutex
	window *memory.Window
}

func newSession(b *Bot, id string) *Session {
	return &Session{
		id:     id,
		bot:    b,
		window: memory.NewWindow(b.cfg.MaxTurns),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Chat runs one request/response turn and always returns a printable
// reply. Backend failures come back as in-character apologies; nothing
// here ends the session.
func (s *Session) Chat(ctx context.Context, userMessage string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := log.FromCtx(ctx)
	turnID := uuid.NewString()

	s.record(ctx, turnID, core.RoleUser, userMessage)

	// Arithmetic requests bypass retrieval and the backend entirely.
	if expr, ok := calc.ExtractExpression(userMessage); ok {
		logger.Debug().Str("session", s.id).Str("expr", expr).Msg("calculation request")
		reply := formatCalculation(calc.Evaluate(expr))
		s.record(ctx, turnID, core.RoleAssistant, reply)
		return reply
	}

	var reply string
	if s.bot.ai == nil {
		reply = s.offlineReply(ctx, userMessage)
	} else {
		reply = s.backendReply(ctx, userMessage)
	}

	s.record(ctx, turnID, core.RoleAssistant, reply)
	return reply
}

// Reset clears the conversation window. The knowledge index and the
// archive are untouched; calling it repeatedly is harmless.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window.Clear()
}

// TurnCount reports completed exchanges currently in the window.
func (s *Session) TurnCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.window.TurnCount()
}

// record appends to the window and archives best-effort. Both rows of a
// turn share the turn ID.
func (s *Session) record(ctx context.Context, turnID, role, content string) {
	msg := s.window.Append(role, content)

	if s.bot.archive == nil {
		return
	}
	if err := s.bot.archive.AddMessage(ctx, s.id, turnID, msg); err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("session", s.id).Msg("failed to archive message")
	}
}

// retrieve degrades to no facts on retrieval failure; the turn proceeds
// without augmentation.
func (s *Session) retrieve(ctx context.Context, query string, k int) []string {
	facts, err := s.bot.index.Query(ctx, query, k)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("session", s.id).Msg("retrieval failed")
		return nil
	}
	return facts
}

func (s *Session) offlineReply(ctx context.Context, userMessage string) string {
	log.FromCtx(ctx).Debug().Str("session", s.id).Msg("offline reply")

	facts := s.retrieve(ctx, userMessage, 1)
	if len(facts) > 0 {
		return fmt.Sprintf(s.bot.pick(offlineTemplates), facts[0]) + OfflineTag
	}
	return s.bot.pick(genericFallbacks) + OfflineTag
}

func (s *Session) backendReply(ctx context.Context, userMessage string) string {
	logger := log.FromCtx(ctx)

	prompt := s.buildPrompt(ctx, userMessage)
	if dbg := logger.Debug(); dbg.Enabled() {
		dbg.Str("session", s.id).Int("prompt_tokens", rag.CountTokens(prompt)).Msg("calling backend")
	}

	genCtx, cancel := context.WithTimeout(ctx, s.bot.cfg.BackendTimeout)
	defer cancel()

	reply, err := s.bot.ai.Generate(genCtx, prompt, systemInstruction)
	if err != nil {
		logger.Warn().Err(err).Str("session", s.id).Msg("backend call failed")
		return apologyFor(err)
	}
	return reply
}

// buildPrompt assembles the context blob: numbered facts, the recent
// conversation (which already contains the user turn just recorded) and
// the raw message. Sections with nothing to say are omitted.
func (s *Session) buildPrompt(ctx context.Context, userMessage string) string {
	facts := s.retrieve(ctx, userMessage, 2)
	log.FromCtx(ctx).Debug().Str("session", s.id).Int("facts", len(facts)).Msg("retrieved context")

	var parts []string
	if len(facts) > 0 {
		parts = append(parts, "Relevant facts from your memory:")
		for i, fact := range facts {
			parts = append(parts, fmt.Sprintf("%d. %s", i+1, fact))
		}
	}

	if s.window.TurnCount() > 0 {
		parts = append(parts, "\nRecent conversation:")
		parts = append(parts, s.window.ContextString())
	}

	parts = append(parts, fmt.Sprintf("\nCurrent user message: %s", userMessage))

	return strings.Join(parts, "\n")
}

func formatCalculation(res calc.Result) string {
	if res.OK() {
		return fmt.Sprintf(calcResultFormat, calc.FormatValue(res.Value))
	}
	return fmt.Sprintf(calcErrorFormat, res.Err)
}

func apologyFor(err error) string {
	switch {
	case errors.Is(err, core.ErrUnauthenticated):
		return apologyUnauthenticated
	case errors.Is(err, core.ErrResourceExhausted):
		return apologyQuota
	default:
		return fmt.Sprintf(apologyOtherFormat, err)
	}
}
