package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/rag"
)

const (
	factPearl = "The Black Pearl be the fastest ship in the Caribbean."
	factRum   = "Rum never lasts long aboard."
)

type fakeProvider struct {
	reply   string
	err     error
	calls   int
	prompts []string
	systems []string
}

func (f *fakeProvider) Generate(_ context.Context, prompt, system string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	f.systems = append(f.systems, system)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type stubEmbedder struct {
	vectors map[string][]float32
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if v, ok := e.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func (e *stubEmbedder) Dims() int { return 3 }

type archivedRow struct {
	sessionID string
	turnID    string
	msg       core.Message
}

type fakeArchive struct {
	mu   sync.Mutex
	err  error
	rows []archivedRow
}

func (f *fakeArchive) AddMessage(_ context.Context, sessionID, turnID string, msg core.Message) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, archivedRow{sessionID: sessionID, turnID: turnID, msg: msg})
	return nil
}

func (f *fakeArchive) GetMessages(context.Context, string, int) ([]core.Message, error) {
	return nil, nil
}

func (f *fakeArchive) Sessions(context.Context) ([]string, error) {
	return nil, nil
}

func testConfig() *config.AppConfig {
	return &config.AppConfig{MaxTurns: 10, BackendTimeout: time.Second}
}

func newTestBot(t *testing.T, ai core.AIProvider, facts []string, archive core.TranscriptRepository, opts ...Option) *Bot {
	t.Helper()

	embedder := &stubEmbedder{vectors: map[string][]float32{
		factPearl:                       {1, 0, 0},
		factRum:                         {0, 1, 0},
		"Tell me about the Black Pearl": {1, 0.2, 0},
	}}
	index := rag.NewIndex(embedder)
	require.NoError(t, index.Load(context.Background(), facts))

	return New(testConfig(), ai, index, archive, opts...)
}

func TestChat_CalculationRequest(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "multiplication",
			message: "Can you calculate 25 * 4 for me?",
			want:    "By me calculations, that be **100**, savvy?",
		},
		{
			name:    "fractional division",
			message: "calculate 7 / 2",
			want:    "By me calculations, that be **3.5**, savvy?",
		},
		{
			name:    "division by zero",
			message: "what is 10 / 0",
			want:    "Arr, there be a problem with yer sum: division by zero",
		},
		{
			name:    "malformed expression",
			message: "calculate (3 + ",
			want:    "Arr, there be a problem with yer sum: invalid expression: unexpected end of expression",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ai := &fakeProvider{reply: "should not be used"}
			b := newTestBot(t, ai, []string{factPearl}, nil)

			got := b.Session("cli-local").Chat(context.Background(), tt.message)

			assert.Equal(t, tt.want, got)
			assert.Equal(t, 0, ai.calls, "calculation must bypass the backend")
			assert.False(t, strings.HasSuffix(got, OfflineTag))
		})
	}
}

func TestChat_CalculationRecordsBothTurns(t *testing.T) {
	archive := &fakeArchive{}
	b := newTestBot(t, nil, nil, archive)

	b.Session("cli-local").Chat(context.Background(), "calculate 2 + 2")

	require.Len(t, archive.rows, 2)
	assert.Equal(t, core.RoleUser, archive.rows[0].msg.Role)
	assert.Equal(t, "calculate 2 + 2", archive.rows[0].msg.Content)
	assert.Equal(t, core.RoleAssistant, archive.rows[1].msg.Role)
	assert.Equal(t, "By me calculations, that be **4**, savvy?", archive.rows[1].msg.Content)
	assert.Equal(t, archive.rows[0].turnID, archive.rows[1].turnID, "both rows of a turn share the turn id")
	assert.NotEmpty(t, archive.rows[0].turnID)
}

func TestChat_OfflineWithFacts(t *testing.T) {
	b := newTestBot(t, nil, []string{factPearl, factRum}, nil, WithRand(rand.New(rand.NewSource(1))))

	got := b.Session("cli-local").Chat(context.Background(), "Tell me about the Black Pearl")

	assert.True(t, strings.HasSuffix(got, OfflineTag), "offline replies carry the tag: %q", got)
	assert.Contains(t, got, factPearl, "best ranked fact is interpolated")

	candidates := make([]string, 0, len(offlineTemplates))
	for _, tpl := range offlineTemplates {
		candidates = append(candidates, fmt.Sprintf(tpl, factPearl)+OfflineTag)
	}
	assert.Contains(t, candidates, got)
}

func TestChat_OfflineEmptyIndex(t *testing.T) {
	seed := int64(7)
	b := newTestBot(t, nil, nil, nil, WithRand(rand.New(rand.NewSource(seed))))

	want := genericFallbacks[rand.New(rand.NewSource(seed)).Intn(len(genericFallbacks))] + OfflineTag
	got := b.Session("cli-local").Chat(context.Background(), "Ahoy!")

	assert.Equal(t, want, got)
}

func TestChat_OfflineEveryReplyTagged(t *testing.T) {
	archive := &fakeArchive{}
	b := newTestBot(t, nil, []string{factPearl}, archive)
	session := b.Session("cli-local")

	for _, msg := range []string{"Ahoy!", "Tell me about the Black Pearl", "Any treasure about?"} {
		got := session.Chat(context.Background(), msg)
		assert.True(t, strings.HasSuffix(got, OfflineTag), "got %q", got)
	}

	// The tag is stored with the reply, exactly as returned.
	require.Len(t, archive.rows, 6)
	for i := 1; i < len(archive.rows); i += 2 {
		assert.True(t, strings.HasSuffix(archive.rows[i].msg.Content, OfflineTag))
	}
}

func TestChat_BackendPromptAssembly(t *testing.T) {
	ai := &fakeProvider{reply: "Aye, she be me ship!"}
	b := newTestBot(t, ai, []string{factPearl, factRum}, nil)
	session := b.Session("cli-local")

	first := session.Chat(context.Background(), "Ahoy there!")
	assert.Equal(t, "Aye, she be me ship!", first)

	session.Chat(context.Background(), "Tell me about the Black Pearl")

	require.Equal(t, 2, ai.calls)
	assert.Equal(t, systemInstruction, ai.systems[1])

	wantPrompt := "Relevant facts from your memory:\n" +
		"1. " + factPearl + "\n" +
		"2. " + factRum + "\n" +
		"\n" +
		"Recent conversation:\n" +
		"User: Ahoy there!\n" +
		"Jack: Aye, she be me ship!\n" +
		"User: Tell me about the Black Pearl\n" +
		"\n" +
		"Current user message: Tell me about the Black Pearl"
	assert.Equal(t, wantPrompt, ai.prompts[1])
}

func TestChat_FirstTurnPromptOmitsHistory(t *testing.T) {
	ai := &fakeProvider{reply: "Ahoy!"}
	b := newTestBot(t, ai, nil, nil)

	b.Session("cli-local").Chat(context.Background(), "Hi")

	require.Equal(t, 1, ai.calls)
	assert.Equal(t, "\nCurrent user message: Hi", ai.prompts[0])
}

func TestChat_BackendErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "rejected credentials",
			err:  fmt.Errorf("http 401: nope: %w", core.ErrUnauthenticated),
			want: "Arr! The Google guards blocked me. Check yer API key, savvy?",
		},
		{
			name: "quota exhausted",
			err:  fmt.Errorf("http 429: slow down: %w", core.ErrResourceExhausted),
			want: "Blimey! I've talked too much. Need a moment to catch me breath (Quota exceeded).",
		},
		{
			name: "anything else",
			err:  errors.New("kraken ate the wire"),
			want: "Curse the black spot! Something went wrong: kraken ate the wire",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			archive := &fakeArchive{}
			ai := &fakeProvider{err: tt.err}
			b := newTestBot(t, ai, nil, archive)
			session := b.Session("cli-local")

			got := session.Chat(context.Background(), "Ahoy!")

			assert.Equal(t, tt.want, got)

			// The apology is the assistant turn; the session survives.
			require.Len(t, archive.rows, 2)
			assert.Equal(t, tt.want, archive.rows[1].msg.Content)
			assert.Equal(t, 1, session.TurnCount())
		})
	}
}

func TestChat_ArchiveFailureIsBestEffort(t *testing.T) {
	archive := &fakeArchive{err: errors.New("database is locked")}
	b := newTestBot(t, nil, nil, archive)

	got := b.Session("cli-local").Chat(context.Background(), "Ahoy!")

	assert.True(t, strings.HasSuffix(got, OfflineTag))
	assert.Equal(t, 1, b.Session("cli-local").TurnCount())
}

func TestSessionRegistry(t *testing.T) {
	b := newTestBot(t, nil, nil, nil)

	a := b.Session("telegram-42")
	assert.Same(t, a, b.Session("telegram-42"))

	other := b.Session("telegram-43")
	assert.NotSame(t, a, other)

	a.Chat(context.Background(), "Ahoy!")
	assert.Equal(t, 1, a.TurnCount())
	assert.Equal(t, 0, other.TurnCount(), "sessions do not share memory")
}

func TestReset_Idempotent(t *testing.T) {
	b := newTestBot(t, nil, []string{factPearl}, nil)
	session := b.Session("cli-local")

	session.Chat(context.Background(), "Ahoy!")
	require.Equal(t, 1, session.TurnCount())

	session.Reset()
	assert.Equal(t, 0, session.TurnCount())

	session.Reset()
	assert.Equal(t, 0, session.TurnCount())

	// The session keeps working after a reset.
	got := session.Chat(context.Background(), "Tell me about the Black Pearl")
	assert.NotEmpty(t, got)
}

func TestOnline(t *testing.T) {
	assert.False(t, newTestBot(t, nil, nil, nil).Online())
	assert.True(t, newTestBot(t, &fakeProvider{}, nil, nil).Online())
}
