//go:build integration

package integration

import (
	"context"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	ragprov "github.com/sparrowbot/sparrowbot/internal/providers/rag"
	"github.com/sparrowbot/sparrowbot/internal/rag"
	"github.com/sparrowbot/sparrowbot/internal/service/bot"
	"github.com/sparrowbot/sparrowbot/internal/service/command"
	"github.com/sparrowbot/sparrowbot/internal/storage/sqlite"
	"github.com/sparrowbot/sparrowbot/test"
)

// Full offline stack: real index over a facts file, real sqlite archive,
// no AI provider. Everything must keep working without a network.
func TestOfflineConversation(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	facts := []string{
		"Jack Sparrow is the captain of the Black Pearl.",
		"The Black Pearl is the fastest ship in the Caribbean.",
		"Rum is Jack's drink of choice, and it is always gone.",
	}
	kbPath := test.WriteKnowledgeFile(t, dir, facts...)

	embedder := ragprov.NewHashEmbedder(ragprov.DefaultHashDims)
	index := rag.NewIndex(embedder)
	n, err := index.LoadFile(ctx, kbPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n != len(facts) {
		t.Fatalf("loaded %d facts, want %d", n, len(facts))
	}

	db, err := sqlite.NewDB(ctx, filepath.Join(dir, "sparrowbot.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	defer db.Close()
	archive := sqlite.NewTranscriptRepo(db)

	cfg := &config.AppConfig{MaxTurns: 10, BackendTimeout: time.Second}
	b := bot.New(cfg, nil, index, archive, bot.WithRand(rand.New(rand.NewSource(1))))
	session := b.Session("cli-local")

	calcReply := session.Chat(ctx, "calculate 25 * 4")
	if !strings.Contains(calcReply, "**100**") {
		t.Errorf("calculation reply = %q, want the bold result", calcReply)
	}

	factReply := session.Chat(ctx, "Tell me about the Black Pearl")
	if !strings.HasSuffix(factReply, bot.OfflineTag) {
		t.Errorf("offline reply %q missing the offline tag", factReply)
	}
	anyFact := false
	for _, fact := range facts {
		if strings.Contains(factReply, fact) {
			anyFact = true
		}
	}
	if !anyFact {
		t.Errorf("offline reply %q cites no known fact", factReply)
	}

	if got := session.TurnCount(); got != 2 {
		t.Errorf("TurnCount = %d, want 2", got)
	}

	router := command.New(command.NewCommands(b))
	resetReply, consumed := router.Execute(ctx, "cli-local", "reset")
	if !consumed {
		t.Fatal("reset was not consumed by the router")
	}
	if resetReply == "" {
		t.Error("reset returned an empty confirmation")
	}
	if got := session.TurnCount(); got != 0 {
		t.Errorf("TurnCount after reset = %d, want 0", got)
	}

	// The archive is an audit log: reset must not touch it.
	messages, err := archive.GetMessages(ctx, "cli-local", 50)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(messages) != 4 {
		t.Fatalf("archived %d messages, want 4", len(messages))
	}
	for i, msg := range messages {
		wantRole := core.RoleUser
		if i%2 == 1 {
			wantRole = core.RoleAssistant
		}
		if msg.Role != wantRole {
			t.Errorf("message %d role = %q, want %q", i, msg.Role, wantRole)
		}
	}

	sessions, err := archive.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0] != "cli-local" {
		t.Errorf("Sessions = %v, want [cli-local]", sessions)
	}
}
