// Package memory keeps the recent conversation of a single chat session.
//
// The window holds the last maxTurns exchanges (two messages per turn) and
// evicts oldest-first. A Window is owned by exactly one session and carries
// no locking; the session serializes its own turns.
package memory

import (
	"strings"
	"time"

	"github.com/sparrowbot/sparrowbot/internal/core"
)

// DefaultMaxTurns bounds the window when no explicit limit is configured.
const DefaultMaxTurns = 10

const emptyContext = "No previous conversation."

// assistantLabel is the persona's side of a rendered transcript.
const assistantLabel = "Jack"

type Window struct {
	maxTurns int
	messages []core.Message
}

// NewWindow creates a window remembering at most maxTurns exchanges.
// Values below one fall back to DefaultMaxTurns.
func NewWindow(maxTurns int) *Window {
	if maxTurns < 1 {
		maxTurns = DefaultMaxTurns
	}
	return &Window{maxTurns: maxTurns}
}

// Append records one message and evicts the oldest beyond capacity. The
// stored message is returned so callers can archive it as recorded.
func (w *Window) Append(role, content string) core.Message {
	msg := core.Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
	w.messages = append(w.messages, msg)

	max := w.maxTurns * 2
	if len(w.messages) > max {
		w.messages = w.messages[len(w.messages)-max:]
	}
	return msg
}

// ContextString renders the window one line per message, oldest first,
// labelled User / Jack. An empty window renders as a fixed placeholder so
// prompts never contain an empty section.
func (w *Window) ContextString() string {
	if len(w.messages) == 0 {
		return emptyContext
	}

	lines := make([]string, 0, len(w.messages))
	for _, msg := range w.messages {
		label := assistantLabel
		if msg.Role == core.RoleUser {
			label = "User"
		}
		lines = append(lines, label+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}

// Messages returns a copy of the retained messages, oldest first.
func (w *Window) Messages() []core.Message {
	out := make([]core.Message, len(w.messages))
	copy(out, w.messages)
	return out
}

// TurnCount reports completed user/assistant exchanges.
func (w *Window) TurnCount() int {
	return len(w.messages) / 2
}

func (w *Window) Len() int {
	return len(w.messages)
}

// Clear drops the whole history. Safe to call repeatedly.
func (w *Window) Clear() {
	w.messages = nil
}
