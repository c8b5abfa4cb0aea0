package memory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sparrowbot/sparrowbot/internal/core"
)

func TestWindowSlidesOldestOut(t *testing.T) {
	const maxTurns = 10
	w := NewWindow(maxTurns)

	// Overflow by three full turns.
	total := maxTurns + 3
	for i := 0; i < total; i++ {
		w.Append(core.RoleUser, fmt.Sprintf("question %d", i))
		w.Append(core.RoleAssistant, fmt.Sprintf("answer %d", i))
	}

	if got, want := w.Len(), maxTurns*2; got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := w.TurnCount(), maxTurns; got != want {
		t.Errorf("TurnCount() = %d, want %d", got, want)
	}

	msgs := w.Messages()
	// Oldest retained message must be the user half of turn 3, newest the
	// assistant half of the final turn, with original ordering preserved.
	if got, want := msgs[0].Content, "question 3"; got != want {
		t.Errorf("oldest retained = %q, want %q", got, want)
	}
	if got, want := msgs[len(msgs)-1].Content, fmt.Sprintf("answer %d", total-1); got != want {
		t.Errorf("newest retained = %q, want %q", got, want)
	}
	for i := 0; i < maxTurns; i++ {
		turn := i + 3
		if msgs[i*2].Content != fmt.Sprintf("question %d", turn) {
			t.Fatalf("message %d = %q, want question %d", i*2, msgs[i*2].Content, turn)
		}
		if msgs[i*2+1].Content != fmt.Sprintf("answer %d", turn) {
			t.Fatalf("message %d = %q, want answer %d", i*2+1, msgs[i*2+1].Content, turn)
		}
	}
}

func TestWindowContextString(t *testing.T) {
	w := NewWindow(5)

	if got := w.ContextString(); got != "No previous conversation." {
		t.Fatalf("empty ContextString() = %q", got)
	}

	w.Append(core.RoleUser, "Hello Jack!")
	w.Append(core.RoleAssistant, "Ahoy there, mate!")

	want := "User: Hello Jack!\nJack: Ahoy there, mate!"
	if got := w.ContextString(); got != want {
		t.Errorf("ContextString() = %q, want %q", got, want)
	}
}

func TestWindowTurnCountRoundsDown(t *testing.T) {
	w := NewWindow(5)

	w.Append(core.RoleUser, "Hello")
	if got := w.TurnCount(); got != 0 {
		t.Errorf("TurnCount() after one message = %d, want 0", got)
	}

	w.Append(core.RoleAssistant, "Ahoy")
	if got := w.TurnCount(); got != 1 {
		t.Errorf("TurnCount() after one exchange = %d, want 1", got)
	}
}

func TestWindowClearIsIdempotent(t *testing.T) {
	w := NewWindow(5)
	w.Append(core.RoleUser, "Hello")
	w.Append(core.RoleAssistant, "Ahoy")

	w.Clear()
	if got := w.Len(); got != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", got)
	}
	if got := w.ContextString(); got != "No previous conversation." {
		t.Errorf("ContextString() after Clear = %q", got)
	}

	// A second clear must be a no-op, and the window stays usable.
	w.Clear()
	w.Append(core.RoleUser, "Still there?")
	if got := w.Len(); got != 1 {
		t.Errorf("Len() after reuse = %d, want 1", got)
	}
}

func TestWindowDefaultCapacity(t *testing.T) {
	w := NewWindow(0)
	for i := 0; i < DefaultMaxTurns*3; i++ {
		w.Append(core.RoleUser, "q")
		w.Append(core.RoleAssistant, "a")
	}
	if got, want := w.Len(), DefaultMaxTurns*2; got != want {
		t.Errorf("Len() = %d, want %d", got, want)
	}
}

func TestWindowMessagesReturnsCopy(t *testing.T) {
	w := NewWindow(5)
	w.Append(core.RoleUser, "original")

	msgs := w.Messages()
	msgs[0].Content = "mutated"

	if got := w.Messages()[0].Content; got != "original" {
		t.Errorf("internal message changed to %q via returned slice", got)
	}
	if !strings.Contains(w.ContextString(), "original") {
		t.Errorf("ContextString() lost original content: %q", w.ContextString())
	}
}

func TestWindowTimestampsAssigned(t *testing.T) {
	w := NewWindow(5)
	w.Append(core.RoleUser, "Hello")

	if w.Messages()[0].Timestamp.IsZero() {
		t.Error("Append left Timestamp zero")
	}
}
