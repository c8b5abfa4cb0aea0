package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Sensible starting models per provider. The user can type any other id.
var defaultModels = map[string]string{
	"gemini":     "gemini-flash-latest",
	"openai":     "gpt-4o-mini",
	"openrouter": "openrouter/auto",
	"ollama":     "llama3.2",
}

// ModelStep collects the model id, prefilled with the provider default
type ModelStep struct {
	input textinput.Model
	ready bool
}

func NewModelStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.CharLimit = 255
	ti.Width = 40
	return &ModelStep{input: ti}
}

func (s *ModelStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *ModelStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if !s.ready {
		if def, ok := defaultModels[state.Provider.Provider]; ok {
			s.input.Placeholder = def
		} else {
			s.input.Placeholder = "model id"
		}
		s.ready = true
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())
		if val == "" {
			val = defaultModels[state.Provider.Provider]
		}
		if val != "" {
			state.Provider.Model = val
			return nil, nil
		}
		// No default to fall back on (custom provider), keep asking.
	}
	return s, cmd
}

func (s *ModelStep) View(state *InstallState) string {
	return "Enter the model to chat with:\n\n" + s.input.View() +
		"\n\n(press enter to accept the suggestion)\n"
}
