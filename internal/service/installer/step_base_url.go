package installer

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// BaseURLStep collects the server URL for providers that need one. It skips
// itself for hosted providers.
type BaseURLStep struct {
	input textinput.Model
}

func NewBaseURLStep() Step {
	ti := textinput.New()
	ti.Focus()
	ti.Width = 50
	return &BaseURLStep{input: ti}
}

func (s *BaseURLStep) Init() tea.Cmd {
	return textinput.Blink
}

func (s *BaseURLStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	switch state.Provider.Provider {
	case "ollama":
		s.input.Placeholder = "http://localhost:11434"
	case "custom":
		s.input.Placeholder = "https://api.example.com/v1"
	default:
		return nil, nil
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		val := strings.TrimSpace(s.input.Value())

		switch state.Provider.Provider {
		case "ollama":
			if val == "" {
				val = s.input.Placeholder
			}
			state.Provider.OllamaBaseURL = val
			return nil, nil
		case "custom":
			// A custom provider is nothing without its URL.
			if val != "" {
				state.Provider.CustomBaseURL = val
				return nil, nil
			}
		}
	}
	return s, cmd
}

func (s *BaseURLStep) View(state *InstallState) string {
	title := "Enter Ollama Base URL"
	if state.Provider.Provider == "custom" {
		title = "Enter Custom OpenAI Base URL"
	}
	return title + ":\n\n" + s.input.View() + "\n\n(press enter to confirm)\n"
}
