package installer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// APIKeyStep collects the provider credential. Every key may be skipped:
// without one the bot simply starts in offline mode.
type APIKeyStep struct {
	input    textinput.Model
	provider string
	title    string
	hint     string
}

func NewAPIKeyStep() Step {
	return &APIKeyStep{}
}

func (s *APIKeyStep) Init() tea.Cmd {
	return nil
}

func (s *APIKeyStep) initProvider(state *InstallState) bool {
	s.provider = state.Provider.Provider
	if s.provider == "" {
		return false
	}

	switch s.provider {
	case "gemini":
		s.title = "Gemini API Key"
		s.hint = "Leave empty to run in offline mode."
	case "openai":
		s.title = "OpenAI API Key"
		s.hint = "Leave empty to run in offline mode."
	case "openrouter":
		s.title = "OpenRouter API Key"
		s.hint = "Leave empty to run in offline mode."
	case "ollama":
		s.title = "Ollama API Key (Optional)"
		s.hint = "Most local servers need none, press Enter to skip."
	case "custom":
		s.title = "API Key (Optional)"
		s.hint = "Press Enter to skip if the endpoint is open."
	default:
		return false
	}

	s.input = textinput.New()
	s.input.Focus()
	s.input.CharLimit = 255
	s.input.Width = 40
	s.input.EchoMode = textinput.EchoPassword
	s.input.EchoCharacter = '•'

	switch s.provider {
	case "gemini":
		s.input.Placeholder = "AIza..."
	case "openai":
		s.input.Placeholder = "sk-..."
	case "openrouter":
		s.input.Placeholder = "sk-or-v1-..."
	case "ollama", "custom":
		s.input.Placeholder = "Optional - press Enter to skip"
		s.input.EchoMode = textinput.EchoNormal
	}
	return true
}

func (s *APIKeyStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.provider == "" {
		if !s.initProvider(state) {
			return nil, nil
		}
		return s, textinput.Blink
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "enter" {
			val := strings.TrimSpace(s.input.Value())
			switch s.provider {
			case "gemini":
				state.Provider.GeminiAPIKey = val
			case "openai":
				state.Provider.OpenAIAPIKey = val
			case "openrouter":
				state.Provider.OpenRouterAPIKey = val
			case "ollama":
				state.Provider.OllamaAPIKey = val
			case "custom":
				state.Provider.CustomAPIKey = val
			}
			return nil, nil
		}
	}
	return s, cmd
}

func (s *APIKeyStep) View(state *InstallState) string {
	if s.provider == "" {
		if !s.initProvider(state) {
			return "Loading..."
		}
	}

	return fmt.Sprintf("Enter your %s:\n\n%s\n\n%s\n(press enter to confirm)\n",
		s.title, s.input.View(), s.hint)
}
