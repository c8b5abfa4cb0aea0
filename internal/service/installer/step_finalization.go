package installer

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sparrowbot/sparrowbot/internal/config"
)

// FinalizationStep computes derived values before anything is written
type FinalizationStep struct{}

func NewFinalizationStep() Step {
	return &FinalizationStep{}
}

func (s *FinalizationStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *FinalizationStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	// Pin the resolved runtime path so later runs agree with this install
	// no matter which directory they start from.
	state.App.RuntimePath = config.GetRuntimePath()

	// A Telegram channel without a token cannot start.
	if state.Telegram.Token == "" {
		state.App.EnableTelegram = false
	}

	// Signal completion
	return nil, nil
}

func (s *FinalizationStep) View(state *InstallState) string {
	return "Finalizing configuration...\n"
}
