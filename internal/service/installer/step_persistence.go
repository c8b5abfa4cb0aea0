package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sparrowbot/sparrowbot/configs"
	"github.com/sparrowbot/sparrowbot/pkg/env"
)

// SaveEnvStep writes the collected configuration to .env file
type SaveEnvStep struct {
	err   error
	saved bool
}

func NewSaveEnvStep() Step {
	return &SaveEnvStep{}
}

func (s *SaveEnvStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *SaveEnvStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.saved {
		return nil, nil
	}

	// Perform save synchronously (fast operation)
	path := state.App.RuntimePath

	if err := os.MkdirAll(path, 0755); err != nil {
		s.err = fmt.Errorf("failed to create runtime directory: %w", err)
		return s, nil
	}

	envPath := filepath.Join(path, ".env")

	// Check if .env already exists
	if _, err := os.Stat(envPath); err == nil {
		s.err = fmt.Errorf(".env file already exists at %s", envPath)
		return s, nil
	}

	var content strings.Builder
	for _, c := range []any{state.App, state.Provider, state.Telegram} {
		section, err := env.MarshalEnv(c)
		if err != nil {
			s.err = err
			return s, nil
		}
		content.WriteString(section)
	}

	if err := os.WriteFile(envPath, []byte(content.String()), 0600); err != nil {
		s.err = err
		return s, nil
	}

	s.saved = true
	return nil, nil // Signal completion
}

func (s *SaveEnvStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.saved {
		return "Configuration saved successfully!\n"
	}
	return "Saving configuration...\n"
}

// InitializeFilesStep seeds the runtime directory with the starter
// knowledge base. An existing knowledge file is never overwritten.
type InitializeFilesStep struct {
	err  error
	done bool
}

func NewInitializeFilesStep() Step {
	return &InitializeFilesStep{}
}

func (s *InitializeFilesStep) Init() tea.Cmd {
	return func() tea.Msg { return nextMsg{} }
}

func (s *InitializeFilesStep) Update(msg tea.Msg, state *InstallState, width, height int) (Step, tea.Cmd) {
	if s.done {
		return nil, nil
	}

	path := state.App.RuntimePath
	dst := filepath.Join(path, "data", "sparrow_facts.txt")

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		s.err = fmt.Errorf("failed to create data directory: %w", err)
		return s, nil
	}

	if _, err := os.Stat(dst); err == nil {
		// Keep whatever facts the user already curated.
		s.done = true
		return nil, nil
	}

	data, err := configs.FS.ReadFile("sparrow_facts.txt")
	if err != nil {
		s.err = fmt.Errorf("failed to read embedded knowledge base: %w", err)
		return s, nil
	}

	if err := os.WriteFile(dst, data, 0644); err != nil {
		s.err = fmt.Errorf("failed to write %s: %w", dst, err)
		return s, nil
	}

	s.done = true
	return nil, nil
}

func (s *InitializeFilesStep) View(state *InstallState) string {
	if s.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", s.err)) + "\n\n(press ctrl+c to quit)\n"
	}
	if s.done {
		return "Runtime files initialized successfully!\n"
	}
	return "Initializing runtime files...\n"
}
