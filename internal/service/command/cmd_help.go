package command

import (
	"context"
)

const helpText = `Commands:
- Type your message and press Enter to chat
- 'help' or '?' : Show this help message
- 'reset' : Clear conversation history
- 'quit' or 'exit' : Exit the chatbot

Features:
- Ask about Jack Sparrow, the Black Pearl, and pirate lore
- Request calculations (e.g., "Calculate 25 * 4")
- Have continuous conversations with memory`

type HelpCommand struct{}

func NewHelpCommand() *HelpCommand {
	return &HelpCommand{}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Show available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return helpText, nil
}
