package command

import (
	"context"

	"github.com/sparrowbot/sparrowbot/internal/service/bot"
)

type ResetCommand struct {
	bot *bot.Bot
}

func NewResetCommand(b *bot.Bot) *ResetCommand {
	return &ResetCommand{bot: b}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Clear conversation history"
}

func (c *ResetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.bot.Session(sessionID).Reset()
	return "Conversation history cleared! Starting fresh, savvy?", nil
}
