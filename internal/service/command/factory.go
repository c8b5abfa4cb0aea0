package command

import (
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/service/bot"
)

func NewCommands(b *bot.Bot) []core.Command {
	return []core.Command{
		NewHelpCommand(),
		NewResetCommand(b),
	}
}
