package core

import "context"

// CmdRouter dispatches reserved tokens (help, reset, ...) before input
// reaches the conversation pipeline. Execute reports whether the input was
// consumed; unconsumed input belongs to the chat.
type CmdRouter interface {
	Execute(ctx context.Context, sessionID, input string) (string, bool)
	ListCommands() []Command
}

type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, sessionID string, args []string) (string, error)
}
