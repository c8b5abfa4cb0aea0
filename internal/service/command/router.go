// Package command dispatches the reserved conversation tokens (help,
// reset) shared by the transports. Anything the router does not consume is
// a chat message.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/sparrowbot/sparrowbot/internal/core"
)

type Router struct {
	commands map[string]core.Command
	ordered  []core.Command
}

func New(commands []core.Command) *Router {
	r := &Router{
		commands: make(map[string]core.Command),
	}

	for _, cmd := range commands {
		r.commands[cmd.Name()] = cmd
		r.ordered = append(r.ordered, cmd)
	}
	return r
}

// Execute consumes the input only when the whole line is a reserved token,
// case-insensitive, with an optional Telegram-style leading slash. A line
// like "help me bury this treasure" stays a chat message.
func (r *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	token := strings.ToLower(strings.TrimSpace(input))
	token = strings.TrimPrefix(token, "/")

	cmd, ok := r.commands[token]
	if !ok {
		return "", false
	}

	result, err := cmd.Execute(ctx, sessionID, nil)
	if err != nil {
		return fmt.Sprintf("Error: %v", err), true
	}
	return result, true
}

// ListCommands returns the commands in registration order.
func (r *Router) ListCommands() []core.Command {
	res := make([]core.Command, len(r.ordered))
	copy(res, r.ordered)
	return res
}
