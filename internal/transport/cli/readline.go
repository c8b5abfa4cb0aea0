// Package cli runs the interactive terminal chat loop.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/service/bot"
	"github.com/sparrowbot/sparrowbot/internal/service/ui"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

const defaultSessionID = "cli-local"

// Farewell words end the loop through the bot, so Jack gets the last word.
var farewells = map[string]bool{
	"quit": true,
	"exit": true,
	"bye":  true,
}

type ReadLine struct {
	cfg    *config.AppConfig
	bot    *bot.Bot
	router core.CmdRouter
	rl     *readline.Instance
}

func NewReadLine(b *bot.Bot, router core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "You: ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		cfg:    cfg,
		bot:    b,
		router: router,
		rl:     rl,
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Bool("online", r.bot.Online()).Msg("readline chat started")

	out := r.rl.Stdout()
	fmt.Fprintf(out, "%s\n", ui.Banner())
	fmt.Fprintf(out, "\nType 'help' for commands, or start chatting!\n")
	fmt.Fprintf(out, "%s\n", strings.Repeat("=", 64))

	session := r.bot.Session(defaultSessionID)

	greeting := session.Chat(ctx, "Hello!")
	fmt.Fprintf(out, "\n🏴‍☠️ Jack: %s\n\n", greeting)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					fmt.Fprintf(out, "\n⚓ Interrupted! Farewell, mate! ⚓\n")
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if farewells[strings.ToLower(line)] {
			farewell := session.Chat(ctx, "Goodbye!")
			fmt.Fprintf(out, "\n🏴‍☠️ Jack: %s\n", farewell)
			fmt.Fprintf(out, "\n⚓ Fair winds and following seas! ⚓\n")
			return nil
		}

		// '?' is a help alias kept from the original terminal habits.
		if line == "?" {
			line = "help"
		}

		if reply, consumed := r.router.Execute(ctx, defaultSessionID, line); consumed {
			fmt.Fprintf(out, "%s\n", reply)
			continue
		}

		response := session.Chat(ctx, line)
		fmt.Fprintf(out, "\n🏴‍☠️ Jack: %s\n\n", response)
	}
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
