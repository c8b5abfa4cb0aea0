package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/sparrowbot/sparrowbot/internal/transport/cli"
	"github.com/sparrowbot/sparrowbot/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with Captain Jack in the terminal",
	Long:  `Starts the interactive chat loop. Type 'help' inside the chat for commands, 'quit' to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		deps := NewDeps(ctx)

		rl, err := cli.NewReadLine(deps.Bot, deps.Router, deps.App)
		if err != nil {
			return err
		}

		// Background pieces (db cleanup, knowledge watcher) run alongside
		// the foreground chat loop.
		srv.StartServices(ctx, deps.Services)

		runErr := rl.Start(ctx)
		_ = rl.Shutdown(ctx)

		// Cancel the context so the shutdown wait returns immediately.
		stop()
		srv.ShutdownServices(ctx, deps.Services)

		if errors.Is(runErr, context.Canceled) {
			return nil
		}
		return runErr
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
