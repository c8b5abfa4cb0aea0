package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/transport/telegram"
	"github.com/sparrowbot/sparrowbot/pkg/log"
	"github.com/sparrowbot/sparrowbot/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the SparrowBot services",
	Long:  `Initializes and starts the configured transports (Telegram) and background workers, running until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting sparrowbot")

		deps := NewDeps(ctx)

		if !deps.App.EnableTelegram {
			return fmt.Errorf("no transports enabled: set SPARROW_ENABLE_TELEGRAM=true or run 'sparrow chat'")
		}

		tgCfg := config.NewTelegramConfig(ctx)
		tgBot, err := telegram.NewBot(ctx, tgCfg, deps.Bot, deps.Router)
		if err != nil {
			return err
		}
		services := append(deps.Services, tgBot)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("sparrowbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
