package main

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/service/installer"
	"github.com/sparrowbot/sparrowbot/pkg/log"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:           "init",
	Short:         "Set up SparrowBot interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting setup wizard")

		// run wizard (includes save step)
		_, err := installer.RunWizard()
		if err != nil {
			return err
		}

		// Load the newly created .env file so NewAppConfig can see the values
		runtimePath := config.GetRuntimePath()
		envPath := filepath.Join(runtimePath, ".env")
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn().Err(err).Str("path", envPath).Msg("failed to load .env file")
		}

		logger.Info().Msgf("initialized runtime directory at: %s", runtimePath)
		logger.Info().Msg("Setup complete! You can now run 'sparrow chat'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
