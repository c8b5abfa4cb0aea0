package main

import (
	"fmt"

	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/service/ui"
	"github.com/spf13/cobra"
)

var (
	historySession string
	historyLimit   int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show archived conversation turns",
	Long:  `Prints the transcript archive. Without --session it lists the known sessions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Setup logger
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
			return err
		}
		appCfg := config.NewAppConfig(ctx)

		db, archive, err := initStorage(ctx, appCfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if historySession == "" {
			sessions, err := archive.Sessions(ctx)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				fmt.Println("No conversations archived yet.")
				return nil
			}
			fmt.Println(ui.TitleStyle.Render("SESSIONS"))
			for _, s := range sessions {
				fmt.Printf("  %s\n", s)
			}
			fmt.Println(ui.DescStyle.Render("\nUse --session <id> to print a transcript."))
			return nil
		}

		messages, err := archive.GetMessages(ctx, historySession, historyLimit)
		if err != nil {
			return err
		}
		if len(messages) == 0 {
			fmt.Printf("No messages archived for session %q.\n", historySession)
			return nil
		}

		for _, msg := range messages {
			label := "You"
			if msg.Role == core.RoleAssistant {
				label = "Jack"
			}
			stamp := ui.DescStyle.Render(msg.Timestamp.Format("2006-01-02 15:04"))
			fmt.Printf("%s %s: %s\n", stamp, ui.UsageStyle.Render(label), msg.Content)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historySession, "session", "", "session id to print (e.g. cli-local)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 50, "maximum number of messages")
	rootCmd.AddCommand(historyCmd)
}
