package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aide-sh/aide/internal/assistant"
	"github.com/aide-sh/aide/internal/config"
	"github.com/aide-sh/aide/internal/logging"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "aide",
		Short: "Aide - a learning personal assistant",
		Long: `aide interprets natural-language requests: questions, reminders,
journal entries, calculations, web lookups, and automation tasks.

It learns from every interaction, building preference and effectiveness
models that shape future responses.`,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for tool consumption)")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory (default ~/.aide)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(),
		newInterpretCmd(),
		newTaskCmd(),
		newStatsCmd(),
		newRemindersCmd(),
		newJournalCmd(),
		newProfileCmd(),
		newCleanupCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("aide version %s\n", version)
			}
		},
	}
}

// loadConfig resolves configuration, applying the --data-dir override.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

// newAssistant builds an Assistant for one command invocation. The caller
// is responsible for Shutdown.
func newAssistant(cmd *cobra.Command) (*assistant.Assistant, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
	return assistant.New(cfg, logger)
}
