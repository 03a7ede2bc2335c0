package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newCleanupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Remove old low-effectiveness memories",
		Long: `Delete episodic memories that are both older than the age threshold
and below the effectiveness floor. Recent and effective memories are kept
regardless of age.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			days, _ := cmd.Flags().GetInt("days")

			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			removed := a.Memory.Cleanup(days)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]int{"removed": removed})
			}
			fmt.Printf("Removed %d old memories.\n", removed)
			return nil
		},
	}
	cmd.Flags().Int("days", 0, "Age threshold in days (0 uses the configured threshold)")
	return cmd
}
