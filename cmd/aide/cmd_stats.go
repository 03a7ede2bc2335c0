package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show memory and learning statistics",
		Long: `Display what the assistant has learned: memory usage counts, the
strongest preferences, the most used commands, and the neural weight table.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			stats := a.Memory.Stats()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(stats)
			}

			fmt.Printf("Short-term: %d  Episodic: %d  Semantic: %d  Procedural: %d\n",
				stats.ShortTermCount, stats.EpisodicCount, stats.SemanticCount, stats.ProceduralCount)

			if len(stats.TopPreferences) > 0 {
				fmt.Println("\nTop preferences:")
				for _, p := range stats.TopPreferences {
					fmt.Printf("  %-20s %+.2f\n", p.Token, p.Weight)
				}
			}
			if len(stats.MostUsedCommands) > 0 {
				fmt.Println("\nMost used commands:")
				for _, c := range stats.MostUsedCommands {
					fmt.Printf("  %-40s %d\n", c.Command, c.Count)
				}
			}

			fmt.Println("\nNeural weights:")
			keys := make([]string, 0, len(stats.NeuralWeights))
			for k := range stats.NeuralWeights {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %-24s %.2f\n", k, stats.NeuralWeights[k])
			}
			return nil
		},
	}
}
