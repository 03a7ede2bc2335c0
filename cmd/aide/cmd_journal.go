package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List journal entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			entries := a.Journal.List()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(entries)
			}
			if len(entries) == 0 {
				fmt.Println("No journal entries yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s %s [%s] %s\n", e.Date, e.Time, e.Emotion, e.Text)
			}
			return nil
		},
	}
	cmd.AddCommand(newJournalAddCmd())
	return cmd
}

func newJournalAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a journal entry",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			text := strings.Join(args, " ")
			if !strings.HasPrefix(strings.ToLower(text), "journal") {
				text = "journal " + text
			}
			reply, err := a.Journal.Add(strings.ToLower(text))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}
