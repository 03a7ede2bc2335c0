package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "List pending reminders",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			pending := a.Reminders.List()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(pending)
			}
			if len(pending) == 0 {
				fmt.Println("No pending reminders.")
				return nil
			}
			for _, r := range pending {
				fmt.Printf("%s  %s\n", r.Time.Format("2006-01-02 15:04"), r.Text)
			}
			return nil
		},
	}
	cmd.AddCommand(newRemindersAddCmd())
	return cmd
}

func newRemindersAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <request>",
		Short: "Add a reminder",
		Long: `Add a reminder phrased the way you would say it in chat.

Example:
  aide reminders add "remind me to call mom in 2 hours"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			reply, err := a.Reminders.Add(strings.ToLower(strings.Join(args, " ")))
			if err != nil {
				return err
			}
			fmt.Println(reply)
			return nil
		},
	}
}
