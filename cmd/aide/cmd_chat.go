package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aide-sh/aide/internal/reminder"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive session",
		Long: `Run the assistant as an interactive conversation.

Reminders fire in the foreground while the session is open. Say exit,
quit, goodbye, or bye to leave.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			a.OnReminder = func(r reminder.Reminder) {
				fmt.Printf("\n[reminder] %s\n> ", r.Text)
			}
			a.Start()

			fmt.Println(a.Greeting())

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}
				input := strings.TrimSpace(scanner.Text())
				outcome := a.Interpret(input)
				if outcome.Response != "" {
					fmt.Println(outcome.Response)
				}
				if outcome.Terminate {
					break
				}
			}
			return scanner.Err()
		},
	}
}
