package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newInterpretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interpret <input>",
		Short: "Interpret a single input and print the response",
		Long: `Route one natural-language input through the assistant and exit.

Examples:
  aide interpret "what is 15 * 4"
  aide interpret "remind me to stretch in 20 minutes"
  aide interpret "journal had a productive morning"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			outcome := a.Interpret(strings.Join(args, " "))

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(map[string]any{
					"response":  outcome.Response,
					"terminate": outcome.Terminate,
				})
			}
			if outcome.Response != "" {
				fmt.Println(outcome.Response)
			}
			return nil
		},
	}
}
