package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aide-sh/aide/internal/task"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task <type>",
		Short: "Run an automation task",
		Long: fmt.Sprintf(`Execute one automation task and print its result.

Available types: %s

Examples:
  aide task system_cleanup
  aide task file_organization --param directory=/tmp/downloads
  aide task resource_monitoring --param duration=30`, strings.Join(task.Types(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, _ := cmd.Flags().GetStringSlice("param")
			params := make(map[string]any, len(pairs))
			for _, p := range pairs {
				key, value, ok := strings.Cut(p, "=")
				if !ok {
					return fmt.Errorf("invalid --param %q, want key=value", p)
				}
				if n, err := strconv.Atoi(value); err == nil {
					params[key] = n
				} else {
					params[key] = value
				}
			}

			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}
			defer a.Shutdown()

			t := a.Tasks.Execute(args[0], params)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(os.Stdout).Encode(t)
			}

			fmt.Printf("Task %s: %s\n", t.ID, t.Status)
			keys := make([]string, 0, len(t.Result))
			for k := range t.Result {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %s: %v\n", k, t.Result[k])
			}
			if t.Status == task.StatusFailed {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringSlice("param", nil, "Task parameter as key=value (repeatable)")
	return cmd
}
