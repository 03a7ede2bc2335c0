package main

import (
	"github.com/spf13/cobra"

	"github.com/aide-sh/aide/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run as an MCP server over stdio",
		Long: `Serve the assistant's tools over the Model Context Protocol so
agents can interpret inputs, run tasks, and read learning statistics.

Runs until the client disconnects. Background reminder and persistence
sweeps stay active while serving.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newAssistant(cmd)
			if err != nil {
				return err
			}

			server := mcp.NewServer(&mcp.Config{
				Name:    "aide",
				Version: version,
			}, a)
			return server.Run(cmd.Context())
		},
	}
}
