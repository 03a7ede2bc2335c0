package mcp

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aide-sh/aide/internal/assistant"
	"github.com/aide-sh/aide/internal/ratelimit"
)

// Server wraps the MCP SDK server around a running Assistant.
type Server struct {
	server    *sdk.Server
	assistant *assistant.Assistant
	sessionID string
	limiters  ratelimit.ToolLimiters
}

// Config holds server identification.
type Config struct {
	Name    string
	Version string
}

// NewServer creates an MCP server exposing the assistant's tools.
func NewServer(cfg *Config, a *assistant.Assistant) *Server {
	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		server:    mcpServer,
		assistant: a,
		sessionID: uuid.NewString(),
		limiters:  ratelimit.NewToolLimiters(),
	}
	s.registerTools()
	return s
}

// Run serves over stdio transport until the client disconnects or the
// context is cancelled. The assistant's background sweeps run alongside.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		cancel()
	}()

	s.assistant.Start()
	err := s.server.Run(ctx, &sdk.StdioTransport{})

	if shutdownErr := s.assistant.Shutdown(); err == nil {
		err = shutdownErr
	}
	return err
}
