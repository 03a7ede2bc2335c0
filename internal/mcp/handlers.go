package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/aide-sh/aide/internal/ratelimit"
	"github.com/aide-sh/aide/internal/task"
)

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "aide_interpret",
		Description: "Interpret a natural-language input and return the assistant's response",
	}, s.handleInterpret)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "aide_task",
		Description: "Run an automation task (system cleanup, file organization, diagnostics, backups, monitoring)",
	}, s.handleTask)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "aide_stats",
		Description: "Report memory usage, learned preferences, command frequencies, and neural weights",
	}, s.handleStats)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "aide_feedback",
		Description: "Score a past interaction's effectiveness to reinforce the assistant's learning",
	}, s.handleFeedback)
}

func (s *Server) handleInterpret(ctx context.Context, req *sdk.CallToolRequest, args InterpretInput) (*sdk.CallToolResult, InterpretOutput, error) {
	if err := ratelimit.CheckLimit(s.limiters, "aide_interpret"); err != nil {
		return nil, InterpretOutput{}, err
	}
	if args.Input == "" {
		return nil, InterpretOutput{}, fmt.Errorf("input is required")
	}

	outcome := s.assistant.Interpret(args.Input)
	return nil, InterpretOutput{
		SessionID: s.sessionID,
		Response:  outcome.Response,
		Terminate: outcome.Terminate,
	}, nil
}

func (s *Server) handleTask(ctx context.Context, req *sdk.CallToolRequest, args TaskInput) (*sdk.CallToolResult, TaskOutput, error) {
	if err := ratelimit.CheckLimit(s.limiters, "aide_task"); err != nil {
		return nil, TaskOutput{}, err
	}
	if args.Type == "" {
		return nil, TaskOutput{}, fmt.Errorf("type is required")
	}

	t := s.assistant.Tasks.Execute(args.Type, args.Params)
	return nil, TaskOutput{
		ID:     t.ID,
		Type:   t.Type,
		Status: string(t.Status),
		Result: t.Result,
	}, nil
}

func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	if err := ratelimit.CheckLimit(s.limiters, "aide_stats"); err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, StatsOutput{
		Memory:      s.assistant.Memory.Stats(),
		ActiveTasks: s.assistant.Tasks.ActiveCount(),
		TaskTypes:   task.Types(),
	}, nil
}

func (s *Server) handleFeedback(ctx context.Context, req *sdk.CallToolRequest, args FeedbackInput) (*sdk.CallToolResult, FeedbackOutput, error) {
	if err := ratelimit.CheckLimit(s.limiters, "aide_feedback"); err != nil {
		return nil, FeedbackOutput{}, err
	}
	if args.Score < 0 || args.Score > 1 {
		return nil, FeedbackOutput{}, fmt.Errorf("score must be between 0.0 and 1.0, got %v", args.Score)
	}
	if err := s.assistant.Memory.Feedback(args.InteractionID, args.Score); err != nil {
		return nil, FeedbackOutput{}, err
	}
	return nil, FeedbackOutput{
		Message: fmt.Sprintf("Recorded %.2f for interaction %s", args.Score, args.InteractionID),
	}, nil
}
