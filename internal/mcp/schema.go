// Package mcp exposes the assistant over the Model Context Protocol.
package mcp

import (
	"github.com/aide-sh/aide/internal/memory"
)

// Tool input/output schemas. The jsonschema tag carries the field
// description; fields without omitempty in their json tag are required.

// InterpretInput defines the input for the aide_interpret tool.
type InterpretInput struct {
	Input string `json:"input" jsonschema:"Natural-language input to interpret"`
}

// InterpretOutput defines the output for the aide_interpret tool.
type InterpretOutput struct {
	SessionID string `json:"session_id" jsonschema:"Stable identifier for this server session"`
	Response  string `json:"response" jsonschema:"Assistant reply text"`
	Terminate bool   `json:"terminate" jsonschema:"True when the input was a termination phrase"`
}

// TaskInput defines the input for the aide_task tool.
type TaskInput struct {
	Type   string         `json:"type" jsonschema:"Task type to run (see aide_stats for the list)"`
	Params map[string]any `json:"params,omitempty" jsonschema:"Task-specific parameters"`
}

// TaskOutput defines the output for the aide_task tool.
type TaskOutput struct {
	ID     string         `json:"id" jsonschema:"Task envelope identifier"`
	Type   string         `json:"type"`
	Status string         `json:"status" jsonschema:"completed or failed"`
	Result map[string]any `json:"result" jsonschema:"Operation result payload"`
}

// StatsInput defines the input for the aide_stats tool. It takes no
// arguments.
type StatsInput struct{}

// StatsOutput defines the output for the aide_stats tool.
type StatsOutput struct {
	Memory      memory.Stats `json:"memory" jsonschema:"Memory usage and learned-state summary"`
	ActiveTasks int          `json:"active_tasks" jsonschema:"Number of tasks currently tracked"`
	TaskTypes   []string     `json:"task_types" jsonschema:"Supported task types"`
}

// FeedbackInput defines the input for the aide_feedback tool.
type FeedbackInput struct {
	InteractionID string  `json:"interaction_id" jsonschema:"ID of the interaction being scored"`
	Score         float64 `json:"score" jsonschema:"Effectiveness score between 0.0 and 1.0"`
}

// FeedbackOutput defines the output for the aide_feedback tool.
type FeedbackOutput struct {
	Message string `json:"message" jsonschema:"Human-readable result message"`
}
