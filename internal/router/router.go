// Package router turns raw input into a response by walking an ordered
// route table: termination and help phrases first, then direct maintenance
// triggers, then the specialized reminder/media/journal handlers, then the
// general command categories, and finally the classifier pipeline. The
// first route that produces a reply wins, and every reply is recorded to
// memory before it is returned.
package router

import (
	"log/slog"
	"strings"

	"github.com/aide-sh/aide/internal/entity"
	"github.com/aide-sh/aide/internal/intent"
	"github.com/aide-sh/aide/internal/journal"
	"github.com/aide-sh/aide/internal/logging"
	"github.com/aide-sh/aide/internal/memory"
	"github.com/aide-sh/aide/internal/reminder"
	"github.com/aide-sh/aide/internal/response"
	"github.com/aide-sh/aide/internal/storage"
	"github.com/aide-sh/aide/internal/task"
	"github.com/aide-sh/aide/internal/websearch"
)

// Outcome is the result of routing one input.
type Outcome struct {
	// Terminate is set for exit phrases; Response then carries the
	// farewell line.
	Terminate bool
	Response  string
}

// WebResolver is the search scraping surface the router consumes.
type WebResolver interface {
	GoogleFirstResult(query string) (string, error)
	YouTubeVideoURL(query string) (string, error)
}

var _ WebResolver = (*websearch.Client)(nil)

var exitPhrases = map[string]bool{
	"exit":    true,
	"quit":    true,
	"goodbye": true,
	"bye":     true,
}

var helpPhrases = map[string]bool{
	"help":            true,
	"commands":        true,
	"what can you do": true,
}

// route is one (predicate, handler) pair. try returns the reply and
// whether this route handled the input.
type route struct {
	name string
	try  func(input string) (string, bool)
}

// Router walks the route table. Construct with New; the zero value is not
// usable.
type Router struct {
	memory    *memory.Store
	generator *response.Generator
	tasks     *task.Dispatcher
	reminders *reminder.Service
	journal   *journal.Service
	web       WebResolver
	docs      storage.DocumentStore
	logger    *slog.Logger
	trace     *logging.TraceLogger

	routes []route
}

// Deps bundles the collaborators a Router needs.
type Deps struct {
	Memory    *memory.Store
	Generator *response.Generator
	Tasks     *task.Dispatcher
	Reminders *reminder.Service
	Journal   *journal.Service
	Web       WebResolver
	Docs      storage.DocumentStore
	Logger    *slog.Logger
	Trace     *logging.TraceLogger
}

// New creates a Router with its route table in precedence order.
func New(d Deps) *Router {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{
		memory:    d.Memory,
		generator: d.Generator,
		tasks:     d.Tasks,
		reminders: d.Reminders,
		journal:   d.Journal,
		web:       d.Web,
		docs:      d.Docs,
		logger:    logger,
		trace:     d.Trace,
	}
	r.routes = []route{
		{"help", r.tryHelp},
		{"direct_trigger", r.tryDirectTriggers},
		{"reminder", r.tryReminder},
		{"media", r.tryMedia},
		{"journal", r.tryJournal},
		{"command_category", r.tryCommandCategories},
		{"conversation", r.tryConversation},
	}
	return r
}

// Route processes one raw input to completion. Blank input produces an
// empty continue outcome without touching memory.
func (r *Router) Route(raw string) Outcome {
	input := strings.ToLower(strings.TrimSpace(raw))
	if input == "" {
		return Outcome{}
	}

	if exitPhrases[input] {
		r.trace.Log(map[string]any{"event": "route", "input": input, "route": "terminate"})
		return Outcome{Terminate: true, Response: "Goodbye! It was great talking with you."}
	}

	for _, rt := range r.routes {
		reply, ok := rt.try(input)
		if !ok {
			continue
		}
		r.trace.Log(map[string]any{"event": "route", "input": input, "route": rt.name})
		r.logger.Debug("routed input", "route", rt.name)
		// Conversation records inside its handler, with full context.
		if rt.name != "conversation" {
			r.memory.Record(raw, reply, map[string]any{"handler": rt.name})
		}
		return Outcome{Response: reply}
	}

	// Unreachable: the conversation route always handles.
	return Outcome{}
}

func (r *Router) tryHelp(input string) (string, bool) {
	if !helpPhrases[input] {
		return "", false
	}
	return helpText, true
}

// tryConversation is the classifier pipeline fallback: classify, extract,
// retrieve context, generate. It always handles.
func (r *Router) tryConversation(input string) (string, bool) {
	label := intent.Classify(input)
	entities := entity.Extract(input)
	ctx := r.memory.BuildContext(input)

	reply := r.generator.Generate(input, label)

	recordCtx := ctx.AsMap()
	recordCtx["intent"] = string(label)
	recordCtx["entities"] = entities
	r.memory.Record(input, reply, recordCtx)

	return reply, true
}
