// Package assistant wires the interpreter components into one service
// object with an explicit lifecycle: construct, Start the background
// sweeps, Interpret inputs, Shutdown with a final flush.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aide-sh/aide/internal/config"
	"github.com/aide-sh/aide/internal/journal"
	"github.com/aide-sh/aide/internal/logging"
	"github.com/aide-sh/aide/internal/memory"
	"github.com/aide-sh/aide/internal/profile"
	"github.com/aide-sh/aide/internal/reminder"
	"github.com/aide-sh/aide/internal/response"
	"github.com/aide-sh/aide/internal/router"
	"github.com/aide-sh/aide/internal/speech"
	"github.com/aide-sh/aide/internal/storage"
	"github.com/aide-sh/aide/internal/task"
	"github.com/aide-sh/aide/internal/websearch"
)

// Assistant owns the interpreter pipeline and its background sweeps.
type Assistant struct {
	cfg    *config.Config
	logger *slog.Logger
	trace  *logging.TraceLogger

	docs      storage.DocumentStore
	Memory    *memory.Store
	Tasks     *task.Dispatcher
	Reminders *reminder.Service
	Journal   *journal.Service
	Profile   *profile.Store
	router    *router.Router
	speaker   *speech.Speaker

	cancel context.CancelFunc
	wg     sync.WaitGroup

	// OnReminder receives fired reminders from the background sweep.
	// Defaults to speaking/logging; the chat loop replaces it to print.
	OnReminder func(r reminder.Reminder)
}

// New builds an Assistant from configuration. The document store backend
// is chosen by cfg.Storage.
func New(cfg *config.Config, logger *slog.Logger) (*Assistant, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var docs storage.DocumentStore
	var err error
	switch cfg.Storage {
	case "sqlite":
		docs, err = storage.NewSQLiteStore(cfg.DataDir)
	default:
		docs, err = storage.NewFileStore(cfg.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("opening document store: %w", err)
	}

	trace := logging.NewTraceLogger(cfg.DataDir, cfg.Logging.Level)
	mem := memory.NewTunedStore(docs, logger, memory.Tuning{
		ShortTermCapacity:   cfg.Memory.ShortTermCapacity,
		SimilarityThreshold: cfg.Memory.SimilarityThreshold,
		CleanupDays:         cfg.Memory.CleanupDays,
		CleanupScore:        cfg.Memory.CleanupScore,
	})
	tasks := task.NewDispatcher(docs, logger)
	reminders := reminder.NewService(docs, logger)
	journ := journal.NewService(docs, logger)
	prof := profile.NewStore(docs, logger)
	speaker := speech.NewSpeaker(cfg.Speech.Enabled, logger)

	a := &Assistant{
		cfg:       cfg,
		logger:    logger,
		trace:     trace,
		docs:      docs,
		Memory:    mem,
		Tasks:     tasks,
		Reminders: reminders,
		Journal:   journ,
		Profile:   prof,
		speaker:   speaker,
	}
	a.OnReminder = func(r reminder.Reminder) {
		logger.Info("reminder due", "text", r.Text)
		speaker.Speak("Reminder: " + r.Text)
	}

	a.router = router.New(router.Deps{
		Memory:    mem,
		Generator: response.NewGenerator(),
		Tasks:     tasks,
		Reminders: reminders,
		Journal:   journ,
		Web:       websearch.NewClient(),
		Docs:      docs,
		Logger:    logger,
		Trace:     trace,
	})
	return a, nil
}

// Interpret routes one input synchronously and speaks the response when
// speech is enabled.
func (a *Assistant) Interpret(input string) router.Outcome {
	outcome := a.router.Route(input)
	if outcome.Response != "" {
		a.speaker.Speak(outcome.Response)
	}
	return outcome
}

// Greeting returns the personalized session-opening line.
func (a *Assistant) Greeting() string {
	return a.Profile.Greeting()
}

// Start launches the reminder sweep and the persistence/pattern-analysis
// sweep. Both stop when Shutdown is called.
func (a *Assistant) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	a.wg.Add(2)
	go a.reminderLoop(ctx)
	go a.persistLoop(ctx)
}

func (a *Assistant) reminderLoop(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(time.Duration(a.cfg.Cadence.ReminderSweep))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, r := range a.Reminders.Due() {
				a.OnReminder(r)
			}
		}
	}
}

func (a *Assistant) persistLoop(ctx context.Context) {
	defer a.wg.Done()
	ticker := time.NewTicker(time.Duration(a.cfg.Cadence.Persist))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Memory.ReinforcePatterns()
			if err := a.Memory.Persist(); err != nil {
				a.logger.Warn("periodic persist failed", "error", err)
			}
		}
	}
}

// Shutdown stops the background sweeps, performs a final best-effort
// flush, and releases the store.
func (a *Assistant) Shutdown() error {
	if a.cancel != nil {
		a.cancel()
		a.wg.Wait()
	}

	var firstErr error
	if err := a.Memory.Persist(); err != nil {
		a.logger.Warn("final persist failed", "error", err)
		firstErr = err
	}
	a.trace.Close()
	if err := a.docs.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
