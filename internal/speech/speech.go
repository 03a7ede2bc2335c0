// Package speech provides optional text-to-speech output through the
// system espeak binary. Speech is best-effort: a missing binary or failed
// invocation is logged and otherwise ignored.
package speech

import (
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"time"
)

const (
	defaultRate  = 180
	speakTimeout = 5 * time.Second
)

// Speaker speaks text aloud. A nil *Speaker is valid and silent, so
// callers never need to guard the disabled case.
type Speaker struct {
	logger *slog.Logger
	rate   int

	// runCmd is swapped in tests to avoid invoking espeak.
	runCmd func(ctx context.Context, name string, args ...string) error
}

// NewSpeaker creates a Speaker, or nil when enabled is false.
func NewSpeaker(enabled bool, logger *slog.Logger) *Speaker {
	if !enabled {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Speaker{
		logger: logger,
		rate:   defaultRate,
		runCmd: func(ctx context.Context, name string, args ...string) error {
			return exec.CommandContext(ctx, name, args...).Run()
		},
	}
}

// Speak voices text, blocking until done or the timeout elapses.
func (s *Speaker) Speak(text string) {
	if s == nil || text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), speakTimeout)
	defer cancel()

	if err := s.runCmd(ctx, "espeak", "-s", strconv.Itoa(s.rate), text); err != nil {
		s.logger.Debug("speech output failed", "error", err)
	}
}
