// Package reminder parses natural-language reminder requests and tracks
// pending reminders until their scheduled time falls inside the fire
// window.
package reminder

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/aide-sh/aide/internal/constants"
	"github.com/aide-sh/aide/internal/storage"
)

// Reminder is one pending reminder.
type Reminder struct {
	Text    string    `json:"text"`
	Time    time.Time `json:"time"`
	Created time.Time `json:"created"`
}

// Accepted request phrasings. The capture groups are (action, amount, unit).
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`remind me to (.+) in (\d+) (seconds?|minutes?|hours?|days?)`),
	regexp.MustCompile(`set reminder (.+) in (\d+) (seconds?|minutes?|hours?|days?)`),
	regexp.MustCompile(`alert me to (.+) in (\d+) (seconds?|minutes?|hours?|days?)`),
}

// ErrNoMatch reports that the input is not a reminder request.
var ErrNoMatch = fmt.Errorf("not a reminder request")

// Service tracks reminders with persistence through a document store.
// Safe for concurrent use.
type Service struct {
	mu     sync.Mutex
	docs   storage.DocumentStore
	logger *slog.Logger

	nowFunc   func() time.Time
	reminders []Reminder
}

// NewService creates a Service, restoring any persisted reminders.
func NewService(docs storage.DocumentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{docs: docs, logger: logger, nowFunc: time.Now}
	if _, err := storage.LoadInto(docs, storage.DocReminders, &s.reminders); err != nil {
		logger.Warn("reminders document unreadable, starting empty", "error", err)
	}
	return s
}

// Add parses a reminder request, schedules it, and returns a confirmation
// message. ErrNoMatch means the input did not look like a reminder request
// at all; the caller should fall through to other handlers.
func (s *Service) Add(command string) (string, error) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(command)
		if m == nil {
			continue
		}

		amount, err := strconv.Atoi(m[2])
		if err != nil {
			return "", fmt.Errorf("parsing reminder amount %q: %w", m[2], err)
		}
		unit, err := unitDuration(m[3])
		if err != nil {
			return "", err
		}

		now := s.nowFunc()
		r := Reminder{
			Text:    m[1],
			Time:    now.Add(time.Duration(amount) * unit),
			Created: now,
		}

		s.mu.Lock()
		s.reminders = append(s.reminders, r)
		err = s.persistLocked()
		s.mu.Unlock()
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("Reminder set: '%s' for %s", r.Text, r.Time.Format("2006-01-02 15:04")), nil
	}
	return "", ErrNoMatch
}

func unitDuration(unit string) (time.Duration, error) {
	switch unit {
	case "second", "seconds":
		return time.Second, nil
	case "minute", "minutes":
		return time.Minute, nil
	case "hour", "hours":
		return time.Hour, nil
	case "day", "days":
		return 24 * time.Hour, nil
	}
	return 0, fmt.Errorf("invalid time unit: %s", unit)
}

// Due removes and returns every reminder whose scheduled time is within
// the fire window of now. Overdue reminders beyond the window are dropped
// silently on the next sweep; the window is the delivery guarantee.
func (s *Service) Due() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	var due []Reminder
	var kept []Reminder
	for _, r := range s.reminders {
		diff := now.Sub(r.Time)
		if diff < 0 {
			diff = -diff
		}
		switch {
		case diff <= constants.ReminderFireWindow:
			due = append(due, r)
		case r.Time.After(now):
			kept = append(kept, r)
		default:
			// Missed entirely, e.g. the assistant was down.
			s.logger.Warn("dropping missed reminder", "text", r.Text, "time", r.Time)
		}
	}

	if len(kept) != len(s.reminders) {
		s.reminders = kept
		if err := s.persistLocked(); err != nil {
			s.logger.Warn("could not persist reminders", "error", err)
		}
	}
	return due
}

// List returns a copy of all pending reminders.
func (s *Service) List() []Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

func (s *Service) persistLocked() error {
	if err := s.docs.Save(storage.DocReminders, s.reminders); err != nil {
		return fmt.Errorf("persisting reminders: %w", err)
	}
	return nil
}
