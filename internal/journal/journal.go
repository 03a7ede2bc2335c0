// Package journal keeps a dated journal with a lightweight emotion tag
// derived from each entry's wording.
package journal

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aide-sh/aide/internal/storage"
)

// Entry is one journal record.
type Entry struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Text    string `json:"entry"`
	Emotion string `json:"emotion"`
}

// Accepted request phrasings; group 1 is the entry text.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`add journal (.+)`),
	regexp.MustCompile(`note in journal (.+)`),
	regexp.MustCompile(`write in journal (.+)`),
	regexp.MustCompile(`journal (.+)`),
}

// ErrNoMatch reports that the input is not a journal request.
var ErrNoMatch = fmt.Errorf("not a journal request")

var happyKeywords = []string{"happy", "great", "excited", "joy", "good"}
var sadKeywords = []string{"sad", "bad", "depressed", "angry", "tired"}

// Emotion tags an entry text as positive, negative, or neutral. Happy
// keywords are checked before sad ones.
func Emotion(text string) string {
	text = strings.ToLower(text)
	for _, w := range happyKeywords {
		if strings.Contains(text, w) {
			return "positive"
		}
	}
	for _, w := range sadKeywords {
		if strings.Contains(text, w) {
			return "negative"
		}
	}
	return "neutral"
}

// Service appends and lists journal entries, persisting through a document
// store. Safe for concurrent use.
type Service struct {
	mu     sync.Mutex
	docs   storage.DocumentStore
	logger *slog.Logger

	nowFunc func() time.Time
	entries []Entry
}

// NewService creates a Service, restoring any persisted entries.
func NewService(docs storage.DocumentStore, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{docs: docs, logger: logger, nowFunc: time.Now}
	if _, err := storage.LoadInto(docs, storage.DocJournal, &s.entries); err != nil {
		logger.Warn("journal document unreadable, starting empty", "error", err)
	}
	return s
}

// Add parses a journal request, appends the tagged entry, and returns a
// confirmation. ErrNoMatch means the input did not look like a journal
// request.
func (s *Service) Add(command string) (string, error) {
	var text string
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(command); m != nil {
			text = strings.TrimSpace(m[1])
			break
		}
	}
	if text == "" {
		return "", ErrNoMatch
	}

	now := s.nowFunc()
	entry := Entry{
		Date:    now.Format("2006-01-02"),
		Time:    now.Format("2006-01-02 15:04:05"),
		Text:    text,
		Emotion: Emotion(text),
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	err := s.docs.Save(storage.DocJournal, s.entries)
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("persisting journal: %w", err)
	}

	return "Journal entry added successfully.", nil
}

// List returns a copy of all journal entries, oldest first.
func (s *Service) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}
