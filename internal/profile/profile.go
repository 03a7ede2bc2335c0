// Package profile stores who the user is and generates greetings matched
// to their preferred interaction style.
package profile

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"

	"github.com/aide-sh/aide/internal/storage"
)

// Profile describes the user.
type Profile struct {
	Name             string `json:"name"`
	Profession       string `json:"profession,omitempty"`
	Interests        string `json:"interests,omitempty"`
	InteractionStyle string `json:"interaction_style,omitempty"`
}

// Known interaction styles. Anything else falls back to friendly.
const (
	StyleProfessional = "professional"
	StyleFriendly     = "friendly"
	StyleTechnical    = "technical"
	StyleCreative     = "creative"
)

var styleGreetings = map[string][]string{
	StyleProfessional: {
		"Good day, %s. How may I assist you today?",
		"Hello %s, I'm ready to help with your requests.",
		"Welcome back, %s. What can I help you accomplish?",
	},
	StyleTechnical: {
		"System ready, %s. Awaiting your command input.",
		"Hello %s, all systems operational. How can I process your request?",
		"Greetings %s, the assistant core is online and ready.",
	},
	StyleCreative: {
		"Hey %s! Ready to create something amazing today?",
		"Hello creative soul %s! What inspiring project shall we work on?",
		"Greetings %s! Let's bring some innovative ideas to life!",
	},
	StyleFriendly: {
		"Hey %s! Great to see you again! How can I help?",
		"Hi there %s! What's on your mind today?",
		"Hello %s! Ready for another productive conversation?",
	},
}

var professionGreetings = []string{
	"Hope your work in %s is going well, %s!",
	"How are things in the %s world today, %s?",
}

// Store persists one user profile. Safe for concurrent use.
type Store struct {
	mu     sync.Mutex
	docs   storage.DocumentStore
	logger *slog.Logger

	profile Profile
	pick    func(pool []string) string
}

// NewStore creates a Store, restoring any persisted profile. A missing
// profile starts as an anonymous user.
func NewStore(docs storage.DocumentStore, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		docs:    docs,
		logger:  logger,
		profile: Profile{Name: "User"},
		pick: func(pool []string) string {
			return pool[rand.Intn(len(pool))]
		},
	}
	if _, err := storage.LoadInto(docs, storage.DocProfile, &s.profile); err != nil {
		logger.Warn("profile document unreadable, starting anonymous", "error", err)
	}
	if s.profile.Name == "" {
		s.profile.Name = "User"
	}
	return s
}

// Get returns the current profile.
func (s *Store) Get() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Update replaces the profile and persists it.
func (s *Store) Update(p Profile) error {
	if p.Name == "" {
		p.Name = "User"
	}
	s.mu.Lock()
	s.profile = p
	err := s.docs.Save(storage.DocProfile, p)
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("persisting profile: %w", err)
	}
	return nil
}

// Configured reports whether the user has introduced themselves.
func (s *Store) Configured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Name != "" && s.profile.Name != "User"
}

// Greeting composes a greeting matched to the user's interaction style.
// When a profession is set, profession-aware phrasings join the pool.
func (s *Store) Greeting() string {
	s.mu.Lock()
	p := s.profile
	s.mu.Unlock()

	name := p.Name
	if name == "" || name == "User" {
		name = "there"
	}

	pool, ok := styleGreetings[p.InteractionStyle]
	if !ok {
		pool = styleGreetings[StyleFriendly]
	}

	greetings := make([]string, 0, len(pool)+len(professionGreetings))
	for _, g := range pool {
		greetings = append(greetings, fmt.Sprintf(g, name))
	}
	if p.Profession != "" {
		for _, g := range professionGreetings {
			greetings = append(greetings, fmt.Sprintf(g, p.Profession, name))
		}
	}
	return s.pick(greetings)
}
