package router

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/aide-sh/aide/internal/journal"
	"github.com/aide-sh/aide/internal/memory"
	"github.com/aide-sh/aide/internal/reminder"
	"github.com/aide-sh/aide/internal/response"
	"github.com/aide-sh/aide/internal/storage"
	"github.com/aide-sh/aide/internal/task"
)

// fakeWeb resolves media and search queries without the network.
type fakeWeb struct {
	videoURL  string
	searchURL string
	err       error
}

func (f *fakeWeb) GoogleFirstResult(string) (string, error) { return f.searchURL, f.err }
func (f *fakeWeb) YouTubeVideoURL(string) (string, error)   { return f.videoURL, f.err }

type fixture struct {
	router    *Router
	memory    *memory.Store
	reminders *reminder.Service
	journal   *journal.Service
	web       *fakeWeb
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	docs, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { docs.Close() })

	f := &fixture{
		memory:    memory.NewStore(docs, logger),
		reminders: reminder.NewService(docs, logger),
		journal:   journal.NewService(docs, logger),
		web:       &fakeWeb{videoURL: "https://www.youtube.com/watch?v=abc123", searchURL: "https://example.org/hit"},
	}
	dispatcher := task.NewDispatcher(docs, logger)
	f.router = New(Deps{
		Memory:    f.memory,
		Generator: response.NewGenerator(),
		Tasks:     dispatcher,
		Reminders: f.reminders,
		Journal:   f.journal,
		Web:       f.web,
		Docs:      docs,
		Logger:    logger,
	})
	return f
}

func TestTerminationPhrases(t *testing.T) {
	f := newFixture(t)
	for _, phrase := range []string{"exit", "quit", "goodbye", "bye", "  EXIT  "} {
		got := f.router.Route(phrase)
		if !got.Terminate {
			t.Errorf("Route(%q).Terminate = false", phrase)
		}
	}
	// Termination does not touch memory.
	if got := f.memory.Stats().EpisodicCount; got != 0 {
		t.Errorf("episodic count after exits = %d, want 0", got)
	}
	// Substring is not enough; these are exact phrases.
	if got := f.router.Route("please don't quit on me"); got.Terminate {
		t.Error("non-exact phrase should not terminate")
	}
}

func TestBlankInputContinues(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("   ")
	if got.Terminate || got.Response != "" {
		t.Errorf("blank input outcome = %+v", got)
	}
	if f.memory.Stats().EpisodicCount != 0 {
		t.Error("blank input should not be recorded")
	}
}

func TestHelpBypassesClassifier(t *testing.T) {
	f := newFixture(t)
	for _, phrase := range []string{"help", "commands", "what can you do"} {
		got := f.router.Route(phrase)
		if !strings.Contains(got.Response, "Available commands") {
			t.Errorf("Route(%q) = %q, want help text", phrase, got.Response)
		}
	}
}

func TestReminderEndToEnd(t *testing.T) {
	f := newFixture(t)
	before := time.Now()

	got := f.router.Route("remind me to call mom in 2 hours")
	if got.Terminate {
		t.Fatal("reminder should continue the session")
	}
	if !strings.Contains(got.Response, "Reminder set: 'call mom'") {
		t.Errorf("response = %q", got.Response)
	}

	stored := f.reminders.List()
	if len(stored) != 1 {
		t.Fatalf("reminders = %d, want 1", len(stored))
	}
	want := before.Add(2 * time.Hour)
	if diff := stored[0].Time.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Errorf("scheduled = %v, want about %v", stored[0].Time, want)
	}
	// The exchange is recorded.
	if f.memory.Stats().EpisodicCount != 1 {
		t.Error("reminder exchange not recorded to memory")
	}
}

func TestMediaHandler(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("play lofi beats on youtube")
	if !strings.Contains(got.Response, "lofi beats") || !strings.Contains(got.Response, f.web.videoURL) {
		t.Errorf("response = %q", got.Response)
	}

	f.web.err = fmt.Errorf("offline")
	got = f.router.Route("play jazz on youtube")
	if got.Response != "Sorry, couldn't find that video on YouTube." {
		t.Errorf("offline response = %q", got.Response)
	}
}

func TestJournalHandler(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("journal had a great day")
	if got.Response != "Journal entry added successfully." {
		t.Errorf("response = %q", got.Response)
	}
	entries := f.journal.List()
	if len(entries) != 1 || entries[0].Emotion != "positive" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestCalculatorCategory(t *testing.T) {
	f := newFixture(t)
	tests := []struct {
		input string
		want  string
	}{
		{"calculate 2+2", "The result is: 4"},
		{"what is 6 times 7", "The result is: 42"},
		{"solve 10 divided by 4", "The result is: 2.5"},
	}
	for _, tt := range tests {
		if got := f.router.Route(tt.input); got.Response != tt.want {
			t.Errorf("Route(%q) = %q, want %q", tt.input, got.Response, tt.want)
		}
	}
	// Non-arithmetic questions are not swallowed by the calculator.
	if got := f.router.Route("what is the weather like?"); strings.Contains(got.Response, "result is") {
		t.Errorf("weather question hit the calculator: %q", got.Response)
	}
}

func TestWebSearchCategory(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("search for golang generics")
	if !strings.Contains(got.Response, f.web.searchURL) {
		t.Errorf("response = %q", got.Response)
	}

	// A failed scrape degrades to an acknowledgement, not an error.
	f.web.err = fmt.Errorf("offline")
	f.web.searchURL = ""
	got = f.router.Route("search for golang generics")
	if got.Response != "Searching for: golang generics" {
		t.Errorf("offline response = %q", got.Response)
	}
}

func TestEntertainmentJoke(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("tell me a joke")
	found := false
	for _, j := range jokes {
		if got.Response == j {
			found = true
		}
	}
	if !found {
		t.Errorf("response %q not from the jokes list", got.Response)
	}
}

func TestWeatherCategory(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("weather in Oslo")
	if !strings.Contains(got.Response, "oslo") {
		t.Errorf("response = %q", got.Response)
	}
	got = f.router.Route("forecast please")
	if !strings.Contains(got.Response, "weather information") {
		t.Errorf("response = %q", got.Response)
	}
}

func TestProductivityNote(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("take note buy milk tomorrow")
	if got.Response != "Note saved: buy milk tomorrow" {
		t.Errorf("response = %q", got.Response)
	}
}

func TestUnknownTaskSurfacesAsResult(t *testing.T) {
	f := newFixture(t)
	// Maintenance triggers flow through the dispatcher; its failures come
	// back as normal responses, never panics.
	got := f.router.Route("run network diagnostics")
	if got.Response == "" {
		t.Error("maintenance trigger produced no response")
	}
}

func TestFallbackRecordsWithContext(t *testing.T) {
	f := newFixture(t)
	got := f.router.Route("hello there")
	if got.Response == "" {
		t.Fatal("greeting produced no response")
	}
	stats := f.memory.Stats()
	if stats.EpisodicCount != 1 {
		t.Fatalf("episodic count = %d, want 1", stats.EpisodicCount)
	}
	if stats.ShortTermCount != 1 {
		t.Fatalf("short-term count = %d, want 1", stats.ShortTermCount)
	}
}

func TestEveryRespondingRouteRecords(t *testing.T) {
	f := newFixture(t)
	inputs := []string{
		"help",
		"memory stats",
		"remind me to stretch in 5 minutes",
		"journal feeling tired",
		"calculate 1+1",
		"tell me a joke",
		"weather",
		"how are you today",
	}
	for i, input := range inputs {
		out := f.router.Route(input)
		if out.Response == "" {
			t.Fatalf("Route(%q) produced no response", input)
		}
		if got := f.memory.Stats().EpisodicCount; got != i+1 {
			t.Errorf("after %q: episodic count = %d, want %d", input, got, i+1)
		}
	}
}
