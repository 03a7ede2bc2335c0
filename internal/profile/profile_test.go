package profile

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/aide-sh/aide/internal/storage"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testStore(t *testing.T) *Store {
	t.Helper()
	docs, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	t.Cleanup(func() { docs.Close() })
	s := NewStore(docs, testLogger())
	s.pick = func(pool []string) string { return pool[0] }
	return s
}

func TestDefaultsAnonymous(t *testing.T) {
	s := testStore(t)
	if s.Configured() {
		t.Error("fresh store should not be configured")
	}
	if got := s.Get().Name; got != "User" {
		t.Errorf("name = %q, want User", got)
	}
	if got := s.Greeting(); !strings.Contains(got, "there") {
		t.Errorf("anonymous greeting = %q, want 'there' as the name", got)
	}
}

func TestGreetingStyles(t *testing.T) {
	tests := []struct {
		style string
		want  string
	}{
		{StyleProfessional, "Good day, Ada. How may I assist you today?"},
		{StyleTechnical, "System ready, Ada. Awaiting your command input."},
		{StyleCreative, "Hey Ada! Ready to create something amazing today?"},
		{StyleFriendly, "Hey Ada! Great to see you again! How can I help?"},
		{"", "Hey Ada! Great to see you again! How can I help?"},
		{"bogus", "Hey Ada! Great to see you again! How can I help?"},
	}
	for _, tt := range tests {
		s := testStore(t)
		if err := s.Update(Profile{Name: "Ada", InteractionStyle: tt.style}); err != nil {
			t.Fatal(err)
		}
		if got := s.Greeting(); got != tt.want {
			t.Errorf("style %q: greeting = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestGreetingIncludesProfessionPool(t *testing.T) {
	s := testStore(t)
	if err := s.Update(Profile{Name: "Ada", Profession: "mathematics"}); err != nil {
		t.Fatal(err)
	}
	// Pick the last pool entry, which is a profession phrasing.
	s.pick = func(pool []string) string { return pool[len(pool)-1] }
	got := s.Greeting()
	if !strings.Contains(got, "mathematics") || !strings.Contains(got, "Ada") {
		t.Errorf("greeting = %q, want profession and name", got)
	}
}

func TestUpdatePersists(t *testing.T) {
	docs, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer docs.Close()

	s := NewStore(docs, testLogger())
	if err := s.Update(Profile{Name: "Ada", Profession: "engineer", InteractionStyle: StyleTechnical}); err != nil {
		t.Fatal(err)
	}

	s2 := NewStore(docs, testLogger())
	got := s2.Get()
	if got.Name != "Ada" || got.Profession != "engineer" || got.InteractionStyle != StyleTechnical {
		t.Errorf("reloaded profile = %+v", got)
	}
	if !s2.Configured() {
		t.Error("reloaded store should be configured")
	}
}
