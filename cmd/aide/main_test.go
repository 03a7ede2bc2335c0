package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/aide-sh/aide/internal/assistant"
	"github.com/aide-sh/aide/internal/config"
)

// isolateHome points HOME at a temp dir so tests never touch ~/.aide.
func isolateHome(t *testing.T) string {
	t.Helper()
	tmpHome := filepath.Join(t.TempDir(), "home")
	if err := os.MkdirAll(tmpHome, 0700); err != nil {
		t.Fatalf("creating temp home: %v", err)
	}
	t.Setenv("HOME", tmpHome)
	return tmpHome
}

// runCommand executes one subcommand under a root carrying the persistent
// flags, against an isolated data directory.
func runCommand(t *testing.T, dataDir string, sub *cobra.Command, args ...string) error {
	t.Helper()
	rootCmd := &cobra.Command{Use: "aide"}
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("data-dir", "", "Data directory")
	rootCmd.AddCommand(sub)
	rootCmd.SetArgs(append([]string{sub.Name(), "--data-dir", dataDir}, args...))
	return rootCmd.Execute()
}

// openAssistant opens a fresh assistant over dataDir to inspect state a
// command left behind.
func openAssistant(t *testing.T, dataDir string) *assistant.Assistant {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = dataDir
	cfg.Speech.Enabled = false
	a, err := assistant.New(cfg, nil)
	if err != nil {
		t.Fatalf("assistant.New: %v", err)
	}
	t.Cleanup(func() { a.Shutdown() })
	return a
}

func TestInterpretCmdRecordsMemory(t *testing.T) {
	isolateHome(t)
	dataDir := t.TempDir()

	if err := runCommand(t, dataDir, newInterpretCmd(), "I", "like", "chess"); err != nil {
		t.Fatalf("interpret: %v", err)
	}

	a := openAssistant(t, dataDir)
	if got := a.Memory.Stats().EpisodicCount; got != 1 {
		t.Errorf("EpisodicCount = %d, want 1", got)
	}
}

func TestInterpretCmdRequiresArgs(t *testing.T) {
	isolateHome(t)

	if err := runCommand(t, t.TempDir(), newInterpretCmd()); err == nil {
		t.Fatal("expected usage error with no input")
	}
}

func TestRemindersAddPersists(t *testing.T) {
	isolateHome(t)
	dataDir := t.TempDir()

	err := runCommand(t, dataDir, newRemindersCmd(), "add", "remind me to call mom in 2 hours")
	if err != nil {
		t.Fatalf("reminders add: %v", err)
	}

	a := openAssistant(t, dataDir)
	pending := a.Reminders.List()
	if len(pending) != 1 {
		t.Fatalf("List returned %d reminders, want 1", len(pending))
	}
	if pending[0].Text != "call mom" {
		t.Errorf("reminder text = %q, want %q", pending[0].Text, "call mom")
	}
}

func TestRemindersAddRejectsUnparseable(t *testing.T) {
	isolateHome(t)

	err := runCommand(t, t.TempDir(), newRemindersCmd(), "add", "this is not a reminder")
	if err == nil {
		t.Fatal("expected error for unparseable request")
	}
}

func TestJournalAddPersists(t *testing.T) {
	isolateHome(t)
	dataDir := t.TempDir()

	err := runCommand(t, dataDir, newJournalCmd(), "add", "had a great day at work")
	if err != nil {
		t.Fatalf("journal add: %v", err)
	}

	a := openAssistant(t, dataDir)
	entries := a.Journal.List()
	if len(entries) != 1 {
		t.Fatalf("List returned %d entries, want 1", len(entries))
	}
	if entries[0].Emotion != "positive" {
		t.Errorf("emotion = %q, want positive", entries[0].Emotion)
	}
}

func TestProfileSetAndGreeting(t *testing.T) {
	isolateHome(t)
	dataDir := t.TempDir()

	err := runCommand(t, dataDir, newProfileCmd(), "set", "--name", "Ada", "--style", "technical")
	if err != nil {
		t.Fatalf("profile set: %v", err)
	}

	a := openAssistant(t, dataDir)
	p := a.Profile.Get()
	if p.Name != "Ada" || p.InteractionStyle != "technical" {
		t.Errorf("profile = %+v, want name Ada style technical", p)
	}
}

func TestProfileSetRejectsUnknownStyle(t *testing.T) {
	isolateHome(t)

	err := runCommand(t, t.TempDir(), newProfileCmd(), "set", "--style", "sarcastic")
	if err == nil {
		t.Fatal("expected error for unknown style")
	}
}

func TestTaskCmdRejectsBadParam(t *testing.T) {
	isolateHome(t)

	err := runCommand(t, t.TempDir(), newTaskCmd(), "smart_scheduling", "--param", "noequals")
	if err == nil {
		t.Fatal("expected error for malformed --param")
	}
}

func TestCleanupCmdEmptyStore(t *testing.T) {
	isolateHome(t)

	if err := runCommand(t, t.TempDir(), newCleanupCmd()); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
}
