package assistant

import (
	"strings"
	"testing"
	"time"

	"github.com/aide-sh/aide/internal/config"
	"github.com/aide-sh/aide/internal/reminder"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Speech.Enabled = false
	cfg.Cadence.ReminderSweep = config.Duration(20 * time.Millisecond)
	cfg.Cadence.Persist = config.Duration(20 * time.Millisecond)
	return cfg
}

func testAssistant(t *testing.T) *Assistant {
	t.Helper()
	a, err := New(testConfig(t), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Shutdown(); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})
	return a
}

func TestInterpretRoutesAndRecords(t *testing.T) {
	a := testAssistant(t)

	out := a.Interpret("what is 2 + 3")
	if out.Terminate {
		t.Fatal("arithmetic input should not terminate")
	}
	if !strings.Contains(out.Response, "5") {
		t.Errorf("Response = %q, want answer containing 5", out.Response)
	}
	if got := a.Memory.Stats().EpisodicCount; got != 1 {
		t.Errorf("EpisodicCount = %d, want 1", got)
	}
}

func TestMemoryConfigReachesStore(t *testing.T) {
	cfg := testConfig(t)
	cfg.Memory.ShortTermCapacity = 3

	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() {
		if err := a.Shutdown(); err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	})

	for _, input := range []string{"hello", "what time is it", "tell me a joke", "what is 1 + 1", "status"} {
		a.Interpret(input)
	}
	if got := a.Memory.Stats().ShortTermCount; got != 3 {
		t.Errorf("ShortTermCount = %d, want configured capacity 3", got)
	}
}

func TestInterpretExit(t *testing.T) {
	a := testAssistant(t)

	out := a.Interpret("goodbye")
	if !out.Terminate {
		t.Fatal("goodbye should terminate")
	}
	if out.Response == "" {
		t.Error("termination should still carry a farewell")
	}
}

func TestGreeting(t *testing.T) {
	a := testAssistant(t)

	if got := a.Greeting(); got == "" {
		t.Error("Greeting returned empty string")
	}
}

func TestReminderSweepFires(t *testing.T) {
	a := testAssistant(t)

	fired := make(chan reminder.Reminder, 1)
	a.OnReminder = func(r reminder.Reminder) {
		select {
		case fired <- r:
		default:
		}
	}

	if _, err := a.Reminders.Add("remind me to stretch in 5 seconds"); err != nil {
		t.Fatalf("Add: %v", err)
	}

	a.Start()
	select {
	case r := <-fired:
		if r.Text != "stretch" {
			t.Errorf("fired reminder text = %q, want %q", r.Text, "stretch")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("reminder sweep never fired")
	}
}

func TestShutdownFlushesMemory(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.Interpret("I like hiking")
	if err := a.Shutdown(); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}

	reopened, err := New(cfg, nil)
	if err != nil {
		t.Fatalf("New after Shutdown: %v", err)
	}
	defer reopened.Shutdown()

	if got := reopened.Memory.Stats().EpisodicCount; got != 1 {
		t.Errorf("EpisodicCount after reload = %d, want 1", got)
	}
}
