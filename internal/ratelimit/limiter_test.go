package ratelimit

import (
	"sync"
	"testing"
	"time"
)

func TestNewLimiter(t *testing.T) {
	l := NewLimiter(10.0, 5)
	if l == nil {
		t.Fatal("NewLimiter returned nil")
	}
	if l.rate != 10.0 {
		t.Errorf("rate = %f, want 10.0", l.rate)
	}
	if l.burst != 5 {
		t.Errorf("burst = %d, want 5", l.burst)
	}
}

func TestAllowWithinBurst(t *testing.T) {
	l := NewLimiter(1.0, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow("key1") {
			t.Errorf("request %d should be allowed (within burst)", i+1)
		}
	}
}

func TestAllowExceedsBurst(t *testing.T) {
	l := NewLimiter(1.0, 2)

	l.Allow("key1")
	l.Allow("key1")

	if l.Allow("key1") {
		t.Error("request after burst exhaustion should be rejected")
	}
}

func TestAllowRefillAfterWait(t *testing.T) {
	now := time.Now()
	l := NewLimiter(10.0, 2)
	l.nowFunc = func() time.Time { return now }

	l.Allow("key1")
	l.Allow("key1")

	if l.Allow("key1") {
		t.Error("expected rejection after burst")
	}

	// 200ms at 10 tokens/sec refills 2 tokens
	now = now.Add(200 * time.Millisecond)

	if !l.Allow("key1") {
		t.Error("expected allow after token refill")
	}
}

func TestAllowIndependentKeys(t *testing.T) {
	l := NewLimiter(1.0, 1)

	l.Allow("google.com")
	if l.Allow("google.com") {
		t.Error("google.com should be exhausted")
	}

	if !l.Allow("youtube.com") {
		t.Error("youtube.com should be allowed (independent bucket)")
	}
}

func TestAllowBurstDoesNotExceedMax(t *testing.T) {
	now := time.Now()
	l := NewLimiter(100.0, 3)
	l.nowFunc = func() time.Time { return now }

	l.Allow("key1")
	l.Allow("key1")
	l.Allow("key1")

	// A long wait refills to the burst cap, not beyond.
	now = now.Add(10 * time.Second)

	for i := 0; i < 3; i++ {
		if !l.Allow("key1") {
			t.Errorf("request %d should be allowed after refill capped at burst", i+1)
		}
	}
	if l.Allow("key1") {
		t.Error("4th request should be rejected (burst cap)")
	}
}

func TestAllowPartialTokenRefill(t *testing.T) {
	now := time.Now()
	l := NewLimiter(2.0, 5)
	l.nowFunc = func() time.Time { return now }

	l.Allow("key1")
	l.Allow("key1")
	l.Allow("key1")

	// 250ms at 2 tokens/sec refills 0.5, leaving ~2.5 available
	now = now.Add(250 * time.Millisecond)

	if !l.Allow("key1") {
		t.Error("expected allow with partial refill")
	}
}

func TestAllowZeroRate(t *testing.T) {
	l := NewLimiter(0.0, 2)

	if !l.Allow("key1") {
		t.Error("first request should use initial burst")
	}
	if !l.Allow("key1") {
		t.Error("second request should use initial burst")
	}

	if l.Allow("key1") {
		t.Error("should be rejected with zero rate")
	}
}

func TestAllowConcurrentAccess(t *testing.T) {
	l := NewLimiter(1000.0, 100)

	var wg sync.WaitGroup
	allowed := make(chan bool, 200)

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- l.Allow("concurrent-key")
		}()
	}

	wg.Wait()
	close(allowed)

	allowedCount := 0
	for a := range allowed {
		if a {
			allowedCount++
		}
	}

	// With burst=100 and 200 requests, roughly 100 should pass.
	// Allow some slack for timing.
	if allowedCount < 90 || allowedCount > 110 {
		t.Errorf("allowed %d requests, expected ~100 (burst limit)", allowedCount)
	}
}

func TestNewToolLimiters(t *testing.T) {
	limiters := NewToolLimiters()

	expectedTools := []string{
		"aide_interpret",
		"aide_task",
		"aide_stats",
		"aide_feedback",
	}

	for _, tool := range expectedTools {
		if _, ok := limiters[tool]; !ok {
			t.Errorf("missing rate limiter for tool: %s", tool)
		}
	}
}

func TestToolRateLimits(t *testing.T) {
	limiters := NewToolLimiters()

	tests := []struct {
		name  string
		tool  string
		burst int
	}{
		{"interpret burst", "aide_interpret", 10},
		{"task burst", "aide_task", 3},
		{"stats burst", "aide_stats", 10},
		{"feedback burst", "aide_feedback", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limiter := limiters[tt.tool]
			if limiter.burst != tt.burst {
				t.Errorf("burst = %d, want %d", limiter.burst, tt.burst)
			}
		})
	}
}

func TestCheckLimit(t *testing.T) {
	limiters := NewToolLimiters()

	if err := CheckLimit(limiters, "aide_interpret"); err != nil {
		t.Errorf("unexpected error for aide_interpret: %v", err)
	}

	// No limiter means no limit.
	if err := CheckLimit(limiters, "unknown_tool"); err != nil {
		t.Errorf("unexpected error for unknown tool: %v", err)
	}

	// Exhaust aide_task (burst=3).
	for i := 0; i < 3; i++ {
		CheckLimit(limiters, "aide_task")
	}
	if err := CheckLimit(limiters, "aide_task"); err == nil {
		t.Error("expected rate limit error after burst exhaustion")
	}
}
