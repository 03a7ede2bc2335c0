package similarity

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{"identical", "play music", "play music", 1.0},
		{"no overlap", "play music", "open terminal", 0.0},
		{"both empty", "", "", 0.0},
		{"one empty", "play music", "", 0.0},
		{"case insensitive", "Play Music", "play music", 1.0},
		// |{play,music}| / |{play,music,some}| = 2/3
		{"partial overlap", "play music", "play some music", 2.0 / 3.0},
		{"repeated words collapse", "music music music", "music", 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestScore_AboveThresholdExample(t *testing.T) {
	// The documented retrieval example: 2/3 similarity clears the 0.3 bar.
	got := Score("play music", "play some music")
	if got <= 0.3 {
		t.Errorf("Score = %v, want > 0.3", got)
	}
}

func TestJaccard_WordSet(t *testing.T) {
	a := WordSet("I like pizza")
	if !a["i"] || !a["like"] || !a["pizza"] {
		t.Errorf("WordSet missing expected tokens: %v", a)
	}
	if len(a) != 3 {
		t.Errorf("WordSet size = %d, want 3", len(a))
	}
}
