package memory

import (
	"strings"

	"github.com/aide-sh/aide/internal/constants"
)

// Cue token sets for preference extraction. The two checks are independent:
// a sentence containing both positive and negative cues applies both
// adjustments.
var (
	positiveCues = []string{"like", "love", "prefer", "enjoy"}
	negativeCues = []string{"hate", "dislike", "dont like", "don't like"}

	// positiveExcluded tokens never receive a positive adjustment.
	positiveExcluded = map[string]bool{
		"i": true, "like": true, "love": true, "prefer": true,
		"enjoy": true, "the": true, "a": true, "an": true,
	}

	// negativeExcluded tokens never receive a negative adjustment.
	negativeExcluded = map[string]bool{
		"i": true, "hate": true, "dislike": true, "dont": true,
		"don't": true, "like": true, "the": true, "a": true, "an": true,
	}
)

// extractPreferences scans text for preference cues and shifts the weight
// of every other qualifying token by the preference step: positive cues add
// it, negative cues subtract it. Caller must hold s.mu.
func (s *Store) extractPreferences(text string) {
	lower := strings.ToLower(text)
	words := strings.Fields(lower)

	if containsAny(lower, positiveCues) {
		for _, w := range words {
			if !positiveExcluded[w] {
				s.preferences[w] += constants.PreferenceStep
			}
		}
	}

	if containsAny(lower, negativeCues) {
		for _, w := range words {
			if !negativeExcluded[w] {
				s.preferences[w] -= constants.PreferenceStep
			}
		}
	}
}

func containsAny(text string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(text, cue) {
			return true
		}
	}
	return false
}
