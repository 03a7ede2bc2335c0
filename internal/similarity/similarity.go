// Package similarity provides tokenization and Jaccard similarity scoring
// used for matching new input against stored interaction history.
package similarity

import "strings"

// WordSet returns the lowercased set of whitespace-separated words in s.
// Splitting on whitespace (rather than word characters) matches how stored
// user inputs are compared: "don't" stays a single token.
func WordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

// Jaccard computes the Jaccard index |A∩B| / |A∪B| between two word sets.
// Returns 0.0 when both sets are empty.
func Jaccard(a, b map[string]bool) float64 {
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0.0
	}

	return float64(intersection) / float64(union)
}

// Score computes the Jaccard similarity between the lowercased word sets of
// two strings.
func Score(a, b string) float64 {
	return Jaccard(WordSet(a), WordSet(b))
}
