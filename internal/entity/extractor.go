// Package entity extracts structured tokens (times, dates, quantities)
// from free text via ordered regular expression scans.
package entity

import "regexp"

// Family names used as keys in a Bag.
const (
	FamilyTime    = "time"
	FamilyDate    = "date"
	FamilyNumbers = "numbers"
)

// Bag holds extracted entities keyed by family name. A family key is
// present only if at least one match was found; the value is the ordered
// list of captured text, not deduplicated.
type Bag map[string][]string

// Has reports whether any entity of the given family was extracted.
func (b Bag) Has(family string) bool {
	return len(b[family]) > 0
}

// The three ordered pattern families. All matching is case-insensitive.
var (
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`),
		regexp.MustCompile(`(?i)(\d{1,2})\s*(am|pm)`),
		regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night|midnight|noon)\b`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(today|tomorrow|yesterday)\b`),
		regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
		regexp.MustCompile(`(?i)(\d{1,2})/(\d{1,2})/(\d{4})`),
		regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})\b`),
	}

	numberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d+)\s*(minutes?|hours?|seconds?|days?|weeks?|months?|years?)\b`),
		regexp.MustCompile(`\b(\d+(?:\.\d+)?)\b`),
	}
)

// Extract scans text for time, date, and quantity entities.
// It is a pure function of its input; absence of matches yields an empty bag.
func Extract(text string) Bag {
	bag := make(Bag)
	scanFamily(bag, FamilyTime, timePatterns, text)
	scanFamily(bag, FamilyDate, datePatterns, text)
	scanFamily(bag, FamilyNumbers, numberPatterns, text)
	return bag
}

// scanFamily runs each pattern of a family in order, appending the captured
// groups of every match. Patterns within a family accumulate rather than
// overwrite, so "tomorrow at 5pm on friday" yields both date entities.
func scanFamily(bag Bag, family string, patterns []*regexp.Regexp, text string) {
	for _, re := range patterns {
		for _, match := range re.FindAllStringSubmatch(text, -1) {
			if len(match) == 1 {
				bag[family] = append(bag[family], match[0])
				continue
			}
			for _, group := range match[1:] {
				if group != "" {
					bag[family] = append(bag[family], group)
				}
			}
		}
	}
}
