// Package intent assigns a coarse intent label to one input utterance.
//
// Classification evaluates pattern groups in a fixed precedence order and
// returns the label of the first group with any matching pattern. The
// precedence is a deliberate tie-break: "hello, can you help?" matches both
// greeting and question patterns but classifies as greeting because greeting
// is checked first. Matching is regex-based over the raw text, not
// tokenized, so an unrelated phrase embedding a trigger word can
// misclassify (e.g. "I hate that you love puzzles" hits the positive group
// before the negative one is ever checked).
package intent

import (
	"regexp"
	"strings"
)

// Intent is the coarse category assigned to one input utterance.
type Intent string

// The six defined intent labels. Classify never returns anything else.
const (
	Greeting Intent = "greeting"
	Question Intent = "question"
	Command  Intent = "command"
	Positive Intent = "positive"
	Negative Intent = "negative"
	Unknown  Intent = "unknown"
)

// group pairs an intent label with its trigger patterns.
type group struct {
	label    Intent
	patterns []*regexp.Regexp
}

// groups are evaluated strictly in order; the first group with any match wins.
var groups = []group{
	{Greeting, compile(
		`\b(hi|hello|hey|good morning|good afternoon|good evening)\b`,
		`\b(what's up|how are you|howdy)\b`,
	)},
	{Question, compile(
		`\b(what|who|when|where|why|how)\b.*\?`,
		`\b(can you|could you|would you|will you)\b`,
		`\b(do you know|tell me about|explain)\b`,
	)},
	{Command, compile(
		`\b(play|open|start|run|execute)\b`,
		`\b(remind me|set reminder|alert me)\b`,
		`\b(search|find|look up|google)\b`,
		`\b(calculate|compute|solve)\b`,
	)},
	{Positive, compile(
		`\b(love|like|awesome|great|amazing|wonderful|excellent)\b`,
	)},
	{Negative, compile(
		`\b(hate|dislike|awful|terrible|bad|horrible|worst)\b`,
	)},
}

func compile(exprs ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		res[i] = regexp.MustCompile(e)
	}
	return res
}

// Classify returns exactly one of the six intent labels for text.
// It is a total, stateless function: identical input yields identical output.
func Classify(text string) Intent {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, g := range groups {
		for _, re := range g.patterns {
			if re.MatchString(text) {
				return g.label
			}
		}
	}
	return Unknown
}
