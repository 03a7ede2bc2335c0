// Package response generates conversational replies for classified input.
// Replies are picked from small canned pools, with time-of-day decoration
// for greetings and a handful of directly-answerable question topics.
package response

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/aide-sh/aide/internal/intent"
	"github.com/aide-sh/aide/internal/memory"
)

var pools = map[string][]string{
	"greetings": {
		"Hello! How can I assist you today?",
		"Hi there! What would you like to do?",
		"Good to see you! How may I help?",
		"Welcome back! What's on your mind?",
	},
	"compliments": {
		"Thank you! I'm here to help you achieve great things.",
		"That's very kind of you! I'm always learning to serve you better.",
		"I appreciate that! Let's accomplish something amazing together.",
	},
	"thinking": {
		"Let me process that for you...",
		"Analyzing your request...",
		"Computing the best response...",
		"Processing your query...",
	},
	"unknown": {
		"I'm not sure about that yet, but I'm always learning. Could you rephrase?",
		"That's interesting! I don't have enough data on that topic yet.",
		"I'm still expanding my knowledge base. Can you help me understand better?",
		"That's beyond my current capabilities, but I'm constantly improving!",
	},
}

// Generator produces replies. The clock and picker are injectable so tests
// can pin the time-of-day suffix and the pool selection.
type Generator struct {
	nowFunc func() time.Time
	pick    func(pool []string) string
}

// NewGenerator creates a Generator with the wall clock and a uniform
// random picker.
func NewGenerator() *Generator {
	return &Generator{
		nowFunc: time.Now,
		pick: func(pool []string) string {
			return pool[rand.Intn(len(pool))]
		},
	}
}

// Generate maps a classified input to a reply. Greetings carry a
// time-of-day suffix; questions about a few known topics get direct
// answers; commands get an acknowledgement; everything else, including
// negative sentiment, falls back to the unknown pool.
func (g *Generator) Generate(text string, in intent.Intent) string {
	switch in {
	case intent.Greeting:
		return g.pick(pools["greetings"]) + " " + g.greetingSuffix()
	case intent.Positive:
		return g.pick(pools["compliments"])
	case intent.Question:
		return g.answerQuestion(strings.ToLower(text))
	case intent.Command:
		return g.pick(pools["thinking"])
	default:
		return g.pick(pools["unknown"])
	}
}

func (g *Generator) greetingSuffix() string {
	switch memory.TimeOfDay(g.nowFunc().Hour()) {
	case "morning":
		return "Good morning!"
	case "afternoon":
		return "Good afternoon!"
	case "evening":
		return "Good evening!"
	default:
		return "Good night!"
	}
}

// answerQuestion handles the few question topics with direct answers.
func (g *Generator) answerQuestion(text string) string {
	switch {
	case strings.Contains(text, "weather"):
		return "I'd love to help with weather info, but I need internet access for real-time data. Try asking me to search for weather information!"
	case strings.Contains(text, "time"):
		return fmt.Sprintf("The current time is %s", g.nowFunc().Format("03:04 PM"))
	case strings.Contains(text, "date"):
		return fmt.Sprintf("Today is %s", g.nowFunc().Format("Monday, January 02, 2006"))
	case strings.Contains(text, "your"), strings.Contains(text, "you"):
		return "I'm Aide, your personal assistant. I'm here to help you with various tasks!"
	default:
		return g.pick(pools["unknown"])
	}
}
