package intent

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Intent
	}{
		{"greeting", "hello there", Greeting},
		{"greeting casual", "hey, what's going on", Greeting},
		{"question with mark", "what time is it?", Question},
		{"question modal", "can you help me", Question},
		{"question explain", "tell me about go", Question},
		{"command play", "play some jazz", Command},
		{"command reminder", "remind me to stretch", Command},
		{"command search", "search for gophers", Command},
		{"positive", "this is awesome", Positive},
		{"negative", "that was terrible", Negative},
		{"unknown", "the weather outside", Unknown},
		{"empty", "", Unknown},
		{"uppercase normalized", "HELLO FRIEND", Greeting},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Precedence law: greeting is checked before question, so text matching
// both classifies as greeting.
func TestClassify_Precedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Intent
	}{
		{"greeting beats question", "hello, can you help?", Greeting},
		{"question beats command", "can you play music", Question},
		{"command beats positive", "play my favorite love songs", Command},
		{"positive beats negative", "I hate that you love puzzles", Positive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.input)
			if got != tt.want {
				t.Errorf("Classify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Classification is idempotent: no hidden state influences the label.
func TestClassify_Idempotent(t *testing.T) {
	inputs := []string{"hello", "what is 2+2?", "play music", "gibberish zzz"}
	for _, in := range inputs {
		first := Classify(in)
		second := Classify(in)
		if first != second {
			t.Errorf("Classify(%q) not idempotent: %q then %q", in, first, second)
		}
	}
}

func TestClassify_AlwaysDefined(t *testing.T) {
	valid := map[Intent]bool{
		Greeting: true, Question: true, Command: true,
		Positive: true, Negative: true, Unknown: true,
	}
	inputs := []string{"", "   ", "????", "42", "hello world", "x"}
	for _, in := range inputs {
		if got := Classify(in); !valid[got] {
			t.Errorf("Classify(%q) = %q, not a defined label", in, got)
		}
	}
}
