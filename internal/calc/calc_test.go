package calc

import (
	"errors"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2 + 2", 4},
		{"2 plus 2", 4},
		{"10 minus 3", 7},
		{"6 times 7", 42},
		{"4 multiply 5", 20},
		{"10 divided by 4", 2.5},
		{"100 divide 4", 25},
		{"(3 + 4) * 2", 14},
		{"what is 5 plus 5", 10},
		{"2.5 * 2", 5},
	}
	for _, tt := range tests {
		got, err := Evaluate(tt.expr)
		if err != nil {
			t.Errorf("Evaluate(%q): %v", tt.expr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestEvaluateEmpty(t *testing.T) {
	for _, input := range []string{"", "hello world", "!!!"} {
		if _, err := Evaluate(input); !errors.Is(err, ErrEmpty) {
			t.Errorf("Evaluate(%q) err = %v, want ErrEmpty", input, err)
		}
	}
}

func TestEvaluateMalformed(t *testing.T) {
	if _, err := Evaluate("2 + + *"); err == nil {
		t.Error("expected error for malformed expression")
	}
}

func TestAnswer(t *testing.T) {
	if got := Answer("2 plus 2"); got != "The result is: 4" {
		t.Errorf("Answer = %q", got)
	}
	if got := Answer("10 divided by 4"); got != "The result is: 2.5" {
		t.Errorf("Answer = %q", got)
	}
	if got := Answer("no math here"); got != "I couldn't understand the mathematical expression." {
		t.Errorf("Answer = %q", got)
	}
	if got := Answer("2 + + *"); got != "Sorry, I couldn't calculate that expression." {
		t.Errorf("Answer = %q", got)
	}
}
