package inbox

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Roadmap Review", "roadmap-review"},
		{"  Weekly   Sync  ", "weekly-sync"},
		{`Q3 <Plan>: "draft" / final?`, "q3-plan-draft-final"},
		{"a--b---c", "a-b-c"},
		{"---", "untitled"},
		{"", "untitled"},
		{"///???", "untitled"},
		{strings.Repeat("x", 100), strings.Repeat("x", 80)},
		{strings.Repeat("日", 30), strings.Repeat("日", 30)},
		{strings.Repeat("日", 100), strings.Repeat("日", 80)},
	}

	for _, tt := range tests {
		got := Slugify(tt.title)
		if got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.title, got, tt.want)
		}
		if !utf8.ValidString(got) {
			t.Errorf("Slugify(%q) produced invalid UTF-8", tt.title)
		}
	}
}

func TestNamerBasic(t *testing.T) {
	n := NewNamer()
	date := time.Date(2025, 3, 7, 10, 0, 0, 0, time.Local)

	got := n.Name(date, true, "Roadmap Review", "abcdef12-3456")
	if got != "granola-2025-03-07-roadmap-review.md" {
		t.Errorf("Name() = %q", got)
	}
}

func TestNamerUndated(t *testing.T) {
	n := NewNamer()
	got := n.Name(time.Time{}, false, "Mystery Meeting", "id-1")
	if got != "granola-undated-mystery-meeting.md" {
		t.Errorf("Name() = %q", got)
	}
}

func TestNamerDedup(t *testing.T) {
	n := NewNamer()
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.Local)

	first := n.Name(date, true, "Standup", "11112222-aaaa")
	second := n.Name(date, true, "Standup", "33334444-bbbb")

	if first != "granola-2025-03-07-standup.md" {
		t.Errorf("first = %q, want unsuffixed name", first)
	}
	if second != "granola-2025-03-07-standup-33334444.md" {
		t.Errorf("second = %q, want 8-char id suffix", second)
	}
	if first == second {
		t.Error("colliding meetings produced identical names")
	}
}

func TestNamerShortIDSuffix(t *testing.T) {
	n := NewNamer()
	date := time.Date(2025, 3, 7, 0, 0, 0, 0, time.Local)

	n.Name(date, true, "Standup", "a")
	got := n.Name(date, true, "Standup", "b")
	if got != "granola-2025-03-07-standup-b.md" {
		t.Errorf("Name() = %q, want whole short id as suffix", got)
	}
}
