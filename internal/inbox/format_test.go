package inbox

import (
	"strings"
	"testing"
	"time"
)

func TestFormatFullDocument(t *testing.T) {
	doc := Document{
		Title:        "Roadmap Review",
		MeetingID:    "abc-123",
		Date:         time.Date(2025, 3, 7, 14, 30, 0, 0, time.Local),
		Dated:        true,
		Participants: []string{"Ada", "Grace"},
		Notes:        "notes body",
		Summary:      "summary body",
		Transcript:   "transcript body",
	}

	got := Format(doc, 5000)
	want := strings.Join([]string{
		"# Meeting: Roadmap Review",
		"",
		"**Date**: 2025-03-07 14:30",
		"**Participants**: Ada, Grace",
		"**Source**: granola",
		"**Meeting ID**: abc-123",
		"",
		"## Notes",
		"notes body",
		"",
		"## Summary",
		"summary body",
		"",
		"## Transcript Highlights",
		"transcript body",
	}, "\n") + "\n"

	if got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatPlaceholders(t *testing.T) {
	got := Format(Document{MeetingID: "m1"}, 5000)

	for _, want := range []string{
		"# Meeting: Untitled Meeting",
		"**Date**: Unknown",
		"**Participants**: Unknown",
		"No notes available",
		"No summary available",
		"No transcript available",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q", want)
		}
	}
}

func TestFormatWhitespaceOnlySections(t *testing.T) {
	got := Format(Document{
		Title:      "T",
		Notes:      "   ",
		Summary:    "\n\t",
		Transcript: "  ",
	}, 5000)

	for _, want := range []string{"No notes available", "No summary available", "No transcript available"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q for whitespace-only body", want)
		}
	}
}

func TestTruncationBoundary(t *testing.T) {
	const limit = 10
	exactly := strings.Repeat("a", limit)
	over := strings.Repeat("a", limit+1)

	if got := Format(Document{Title: "T", Transcript: exactly}, limit); strings.Contains(got, TruncationMarker) {
		t.Error("transcript of exactly the cap was truncated")
	}

	got := Format(Document{Title: "T", Transcript: over}, limit)
	if !strings.Contains(got, TruncationMarker) {
		t.Fatal("transcript over the cap missing truncation marker")
	}
	if !strings.Contains(got, exactly+TruncationMarker) {
		t.Error("kept portion is not exactly the first cap characters")
	}
	if strings.Contains(got, over) {
		t.Error("transcript kept more than the cap")
	}
}
