package inbox

import (
	"strings"
	"time"
)

// TruncationMarker follows a transcript cut at the cap.
const TruncationMarker = "\n\n[... transcript truncated]"

// Document holds everything the formatter needs for one meeting. All
// fields may be zero; Format substitutes explicit placeholders so a reader
// never sees a silently missing section.
type Document struct {
	Title        string
	MeetingID    string
	Date         time.Time
	Dated        bool
	Participants []string
	Notes        string
	Summary      string
	Transcript   string
}

// Format renders the fixed inbox document shape. Pure and total: it never
// fails for any input. The transcript is hard-cut at transcriptCap
// characters, not at a sentence boundary.
func Format(doc Document, transcriptCap int) string {
	title := doc.Title
	if strings.TrimSpace(title) == "" {
		title = "Untitled Meeting"
	}

	dateStr := "Unknown"
	if doc.Dated {
		dateStr = doc.Date.Format("2006-01-02 15:04")
	}

	participants := "Unknown"
	if len(doc.Participants) > 0 {
		participants = strings.Join(doc.Participants, ", ")
	}

	lines := []string{
		"# Meeting: " + title,
		"",
		"**Date**: " + dateStr,
		"**Participants**: " + participants,
		"**Source**: granola",
		"**Meeting ID**: " + doc.MeetingID,
		"",
		"## Notes",
		orPlaceholder(doc.Notes, "No notes available"),
		"",
		"## Summary",
		orPlaceholder(doc.Summary, "No summary available"),
		"",
		"## Transcript Highlights",
	}

	if strings.TrimSpace(doc.Transcript) != "" {
		lines = append(lines, truncate(doc.Transcript, transcriptCap))
	} else {
		lines = append(lines, "No transcript available")
	}

	return strings.Join(lines, "\n") + "\n"
}

func orPlaceholder(body, placeholder string) string {
	if strings.TrimSpace(body) == "" {
		return placeholder
	}
	return body
}

// truncate cuts s after cap characters (runes, matching how a reader
// counts) and appends the marker. A transcript of exactly cap length
// passes through untouched.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + TruncationMarker
}
