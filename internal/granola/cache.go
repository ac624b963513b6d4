// Package granola reads the Granola desktop app's local meeting cache.
// The cache is owned by Granola; everything here is read-only and tolerant
// of the loose, versioned shapes the app writes. The rest of the collector
// only sees Meeting values and the accessors in this package.
package granola

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Meeting is one document from the cache, kept as the raw decoded object.
// Field names and value types vary across Granola versions, so access goes
// through the typed accessors rather than a struct.
type Meeting map[string]interface{}

// CacheState is a loaded snapshot of Granola's cache-v3.json.
type CacheState struct {
	documents   map[string]Meeting
	transcripts map[string][]transcriptEntry
}

type transcriptEntry struct {
	Text string `json:"text"`
}

// LoadCache reads and decodes the cache file at path. A missing file
// surfaces as an error satisfying errors.Is(err, os.ErrNotExist); any
// other failure means the cache is present but unreadable.
func LoadCache(path string) (*CacheState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read granola cache: %w", err)
	}

	// cache-v3.json is double-encoded: the top-level object carries a
	// "cache" key whose value is itself a JSON-encoded string.
	var outer struct {
		Cache json.RawMessage `json:"cache"`
	}
	if err := json.Unmarshal(data, &outer); err != nil {
		return nil, fmt.Errorf("failed to decode granola cache: %w", err)
	}

	inner := outer.Cache
	if len(inner) == 0 {
		return nil, fmt.Errorf("granola cache has no cache key")
	}
	if inner[0] == '"' {
		var encoded string
		if err := json.Unmarshal(inner, &encoded); err != nil {
			return nil, fmt.Errorf("failed to decode granola cache wrapper: %w", err)
		}
		inner = json.RawMessage(encoded)
	}

	var state struct {
		State struct {
			Documents   map[string]Meeting           `json:"documents"`
			Transcripts map[string][]transcriptEntry `json:"transcripts"`
		} `json:"state"`
	}
	if err := json.Unmarshal(inner, &state); err != nil {
		return nil, fmt.Errorf("failed to decode granola cache state: %w", err)
	}

	return &CacheState{
		documents:   state.State.Documents,
		transcripts: state.State.Transcripts,
	}, nil
}

// Meetings returns every document in the cache, in enumeration order.
func (c *CacheState) Meetings() []Meeting {
	meetings := make([]Meeting, 0, len(c.documents))
	for id, m := range c.documents {
		if m == nil {
			continue
		}
		if _, ok := m["id"]; !ok {
			// Older caches key documents by id without repeating it inside.
			m["id"] = id
		}
		meetings = append(meetings, m)
	}
	return meetings
}

// Transcript returns the joined transcript text for a meeting, or "".
func (c *CacheState) Transcript(m Meeting) string {
	entries := c.transcripts[m.ID()]
	if len(entries) == 0 {
		return ""
	}
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Text != "" {
			parts = append(parts, e.Text)
		}
	}
	return strings.Join(parts, "\n")
}

// HasContent reports whether the meeting has any notes, summary, or
// transcript text. Content-free documents (calendar placeholders) are
// skipped by the selector.
func (c *CacheState) HasContent(m Meeting) bool {
	if strings.TrimSpace(m.Notes()) != "" {
		return true
	}
	if strings.TrimSpace(m.Summary()) != "" {
		return true
	}
	return strings.TrimSpace(c.Transcript(m)) != ""
}
