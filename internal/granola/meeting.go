package granola

import "strings"

// ID returns the meeting's identifier, unique within the cache.
func (m Meeting) ID() string {
	return m.stringField("id")
}

// Title returns the meeting title, possibly empty.
func (m Meeting) Title() string {
	return m.stringField("title")
}

// Notes returns the user's meeting notes. Granola has stored these under a
// few different keys over time; the first non-empty one wins.
func (m Meeting) Notes() string {
	for _, field := range []string{"notes_markdown", "notes_plain", "notes"} {
		if s := m.stringField(field); s != "" {
			return s
		}
	}
	return ""
}

// Summary returns the generated meeting summary, possibly empty.
func (m Meeting) Summary() string {
	return m.stringField("summary")
}

// Participants returns participant names in cache order. Entries are either
// objects with name/email fields or plain strings depending on cache age.
func (m Meeting) Participants() []string {
	raw, ok := m["people"].([]interface{})
	if !ok {
		return nil
	}
	var names []string
	for _, entry := range raw {
		switch p := entry.(type) {
		case string:
			if p = strings.TrimSpace(p); p != "" {
				names = append(names, p)
			}
		case map[string]interface{}:
			for _, field := range []string{"name", "display_name", "email"} {
				if s, ok := p[field].(string); ok && strings.TrimSpace(s) != "" {
					names = append(names, strings.TrimSpace(s))
					break
				}
			}
		}
	}
	return names
}

func (m Meeting) stringField(field string) string {
	s, _ := m[field].(string)
	return s
}
