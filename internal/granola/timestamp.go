package granola

import (
	"strings"
	"time"
)

// Candidate fields for the update instant, preferred first. Older caches
// only carry creation fields, and the camelCase variant predates the
// snake_case one.
var updateFields = []string{"updated_at", "created_at", "createdAt"}

// Candidate fields for the meeting date shown in filenames and metadata.
// Distinct from the update instant: a meeting edited today still files
// under the day it happened.
var dateFields = []string{"created_at", "createdAt", "updated_at"}

// Epoch values above this are milliseconds, not seconds.
const millisThreshold = 1e12

// UpdatedAt resolves the meeting's update instant. Returns false when no
// candidate field parses; such meetings are excluded from selection rather
// than defaulted to now, which would mis-order incremental runs.
func (m Meeting) UpdatedAt() (time.Time, bool) {
	return m.resolveInstant(updateFields)
}

// Date resolves the meeting's own date, or false for undated meetings.
func (m Meeting) Date() (time.Time, bool) {
	return m.resolveInstant(dateFields)
}

func (m Meeting) resolveInstant(fields []string) (time.Time, bool) {
	for _, field := range fields {
		val, ok := m[field]
		if !ok || val == nil {
			continue
		}
		if t, ok := parseInstant(val); ok {
			return t, true
		}
		// Unparseable candidate: fall through to the next field rather
		// than failing the whole meeting.
	}
	return time.Time{}, false
}

// parseInstant normalizes one raw timestamp value. Numeric values are
// seconds- or milliseconds-since-epoch; strings are ISO-8601-ish with an
// optional zone suffix and fractional seconds.
func parseInstant(val interface{}) (time.Time, bool) {
	switch v := val.(type) {
	case float64: // encoding/json decodes all numbers to float64
		if v <= 0 {
			return time.Time{}, false
		}
		if v > millisThreshold {
			v = v / 1000
		}
		return time.Unix(int64(v), 0), true
	case string:
		return parseInstantString(v)
	}
	return time.Time{}, false
}

func parseInstantString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	// Normalize a trailing Z to an explicit offset, then strip fractional
	// seconds (and with them any offset that follows the fraction). What
	// remains is either offset-qualified or naive local time.
	s = strings.Replace(s, "Z", "+00:00", 1)
	if strings.Contains(s, ".") {
		s = strings.SplitN(s, "+", 2)[0]
		s = strings.SplitN(s, ".", 2)[0]
	}

	if t, err := time.Parse("2006-01-02T15:04:05-07:00", s); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", s, time.Local); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, true
	}
	return time.Time{}, false
}
