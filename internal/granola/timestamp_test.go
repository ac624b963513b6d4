package granola

import (
	"testing"
	"time"
)

func TestUpdatedAtRepresentations(t *testing.T) {
	tests := []struct {
		name    string
		meeting Meeting
		want    time.Time
		ok      bool
	}{
		{
			name:    "epoch seconds",
			meeting: Meeting{"updated_at": float64(1700000000)},
			want:    time.Unix(1700000000, 0),
			ok:      true,
		},
		{
			name:    "epoch milliseconds",
			meeting: Meeting{"updated_at": float64(1700000000123)},
			want:    time.Unix(1700000000, 0),
			ok:      true,
		},
		{
			name:    "iso with Z suffix",
			meeting: Meeting{"updated_at": "2025-01-02T03:04:05Z"},
			want:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
			ok:      true,
		},
		{
			name:    "iso with fractional seconds",
			meeting: Meeting{"updated_at": "2025-01-02T03:04:05.123456+02:00"},
			want:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local),
			ok:      true,
		},
		{
			name:    "iso naive",
			meeting: Meeting{"updated_at": "2025-01-02T03:04:05"},
			want:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.Local),
			ok:      true,
		},
		{
			name:    "explicit offset",
			meeting: Meeting{"updated_at": "2025-01-02T03:04:05-05:00"},
			want:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.FixedZone("", -5*3600)),
			ok:      true,
		},
		{
			name:    "no candidate fields",
			meeting: Meeting{"title": "Standup"},
			ok:      false,
		},
		{
			name:    "zero epoch is unresolved",
			meeting: Meeting{"updated_at": float64(0)},
			ok:      false,
		},
		{
			name:    "empty string is unresolved",
			meeting: Meeting{"updated_at": "   "},
			ok:      false,
		},
		{
			name:    "garbage in every candidate",
			meeting: Meeting{"updated_at": "not-a-time", "created_at": "also-not"},
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.meeting.UpdatedAt()
			if ok != tt.ok {
				t.Fatalf("UpdatedAt() ok = %v, want %v", ok, tt.ok)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("UpdatedAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUpdatedAtFieldPreference(t *testing.T) {
	// updated_at wins over created_at when both parse.
	m := Meeting{
		"updated_at": float64(1700000500),
		"created_at": float64(1700000000),
	}
	got, ok := m.UpdatedAt()
	if !ok {
		t.Fatal("UpdatedAt() unresolved")
	}
	if !got.Equal(time.Unix(1700000500, 0)) {
		t.Errorf("UpdatedAt() = %v, want updated_at value", got)
	}
}

func TestUpdatedAtFallsThroughBadCandidate(t *testing.T) {
	// An unparseable first candidate must not fail the record.
	m := Meeting{
		"updated_at": "garbage",
		"createdAt":  float64(1700000000),
	}
	got, ok := m.UpdatedAt()
	if !ok {
		t.Fatal("UpdatedAt() unresolved, want fallthrough to createdAt")
	}
	if !got.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("UpdatedAt() = %v, want createdAt value", got)
	}
}

func TestDatePrefersCreation(t *testing.T) {
	// The meeting date files under the day it happened, not the day it
	// was last edited.
	m := Meeting{
		"created_at": "2025-01-02T09:00:00",
		"updated_at": "2025-03-07T10:00:00",
	}
	got, ok := m.Date()
	if !ok {
		t.Fatal("Date() unresolved")
	}
	if got.Format("2006-01-02") != "2025-01-02" {
		t.Errorf("Date() = %v, want created_at day", got)
	}
}
