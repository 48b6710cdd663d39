package util

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewID_IsVersion7(t *testing.T) {
	id := NewID()
	if !IsValidID(id) {
		t.Fatalf("NewID() = %q is not a UUID", id)
	}

	parsed := uuid.MustParse(id)
	if parsed.Version() != 7 {
		t.Errorf("expected version 7, got %d", parsed.Version())
	}
}

func TestNewID_Ordered(t *testing.T) {
	first := NewID()
	time.Sleep(2 * time.Millisecond)
	second := NewID()

	if first >= second {
		t.Errorf("expected %s < %s", first, second)
	}
}

func TestParseID(t *testing.T) {
	if _, err := ParseID("not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}

	id := NewID()
	got, err := ParseID(id)
	if err != nil || got != id {
		t.Errorf("ParseID(%q) = %q, %v", id, got, err)
	}
}

func TestFixedClock(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewFixedClock(start)

	if !c.Now().Equal(start) {
		t.Fatalf("expected %v, got %v", start, c.Now())
	}

	c.Advance(36 * time.Hour)
	if want := start.Add(36 * time.Hour); !c.Now().Equal(want) {
		t.Errorf("after Advance expected %v, got %v", want, c.Now())
	}

	later := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(later)
	if !c.Now().Equal(later) {
		t.Errorf("after Set expected %v, got %v", later, c.Now())
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, 7, 4, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		t      time.Time
		layout string
		want   string
	}{
		{"Default layout", d, "", "Jul 04, 2026"},
		{"Custom layout", d, "2006-01-02", "2026-07-04"},
		{"Zero time", time.Time{}, "", "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t, tt.layout); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeTimeString(t *testing.T) {
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		t    time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-5 * time.Hour), "5 hours ago"},
		{now.Add(-24 * time.Hour), "yesterday"},
		{now.Add(-15 * 24 * time.Hour), "2 weeks ago"},
		{now.Add(10 * time.Minute), "in 10 minutes"},
		{now.Add(30 * time.Hour), "tomorrow"},
	}

	for _, tt := range tests {
		if got := RelativeTimeString(tt.t, now); got != tt.want {
			t.Errorf("RelativeTimeString(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}

func TestStartOfDay(t *testing.T) {
	got := StartOfDay(time.Date(2026, 2, 3, 17, 45, 12, 99, time.UTC))
	want := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfDay() = %v, want %v", got, want)
	}
}
