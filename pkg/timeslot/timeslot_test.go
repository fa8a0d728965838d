package timeslot

import (
	"errors"
	"testing"
	"time"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"9:30", 0, true},
		{"10:60", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewInterval_RejectsEmptyRange(t *testing.T) {
	if _, err := NewInterval("10:00", "10:00"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("expected ErrEmptyRange for equal times, got %v", err)
	}
	if _, err := NewInterval("11:00", "10:00"); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("expected ErrEmptyRange for reversed times, got %v", err)
	}
}

func TestInterval_Overlaps(t *testing.T) {
	mk := func(s, e string) Interval {
		i, err := NewInterval(s, e)
		if err != nil {
			t.Fatalf("bad interval %s-%s: %v", s, e, err)
		}
		return i
	}

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"partial overlap", mk("10:00", "11:00"), mk("10:30", "11:30"), true},
		{"contained", mk("09:00", "12:00"), mk("10:00", "11:00"), true},
		{"identical", mk("10:00", "11:00"), mk("10:00", "11:00"), true},
		{"touching end", mk("09:00", "10:00"), mk("10:00", "11:00"), false},
		{"touching start", mk("11:00", "12:00"), mk("10:00", "11:00"), false},
		{"disjoint", mk("09:00", "09:30"), mk("10:00", "11:00"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps is not symmetric: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC)

	past, err := IsPastDate("2025-06-14", now, time.UTC)
	if err != nil || !past {
		t.Errorf("expected 2025-06-14 to be past, got %v (err=%v)", past, err)
	}

	past, err = IsPastDate("2025-06-15", now, time.UTC)
	if err != nil || past {
		t.Errorf("today must not be past, got %v (err=%v)", past, err)
	}

	// 23:30 UTC is already the 16th in Tokyo.
	tokyo, _ := time.LoadLocation("Asia/Tokyo")
	past, err = IsPastDate("2025-06-15", now, tokyo)
	if err != nil || !past {
		t.Errorf("expected 2025-06-15 to be past in Tokyo, got %v (err=%v)", past, err)
	}

	if _, err := IsPastDate("15/06/2025", now, time.UTC); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestParseWeekday(t *testing.T) {
	if wd, ok := ParseWeekday(" Monday "); !ok || wd != time.Monday {
		t.Errorf("expected Monday, got %v (ok=%v)", wd, ok)
	}
	if _, ok := ParseWeekday("funday"); ok {
		t.Error("expected unknown weekday to be rejected")
	}
}

func TestDays(t *testing.T) {
	from := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC)

	days := Days(from, to)
	if len(days) != 14 {
		t.Fatalf("expected 14 days, got %d", len(days))
	}
	if DaySpan(from, to) != 14 {
		t.Errorf("expected span 14, got %d", DaySpan(from, to))
	}
	if DaySpan(to, from) != 0 {
		t.Errorf("expected reversed span 0, got %d", DaySpan(to, from))
	}
}
