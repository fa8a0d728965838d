// Package timeslot holds the calendar arithmetic shared by availability and
// bookings: wall-clock parsing, half-open interval overlap and day iteration.
package timeslot

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

var (
	ErrInvalidClock = errors.New("time must be in HH:MM format")
	ErrInvalidDate  = errors.New("date must be in YYYY-MM-DD format")
	ErrEmptyRange   = errors.New("end time must be after start time")
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Interval is a half-open [Start, End) range in minutes since midnight.
type Interval struct {
	Start int
	End   int
}

func ParseClock(s string) (int, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil || len(s) != len(ClockLayout) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func NewInterval(start, end string) (Interval, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}
	if e <= s {
		return Interval{}, ErrEmptyRange
	}
	return Interval{Start: s, End: e}, nil
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// IsPastDate reports whether date is strictly before the calendar day of now in loc.
func IsPastDate(date string, now time.Time, loc *time.Location) (bool, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := ParseDate(date, loc)
	if err != nil {
		return false, err
	}
	today := now.In(loc).Format(DateLayout)
	return d.Format(DateLayout) < today, nil
}

func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdays[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// Days returns every calendar day in [from, to], inclusive.
func Days(from, to time.Time) []time.Time {
	var days []time.Time
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DaySpan is the number of calendar days in [from, to], inclusive.
func DaySpan(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	// +12h absorbs DST shifts in zones where a day is 23 or 25 hours.
	return int((to.Sub(from).Hours()+12)/24) + 1
}
