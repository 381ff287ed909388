package domain

import (
	"errors"
	"fmt"
	"time"
)

// DayKeyLayout is the serialized form of a local calendar day.
const DayKeyLayout = "2006-01-02"

var (
	ErrInvalidDayKey = errors.New("invalid day key (must be YYYY-MM-DD)")
)

// DayKey returns the calendar-day key of t in t's own location.
// Every component that reads or writes completions goes through this function.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}

// ParseDayKey parses a day key into local midnight of loc.
func ParseDayKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DayKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDayKey, key)
	}
	return t, nil
}

// StartOfDay truncates t to local midnight. Truncate is not used because
// it works on absolute time and would shift days outside UTC.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays moves by whole calendar days, so DST transitions never skip a day.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday of the week containing t, at midnight.
func StartOfWeek(t time.Time) time.Time {
	daysToSubtract := int(t.Weekday()) - 1
	if daysToSubtract < 0 {
		daysToSubtract = 6
	}
	return AddDays(t, -daysToSubtract)
}

// EndOfWeek returns the Sunday closing the week containing t.
func EndOfWeek(t time.Time) time.Time {
	return AddDays(StartOfWeek(t), 6)
}

// DaysBetween counts calendar days from a to b (b - a), ignoring clock time.
func DaysBetween(a, b time.Time) int {
	da := StartOfDay(a)
	db := StartOfDay(b)
	ua := time.Date(da.Year(), da.Month(), da.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(db.Year(), db.Month(), db.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
