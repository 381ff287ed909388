package domain

import (
	"sort"
	"time"
)

// Completions maps a calendar-day key to true for every completed day.
// A missing key means "not completed"; false is never stored.
type Completions map[string]bool

func (c Completions) Has(t time.Time) bool {
	return c[DayKey(t)]
}

func (c Completions) HasKey(key string) bool {
	return c[key]
}

// Mark records t's day as completed. Calling it on a nil map panics,
// so callers work on a Clone.
func (c Completions) Mark(t time.Time) {
	c[DayKey(t)] = true
}

// Unmark removes t's day. Removal is deletion, never a false marker.
func (c Completions) Unmark(t time.Time) {
	delete(c, DayKey(t))
}

func (c Completions) Clone() Completions {
	out := make(Completions, len(c))
	for k, v := range c {
		if v {
			out[k] = true
		}
	}
	return out
}

// Keys returns the completed day keys in ascending order.
func (c Completions) Keys() []string {
	keys := make([]string, 0, len(c))
	for k, v := range c {
		if v {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// CountBetween counts completed days in [from, to], both inclusive, compared
// as local calendar days of from's location. Unparsable keys are ignored.
func (c Completions) CountBetween(from, to time.Time) int {
	lo := DayKey(StartOfDay(from))
	hi := DayKey(StartOfDay(to.In(from.Location())))
	if hi < lo {
		return 0
	}

	count := 0
	for key, done := range c {
		if !done {
			continue
		}
		if _, err := ParseDayKey(key, from.Location()); err != nil {
			continue
		}
		if key >= lo && key <= hi {
			count++
		}
	}
	return count
}
