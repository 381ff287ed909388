// Package engine holds the pure streak, toggle and aggregation functions.
// Nothing here mutates its inputs or reads the clock: "now" is always passed in.
package engine

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

// RecomputeStreak returns h with Streak and BestStreak re-derived from
// its completions as of now. BestStreak never decreases.
func RecomputeStreak(h domain.Habit, now time.Time) domain.Habit {
	out := h.Clone()

	current := CurrentStreak(out.Completions, out.CreatedAt, now)
	best := LongestRun(out.Completions)

	out.Streak = current
	out.BestStreak = max(h.BestStreak, best, current, 0)
	return out
}

// CurrentStreak counts consecutive completed days ending today. A missing
// today yields 0, there is no grace day. The walk stops before createdAt's
// day; a zero createdAt leaves it unbounded.
func CurrentStreak(c domain.Completions, createdAt, now time.Time) int {
	day := domain.StartOfDay(now)

	var floor time.Time
	if !createdAt.IsZero() {
		floor = domain.StartOfDay(createdAt.In(now.Location()))
	}

	streak := 0
	for c.Has(day) {
		if !floor.IsZero() && day.Before(floor) {
			break
		}
		streak++
		day = domain.AddDays(day, -1)
	}
	return streak
}

// LongestRun is the length of the longest run of consecutive completed
// calendar days anywhere in the history.
func LongestRun(c domain.Completions) int {
	days := make([]time.Time, 0, len(c))
	for key, done := range c {
		if !done {
			continue
		}
		// UTC keeps every day 24h long, so consecutive keys are exactly one day apart.
		t, err := domain.ParseDayKey(key, time.UTC)
		if err != nil {
			continue
		}
		days = append(days, t)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Before(days[j])
	})

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
