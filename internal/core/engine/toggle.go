package engine

import (
	"time"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

// ToggleCompletion flips date's completion marker and returns a new habit
// with streaks recomputed against the new history. Any date is accepted.
func ToggleCompletion(h domain.Habit, date, now time.Time) domain.Habit {
	out := h.Clone()

	// The marker is keyed in now's location so that toggles and streak
	// walks agree on which calendar day date belongs to.
	day := date.In(now.Location())
	if out.Completions.Has(day) {
		out.Completions.Unmark(day)
	} else {
		out.Completions.Mark(day)
	}

	return RecomputeStreak(out, now)
}

// RecentDays returns the trailing window of n days ending today, oldest first.
func RecentDays(h domain.Habit, n int, now time.Time) []domain.DayStatus {
	if n < 1 {
		return []domain.DayStatus{}
	}

	today := domain.StartOfDay(now)
	out := make([]domain.DayStatus, 0, n)
	for i := n - 1; i >= 0; i-- {
		day := domain.AddDays(today, -i)
		out = append(out, domain.DayStatus{
			Date:      domain.DayKey(day),
			Weekday:   day.Format("Mon"),
			Completed: h.Completions.Has(day),
			Today:     i == 0,
		})
	}
	return out
}
