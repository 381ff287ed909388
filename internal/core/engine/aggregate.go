package engine

import (
	"math"
	"time"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

// TrendWeeks is the number of weeks covered by WeeklyTrend.
const TrendWeeks = 6

// Snapshot computes the dashboard metrics for the whole collection.
//
// Weekly progress counts every completion between this week's Monday and
// today against len(habits) * elapsed days, without pro-rating habits
// created mid-week.
func Snapshot(habits []domain.Habit, now time.Time) domain.HabitCheckInStats {
	today := domain.StartOfDay(now)
	weekStart := domain.StartOfWeek(now)
	daysInRange := max(domain.DaysBetween(weekStart, today)+1, 1)

	stats := domain.HabitCheckInStats{
		ActiveHabits: len(habits),
	}

	weeklyCompleted := 0
	for _, h := range habits {
		if h.Completions.Has(today) {
			stats.CompletedToday++
		}
		stats.LongestStreak = max(stats.LongestStreak, h.BestStreak, h.Streak)
		weeklyCompleted += h.Completions.CountBetween(weekStart, today)
	}

	potential := len(habits) * daysInRange
	if potential > 0 {
		stats.WeeklyProgress = int(math.Round(float64(weeklyCompleted) / float64(potential) * 100))
	}

	return stats
}

// WeeklyTrend returns the completion percentage of the current week and the
// five before it, oldest first.
func WeeklyTrend(habits []domain.Habit, now time.Time) []domain.WeeklyTrendPoint {
	points := make([]domain.WeeklyTrendPoint, TrendWeeks)
	totalSlots := len(habits) * 7

	for offset := 0; offset < TrendWeeks; offset++ {
		weekStart := domain.StartOfWeek(domain.AddDays(now, -7*offset))
		weekEnd := domain.EndOfWeek(weekStart)

		completed := 0
		for _, h := range habits {
			completed += h.Completions.CountBetween(weekStart, weekEnd)
		}

		percentage := 0.0
		if totalSlots > 0 {
			percentage = float64(completed) / float64(totalSlots) * 100
		}

		points[TrendWeeks-1-offset] = domain.WeeklyTrendPoint{
			WeekStart:  weekStart,
			Percentage: percentage,
		}
	}

	return points
}
