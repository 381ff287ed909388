package domain

import (
	"math"
	"time"
)

// HabitCheckInStats is the point-in-time snapshot shown on the dashboard.
type HabitCheckInStats struct {
	CompletedToday int `json:"completed_today"`
	WeeklyProgress int `json:"weekly_progress"`
	LongestStreak  int `json:"longest_streak"`
	ActiveHabits   int `json:"active_habits"`
}

type WeeklyTrendPoint struct {
	WeekStart  time.Time `json:"week_start"`
	Percentage float64   `json:"percentage"`
}

// Rounded is the display value: clamped to [0, 100] and rounded.
func (p WeeklyTrendPoint) Rounded() int {
	return int(math.Round(math.Min(100, math.Max(0, p.Percentage))))
}

// DayStatus is one cell of the recent-days strip of a habit.
type DayStatus struct {
	Date      string `json:"date"`
	Weekday   string `json:"weekday"`
	Completed bool   `json:"completed"`
	Today     bool   `json:"today"`
}
