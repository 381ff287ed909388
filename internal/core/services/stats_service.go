package services

import (
	"time"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/engine"
)

type HabitLister interface {
	All() []domain.Habit
	Now() time.Time
}

// StatsService recomputes derived metrics from scratch on every call;
// nothing is cached between mutations.
type StatsService struct {
	habits HabitLister
}

func NewStatsService(habits HabitLister) *StatsService {
	return &StatsService{
		habits: habits,
	}
}

func (s *StatsService) GetSnapshot() domain.HabitCheckInStats {
	return engine.Snapshot(s.habits.All(), s.habits.Now())
}

func (s *StatsService) GetWeeklyTrend() []domain.WeeklyTrendPoint {
	return engine.WeeklyTrend(s.habits.All(), s.habits.Now())
}
