package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/engine"
)

// DefaultRecentDays is the size of the check-in strip shown per habit.
const DefaultRecentDays = 7

const maxRecentDays = 366

type HabitStore interface {
	GetByID(id string) (domain.Habit, error)
	Apply(ctx context.Context, id string, fn func(domain.Habit) domain.Habit) (domain.Habit, error)
	Now() time.Time
}

type CheckInService struct {
	store  HabitStore
	logger *zap.Logger
}

func NewCheckInService(store HabitStore, logger *zap.Logger) *CheckInService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckInService{
		store:  store,
		logger: logger,
	}
}

type ToggleInput struct {
	HabitID string
	// Day is a YYYY-MM-DD key; blank means today.
	Day string
}

// Toggle flips the completion marker of one day. An unknown habit returns
// domain.ErrHabitNotFound and changes nothing.
func (s *CheckInService) Toggle(ctx context.Context, input ToggleInput) (*domain.Habit, error) {
	now := s.store.Now()

	date := now
	if input.Day != "" {
		parsed, err := domain.ParseDayKey(input.Day, now.Location())
		if err != nil {
			return nil, err
		}
		date = parsed
	}

	updated, err := s.store.Apply(ctx, input.HabitID, func(h domain.Habit) domain.Habit {
		return engine.ToggleCompletion(h, date, now)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("completion toggled",
		zap.String("habit_id", input.HabitID),
		zap.String("day", domain.DayKey(date)),
		zap.Bool("completed", updated.Completions.Has(date)),
		zap.Int("streak", updated.Streak),
	)

	return &updated, nil
}

// RecentDays returns the trailing window of days for one habit.
func (s *CheckInService) RecentDays(habitID string, days int) ([]domain.DayStatus, error) {
	habit, err := s.store.GetByID(habitID)
	if err != nil {
		return nil, err
	}

	if days < 1 {
		days = DefaultRecentDays
	}
	if days > maxRecentDays {
		days = maxRecentDays
	}

	return engine.RecentDays(habit, days, s.store.Now()), nil
}
