package repository

import (
	"context"
	"sync"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

var _ domain.HabitRepository = (*InMemoryHabitRepository)(nil)

type InMemoryHabitRepository struct {
	habits []domain.Habit

	mu sync.RWMutex
}

func NewInMemoryHabitRepository(seed ...domain.Habit) *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		habits: cloneAll(seed),
	}
}

func (r *InMemoryHabitRepository) Load(ctx context.Context) ([]domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneAll(r.habits), nil
}

func (r *InMemoryHabitRepository) Save(ctx context.Context, habits []domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.habits = cloneAll(habits)
	return nil
}

func cloneAll(habits []domain.Habit) []domain.Habit {
	out := make([]domain.Habit, 0, len(habits))
	for _, h := range habits {
		out = append(out, h.Clone())
	}
	return out
}

// sanitize repairs fields a hand-edited or older document may lack.
func sanitize(habits []domain.Habit) []domain.Habit {
	for i := range habits {
		if habits[i].Completions == nil {
			habits[i].Completions = domain.Completions{}
		} else {
			habits[i].Completions = habits[i].Completions.Clone()
		}
		habits[i].Tags = domain.NormalizeTags(habits[i].Tags)
		if habits[i].Frequency == "" {
			habits[i].Frequency = domain.FrequencyDaily
		}
	}
	return habits
}
