package services

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/engine"
)

// Saver receives a snapshot of the collection after every change.
// Implementations must not block the caller.
type Saver interface {
	Enqueue(habits []domain.Habit)
}

// HabitService owns the in-memory habit collection. Every mutation builds a
// new slice and never edits a stored habit in place, so snapshots handed to
// readers and to the Saver stay valid forever.
type HabitService struct {
	repo   domain.HabitRepository
	saver  Saver
	clock  func() time.Time
	logger *zap.Logger

	mu     sync.RWMutex
	habits []domain.Habit
}

func NewHabitService(repo domain.HabitRepository, saver Saver, clock func() time.Time, logger *zap.Logger) *HabitService {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitService{
		repo:   repo,
		saver:  saver,
		clock:  clock,
		logger: logger,
		habits: []domain.Habit{},
	}
}

type CreateHabitInput struct {
	Name      string
	Goal      string
	Frequency string
	Tags      []string
}

// Load hydrates the collection from the repository. It never fails: a
// repository error or corrupt data leaves the service with an empty collection.
func (s *HabitService) Load(ctx context.Context) int {
	stored, err := s.repo.Load(ctx)
	if err != nil {
		s.logger.Warn("failed to load habits, starting empty", zap.Error(err))
		stored = nil
	}

	now := s.clock()
	seen := make(map[string]bool, len(stored))
	habits := make([]domain.Habit, 0, len(stored))
	for _, h := range stored {
		if h.ID == "" || seen[h.ID] {
			s.logger.Warn("skipping habit with missing or duplicate id", zap.String("habit_id", h.ID))
			continue
		}
		seen[h.ID] = true
		habits = append(habits, engine.RecomputeStreak(h, now))
	}

	s.mu.Lock()
	s.habits = habits
	s.mu.Unlock()

	s.logger.Info("habits loaded", zap.Int("count", len(habits)))
	return len(habits)
}

// All returns the current collection in creation order.
func (s *HabitService) All() []domain.Habit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

func (s *HabitService) List(filter HabitFilter) []domain.Habit {
	return FilterHabits(s.All(), filter)
}

func (s *HabitService) Tags() []string {
	return AllTags(s.All())
}

func (s *HabitService) GetByID(id string) (domain.Habit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, h := range s.habits {
		if h.ID == id {
			return h.Clone(), nil
		}
	}
	return domain.Habit{}, domain.ErrHabitNotFound
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	habit, err := domain.NewHabit(input.Name, input.Goal, input.Frequency, input.Tags, len(s.habits), now)
	if err != nil {
		return nil, err
	}

	created := engine.RecomputeStreak(*habit, now)

	next := make([]domain.Habit, 0, len(s.habits)+1)
	next = append(next, s.habits...)
	next = append(next, created)
	s.commit(next)

	s.logger.Info("habit created", zap.String("habit_id", created.ID), zap.String("name", created.Name))

	out := created.Clone()
	return &out, nil
}

// Apply replaces the habit with id by fn's result. fn receives a private
// copy. An unknown id leaves the collection untouched.
func (s *HabitService) Apply(ctx context.Context, id string, fn func(domain.Habit) domain.Habit) (domain.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return domain.Habit{}, domain.ErrHabitNotFound
	}

	updated := fn(s.habits[idx].Clone())
	updated.ID = id

	next := make([]domain.Habit, len(s.habits))
	copy(next, s.habits)
	next[idx] = updated
	s.commit(next)

	return updated.Clone(), nil
}

// Delete removes the habit with id. It reports whether anything was removed;
// an unknown id is a no-op.
func (s *HabitService) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false
	}

	next := make([]domain.Habit, 0, len(s.habits)-1)
	next = append(next, s.habits[:idx]...)
	next = append(next, s.habits[idx+1:]...)
	s.commit(next)

	s.logger.Info("habit deleted", zap.String("habit_id", id))
	return true
}

// Refresh re-derives every streak against the current day. It only
// persists when a derived field actually moved.
func (s *HabitService) Refresh(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	changed := 0
	next := make([]domain.Habit, len(s.habits))
	for i, h := range s.habits {
		next[i] = engine.RecomputeStreak(h, now)
		if next[i].Streak != h.Streak || next[i].BestStreak != h.BestStreak {
			changed++
		}
	}

	if changed > 0 {
		s.commit(next)
		s.logger.Info("streaks refreshed", zap.Int("changed", changed))
	}
	return changed
}

func (s *HabitService) Now() time.Time {
	return s.clock()
}

func (s *HabitService) indexOf(id string) int {
	for i, h := range s.habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

// commit must be called with mu held.
func (s *HabitService) commit(next []domain.Habit) {
	s.habits = next
	if s.saver != nil {
		snapshot := make([]domain.Habit, len(next))
		copy(snapshot, next)
		s.saver.Enqueue(snapshot)
	}
}
