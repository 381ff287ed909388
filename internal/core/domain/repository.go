package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrCorruptData   = errors.New("persisted habit data is corrupt")
)

// HabitRepository persists the whole habit collection as one unit.
type HabitRepository interface {
	// Load returns the previously saved collection in creation order.
	// A store that was never written returns an empty slice and no error.
	Load(ctx context.Context) ([]Habit, error)

	// Save replaces the stored collection with habits.
	Save(ctx context.Context, habits []Habit) error
}
