package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

var _ domain.HabitRepository = (*FileHabitRepository)(nil)

// FileHabitRepository keeps the collection as one JSON document on disk.
type FileHabitRepository struct {
	path string
}

func NewFileHabitRepository(path string) *FileHabitRepository {
	return &FileHabitRepository{path: path}
}

func (r *FileHabitRepository) Path() string {
	return r.path
}

func (r *FileHabitRepository) Load(ctx context.Context) ([]domain.Habit, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.Habit{}, nil
		}
		return nil, fmt.Errorf("failed to read habits file: %w", err)
	}

	if len(data) == 0 {
		return []domain.Habit{}, nil
	}

	var habits []domain.Habit
	if err := json.Unmarshal(data, &habits); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCorruptData, err)
	}

	return sanitize(habits), nil
}

// Save writes to a temporary file and renames it over the target, so a
// crash mid-write never leaves a truncated document behind.
func (r *FileHabitRepository) Save(ctx context.Context, habits []domain.Habit) error {
	if habits == nil {
		habits = []domain.Habit{}
	}

	data, err := json.MarshalIndent(habits, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal habits: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".habits-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write habits: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace habits file: %w", err)
	}

	return nil
}
