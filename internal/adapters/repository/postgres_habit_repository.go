package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS habits (
    id          TEXT PRIMARY KEY,
    position    INTEGER NOT NULL,
    name        TEXT NOT NULL,
    goal        TEXT NOT NULL,
    frequency   TEXT NOT NULL,
    color       TEXT NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL,
    tags        TEXT[] NOT NULL DEFAULT '{}',
    streak      INTEGER NOT NULL DEFAULT 0,
    best_streak INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS habit_completions (
    habit_id TEXT NOT NULL REFERENCES habits(id) ON DELETE CASCADE,
    day_key  CHAR(10) NOT NULL,
    PRIMARY KEY (habit_id, day_key)
);`

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

type habitRow struct {
	ID         string         `db:"id"`
	Position   int            `db:"position"`
	Name       string         `db:"name"`
	Goal       string         `db:"goal"`
	Frequency  string         `db:"frequency"`
	Color      string         `db:"color"`
	CreatedAt  time.Time      `db:"created_at"`
	Tags       pq.StringArray `db:"tags"`
	Streak     int            `db:"streak"`
	BestStreak int            `db:"best_streak"`
}

type completionRow struct {
	HabitID string `db:"habit_id"`
	DayKey  string `db:"day_key"`
}

// EnsureSchema creates the tables when they are missing.
func (r *PostgresHabitRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) Load(ctx context.Context) ([]domain.Habit, error) {
	rows := []habitRow{}
	query := `
        SELECT id, position, name, goal, frequency, color, created_at, tags, streak, best_streak
        FROM habits
        ORDER BY position ASC, created_at ASC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	completions := []completionRow{}
	if err := r.db.SelectContext(ctx, &completions, `SELECT habit_id, day_key FROM habit_completions`); err != nil {
		return nil, fmt.Errorf("completions query error: %w", err)
	}

	byHabit := make(map[string]domain.Completions, len(rows))
	for _, c := range completions {
		if byHabit[c.HabitID] == nil {
			byHabit[c.HabitID] = domain.Completions{}
		}
		byHabit[c.HabitID][c.DayKey] = true
	}

	habits := make([]domain.Habit, 0, len(rows))
	for _, row := range rows {
		habits = append(habits, domain.Habit{
			ID:          row.ID,
			Name:        row.Name,
			Goal:        row.Goal,
			Frequency:   domain.Frequency(row.Frequency),
			Color:       row.Color,
			CreatedAt:   row.CreatedAt,
			Tags:        []string(row.Tags),
			Completions: byHabit[row.ID],
			Streak:      row.Streak,
			BestStreak:  row.BestStreak,
		})
	}

	return sanitize(habits), nil
}

// Save replaces the stored collection inside a single transaction.
func (r *PostgresHabitRepository) Save(ctx context.Context, habits []domain.Habit) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM habit_completions`); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM habits`); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}

	insertHabit := `
        INSERT INTO habits (
            id, position, name, goal, frequency, color, created_at, tags, streak, best_streak
        ) VALUES (
            :id, :position, :name, :goal, :frequency, :color, :created_at, :tags, :streak, :best_streak
        )`

	for i, h := range habits {
		row := habitRow{
			ID:         h.ID,
			Position:   i,
			Name:       h.Name,
			Goal:       h.Goal,
			Frequency:  string(h.Frequency),
			Color:      h.Color,
			CreatedAt:  h.CreatedAt,
			Tags:       pq.StringArray(domain.NormalizeTags(h.Tags)),
			Streak:     h.Streak,
			BestStreak: h.BestStreak,
		}
		if _, err := tx.NamedExecContext(ctx, insertHabit, row); err != nil {
			return fmt.Errorf("failed to insert habit %s: %w", h.ID, err)
		}

		for _, key := range h.Completions.Keys() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO habit_completions (habit_id, day_key) VALUES ($1, $2)`,
				h.ID, key,
			); err != nil {
				return fmt.Errorf("failed to insert completion %s/%s: %w", h.ID, key, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit habits: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
