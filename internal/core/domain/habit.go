package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

var (
	ErrHabitNameEmpty   = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong = errors.New("habit name is too long (max 100 chars)")
	ErrHabitGoalTooLong = errors.New("habit goal is too long (max 200 chars)")
	ErrInvalidFrequency = errors.New("invalid frequency (must be daily, weekly, or custom)")
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"

	DefaultGoal = "Show up"
	MaxNameLen  = 100
	MaxGoalLen  = 200
)

type Habit struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Goal        string      `json:"goal"`
	Frequency   Frequency   `json:"frequency"`
	Color       string      `json:"color"`
	CreatedAt   time.Time   `json:"created_at"`
	Tags        []string    `json:"tags"`
	Completions Completions `json:"completions"`
	Streak      int         `json:"streak"`
	BestStreak  int         `json:"best_streak"`
}

// ParseFrequency maps user input to a Frequency. Blank input defaults to daily.
func ParseFrequency(raw string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FrequencyDaily, nil
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom:
		return f, nil
	default:
		return "", ErrInvalidFrequency
	}
}

// NormalizeTags trims labels, drops empty ones and suppresses duplicates,
// keeping the first occurrence.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return []string{}
	}

	seen := make(map[string]bool)
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// SplitTags parses a comma separated tag list as typed in a form.
func SplitTags(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}

// NewHabit validates the input and builds a habit with an empty history.
// index is the creation order and selects the palette color.
func NewHabit(name, goal, frequency string, tags []string, index int, now time.Time) (*Habit, error) {
	cleanName := strings.TrimSpace(name)
	if cleanName == "" {
		return nil, ErrHabitNameEmpty
	}
	if utf8.RuneCountInString(cleanName) > MaxNameLen {
		return nil, ErrHabitNameTooLong
	}

	cleanGoal := strings.TrimSpace(goal)
	if cleanGoal == "" {
		cleanGoal = DefaultGoal
	}
	if utf8.RuneCountInString(cleanGoal) > MaxGoalLen {
		return nil, ErrHabitGoalTooLong
	}

	freq, err := ParseFrequency(frequency)
	if err != nil {
		return nil, err
	}

	return &Habit{
		ID:          uuid.New().String(),
		Name:        cleanName,
		Goal:        cleanGoal,
		Frequency:   freq,
		Color:       PaletteColor(index),
		CreatedAt:   now,
		Tags:        NormalizeTags(tags),
		Completions: Completions{},
	}, nil
}

// Clone returns a deep copy so that callers never share tag or completion storage.
func (h Habit) Clone() Habit {
	out := h
	out.Tags = append([]string{}, h.Tags...)
	out.Completions = h.Completions.Clone()
	return out
}

func (h Habit) HasTag(tag string) bool {
	for _, t := range h.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Matches reports whether the habit's name or goal contains query under
// Unicode case folding. An empty query matches everything.
func (h Habit) Matches(query string) bool {
	fold := cases.Fold()
	q := fold.String(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(fold.String(h.Name), q) ||
		strings.Contains(fold.String(h.Goal), q)
}
