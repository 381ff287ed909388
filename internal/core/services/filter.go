package services

import (
	"sort"
	"strings"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

// HabitFilter narrows the habit list. Zero value matches everything.
type HabitFilter struct {
	Query string
	Tag   string
}

func FilterHabits(habits []domain.Habit, filter HabitFilter) []domain.Habit {
	tag := strings.TrimSpace(filter.Tag)

	out := make([]domain.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Matches(filter.Query) {
			continue
		}
		if tag != "" && !h.HasTag(tag) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// AllTags returns every tag used by the collection, sorted and unique.
func AllTags(habits []domain.Habit) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, h := range habits {
		for _, t := range h.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
