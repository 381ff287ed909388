package http_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
)

func TestGetStats(t *testing.T) {
	t.Run("Success: Empty Collection", func(t *testing.T) {
		app := setupApp(t, nil)

		w := app.do(http.MethodGet, "/api/v1/stats", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"completed_today":0,"weekly_progress":0,"longest_streak":0,"active_habits":0}`, w.Body.String())
	})

	t.Run("Success: Counts Today", func(t *testing.T) {
		app := setupApp(t, nil)
		done := app.create(t, "Read")
		app.create(t, "Run")
		app.create(t, "Stretch")

		app.do(http.MethodPost, "/api/v1/habits/"+done.ID+"/toggle", "")

		w := app.do(http.MethodGet, "/api/v1/stats", "")
		require.Equal(t, http.StatusOK, w.Code)

		stats := decode[domain.HabitCheckInStats](t, w)
		assert.Equal(t, 1, stats.CompletedToday)
		assert.Equal(t, 3, stats.ActiveHabits)
		assert.Equal(t, 1, stats.LongestStreak)
	})
}

func TestGetWeeklyTrend(t *testing.T) {
	app := setupApp(t, nil)
	h := app.create(t, "Read")
	app.do(http.MethodPost, "/api/v1/habits/"+h.ID+"/toggle", "")

	w := app.do(http.MethodGet, "/api/v1/stats/trend", "")
	require.Equal(t, http.StatusOK, w.Code)

	type point struct {
		WeekStart  string `json:"week_start"`
		Percentage int    `json:"percentage"`
	}
	points := decode[[]point](t, w)

	require.Len(t, points, 6)
	assert.Equal(t, "2024-01-29", points[0].WeekStart)
	assert.Equal(t, "2024-03-04", points[5].WeekStart)
	for _, p := range points[:5] {
		assert.Zero(t, p.Percentage)
	}
	assert.Equal(t, 14, points[5].Percentage, "One of seven daily slots in the current week")
}
