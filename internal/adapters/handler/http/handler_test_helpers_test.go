package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/habit-horizon/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habit-horizon/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
)

// Wednesday.
var testNow = time.Date(2024, 3, 6, 10, 0, 0, 0, time.UTC)

type nopSaver struct{}

func (nopSaver) Enqueue([]domain.Habit) {}

type testApp struct {
	router *gin.Engine
	habits *services.HabitService
}

func setupApp(t *testing.T, mutate func(*adapterHTTP.RouterDependencies)) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewInMemoryHabitRepository()
	habitSvc := services.NewHabitService(repo, nopSaver{}, func() time.Time { return testNow }, nil)
	habitSvc.Load(context.Background())

	checkins := services.NewCheckInService(habitSvc, nil)
	stats := services.NewStatsService(habitSvc)

	deps := adapterHTTP.RouterDependencies{
		HabitHandler: adapterHTTP.NewHabitHandler(habitSvc, checkins, nil),
		StatsHandler: adapterHTTP.NewStatsHandler(stats),
		StartTime:    testNow,
	}
	if mutate != nil {
		mutate(&deps)
	}

	return &testApp{
		router: adapterHTTP.NewRouter(deps),
		habits: habitSvc,
	}
}

func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) create(t *testing.T, name string, tags ...string) domain.Habit {
	t.Helper()
	h, err := a.habits.Create(context.Background(), services.CreateHabitInput{Name: name, Tags: tags})
	require.NoError(t, err)
	return *h
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
