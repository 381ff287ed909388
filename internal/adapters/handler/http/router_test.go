package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	adapterHTTP "github.com/comitanigiacomo/habit-horizon/internal/adapters/handler/http"
)

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

func TestHealth(t *testing.T) {
	t.Run("Success: File Storage Without Redis", func(t *testing.T) {
		app := setupApp(t, nil)

		w := app.do(http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		body := decode[map[string]string](t, w)
		assert.Equal(t, "ok", body["status"])
		assert.Equal(t, "ok", body["storage"])
		assert.Equal(t, "disabled", body["redis"])
		assert.NotEmpty(t, body["uptime"])
	})

	t.Run("Success: Redis Connected", func(t *testing.T) {
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		defer rdb.Close()

		app := setupApp(t, func(d *adapterHTTP.RouterDependencies) { d.Redis = rdb })

		w := app.do(http.MethodGet, "/health", "")

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "connected", decode[map[string]string](t, w)["redis"])
	})

	t.Run("Fail: 503 Storage Unreachable", func(t *testing.T) {
		app := setupApp(t, func(d *adapterHTTP.RouterDependencies) {
			d.Storage = stubPinger{err: errors.New("connection refused")}
		})

		w := app.do(http.MethodGet, "/health", "")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unreachable", decode[map[string]string](t, w)["storage"])
	})
}

func TestRouter_TokenAuth(t *testing.T) {
	app := setupApp(t, func(d *adapterHTTP.RouterDependencies) { d.APIToken = "s3cret" })

	t.Run("Fail: 401 Without Token", func(t *testing.T) {
		w := app.do(http.MethodGet, "/api/v1/habits", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Success: Health Is Public", func(t *testing.T) {
		w := app.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Success: 200 With Token", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/api/v1/habits", nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		w := httptest.NewRecorder()
		app.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_CORSPreflight(t *testing.T) {
	app := setupApp(t, func(d *adapterHTTP.RouterDependencies) { d.APIToken = "s3cret" })

	req, _ := http.NewRequest(http.MethodOptions, "/api/v1/habits", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	app.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code, "Preflight must not require the token")
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRouter_RateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	app := setupApp(t, func(d *adapterHTTP.RouterDependencies) {
		d.Redis = rdb
		d.RateLimit = 2
		d.RateLimitWindow = time.Minute
	})

	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/tags", "").Code)
	assert.Equal(t, http.StatusOK, app.do(http.MethodGet, "/api/v1/tags", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, app.do(http.MethodGet, "/api/v1/tags", "").Code)
}
