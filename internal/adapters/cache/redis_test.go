package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-horizon/internal/config"
)

func configFor(t *testing.T, mr *miniredis.Miniredis) config.RedisConfig {
	t.Helper()
	return config.RedisConfig{
		Enabled: true,
		Host:    mr.Host(),
		Port:    mr.Port(),
	}
}

func TestNewRedisClient(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: Connects And Round Trips", func(t *testing.T) {
		mr := miniredis.RunT(t)

		rdb, err := NewRedisClient(ctx, configFor(t, mr))
		require.NoError(t, err)
		defer rdb.Close()

		pong, err := rdb.Ping(ctx).Result()
		assert.NoError(t, err)
		assert.Equal(t, "PONG", pong)

		require.NoError(t, rdb.Set(ctx, "greeting", "hello redis", time.Minute).Err())
		val, err := rdb.Get(ctx, "greeting").Result()
		assert.NoError(t, err)
		assert.Equal(t, "hello redis", val)
	})

	t.Run("Success: Expired Keys Return Nil", func(t *testing.T) {
		mr := miniredis.RunT(t)

		rdb, err := NewRedisClient(ctx, configFor(t, mr))
		require.NoError(t, err)
		defer rdb.Close()

		require.NoError(t, rdb.Set(ctx, "short", "lived", time.Second).Err())
		mr.FastForward(2 * time.Second)

		_, err = rdb.Get(ctx, "short").Result()
		assert.ErrorIs(t, err, redis.Nil)
	})

	t.Run("Success: Password Is Used", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.RequireAuth("secret")

		cfg := configFor(t, mr)
		cfg.Password = "secret"

		rdb, err := NewRedisClient(ctx, cfg)
		require.NoError(t, err)
		rdb.Close()
	})

	t.Run("Error: Unreachable Server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := configFor(t, mr)
		addr := mr.Addr()
		mr.Close()

		rdb, err := NewRedisClient(ctx, cfg)
		assert.Nil(t, rdb)
		assert.ErrorContains(t, err, fmt.Sprintf("failed to connect to redis at %s", addr))
	})
}
