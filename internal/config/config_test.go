package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "STORAGE", "HABITS_FILE", "REDIS_ENABLED", "RATE_LIMIT", "SAVE_QUEUE_SIZE", "ROLLOVER_INTERVAL", "CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, StorageFile, cfg.Storage.Backend)
	assert.NotEmpty(t, cfg.Storage.HabitFile)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 100, cfg.Server.RateLimit)
	assert.Equal(t, 16, cfg.Workers.SaveQueueSize)
	assert.Equal(t, time.Minute, cfg.Workers.RolloverInterval)
	assert.Equal(t, 30*time.Minute, cfg.Redis.CacheTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE", "Memory")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("ROLLOVER_INTERVAL", "15s")
	t.Setenv("RATE_LIMIT", "not-a-number")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, StorageMemory, cfg.Storage.Backend)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
	assert.Equal(t, 15*time.Second, cfg.Workers.RolloverInterval)
	assert.Equal(t, 100, cfg.Server.RateLimit, "Unparsable values fall back to the default")
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("PORT", "")
	os.Unsetenv("PORT")
	os.Unsetenv("API_TOKEN")
	t.Cleanup(func() { os.Unsetenv("API_TOKEN") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nAPI_TOKEN=s3cret\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Server.APIToken)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{Backend: StorageFile, HabitFile: "habits.json"},
			Workers: WorkerConfig{SaveQueueSize: 1, RolloverInterval: time.Second},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"Success: File Storage", func(c *Config) {}, ""},
		{"Success: Memory Storage", func(c *Config) { c.Storage.Backend = StorageMemory }, ""},
		{"Error: Unknown Storage", func(c *Config) { c.Storage.Backend = "sqlite" }, "unknown STORAGE"},
		{"Error: Postgres Without URL", func(c *Config) { c.Storage.Backend = StoragePostgres }, "DATABASE_URL"},
		{"Error: Empty File Path", func(c *Config) { c.Storage.HabitFile = "" }, "HABITS_FILE"},
		{"Error: Zero Queue", func(c *Config) { c.Workers.SaveQueueSize = 0 }, "SAVE_QUEUE_SIZE"},
		{"Error: Zero Interval", func(c *Config) { c.Workers.RolloverInterval = 0 }, "ROLLOVER_INTERVAL"},
		{"Error: Negative Rate Limit", func(c *Config) { c.Server.RateLimit = -1 }, "RATE_LIMIT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
