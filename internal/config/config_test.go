package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads; t.Setenv restores them after
// the test.
func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "SEED_ON_START",
		"LOG_LEVEL", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "data/news.db", cfg.DBPath)
	assert.False(t, cfg.SeedOnStart)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", ":memory:")
	t.Setenv("SEED_ON_START", "true")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, ":memory:", cfg.DBPath)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv never overrides variables that are already set, and t.Setenv
	// to "" counts as set. Unset the two the file provides.
	os.Unsetenv("PORT")
	os.Unsetenv("DB_PATH")

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nDB_PATH=/tmp/file.db\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("PORT")
		os.Unsetenv("DB_PATH")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
	assert.Equal(t, "/tmp/file.db", cfg.DBPath)
}

func TestValidate(t *testing.T) {
	base := Config{Port: 8080, DBDriver: DriverSQLite}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"sqlite ok", func(*Config) {}, false},
		{"postgres without url", func(c *Config) { c.DBDriver = DriverPostgres }, true},
		{"postgres with url", func(c *Config) {
			c.DBDriver = DriverPostgres
			c.DatabaseURL = "postgres://localhost/nc_news"
		}, false},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"bad port", func(c *Config) { c.Port = 0 }, true},
		{"negative rps", func(c *Config) { c.RateLimitRPS = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
