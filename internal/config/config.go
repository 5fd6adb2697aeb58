// Package config reads server settings from the environment.
//
// An optional .env file is loaded first with godotenv. Variables already set
// in the real environment win over the file, so a deployment can override any
// line without editing it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port            int
	DBDriver        string
	DBPath          string // sqlite file; ":memory:" for a throwaway database
	DatabaseURL     string // postgres DSN
	SeedOnStart     bool
	LogLevel        slog.Level
	RateLimitRPS    float64 // 0 disables rate limiting
	RateLimitBurst  int
	ShutdownTimeout time.Duration
}

// Load reads the given .env files (default ".env"), then the environment.
// Missing files are not an error.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("config: loading env file: %w", err)
	}

	cfg := Config{
		Port:            envInt("PORT", 8080),
		DBDriver:        strings.ToLower(envString("DB_DRIVER", DriverSQLite)),
		DBPath:          envString("DB_PATH", "data/news.db"),
		DatabaseURL:     envString("DATABASE_URL", ""),
		SeedOnStart:     envBool("SEED_ON_START", false),
		LogLevel:        envLevel("LOG_LEVEL", slog.LevelInfo),
		RateLimitRPS:    envFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  envInt("RATE_LIMIT_BURST", 20),
		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: PORT %d out of range", c.Port)
	}
	switch c.DBDriver {
	case DriverSQLite:
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("config: DB_DRIVER=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("config: RATE_LIMIT_RPS must not be negative")
	}
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// envLevel accepts slog's level names: debug, info, warn, error.
func envLevel(key string, def slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(v)); err == nil {
			return l
		}
	}
	return def
}
