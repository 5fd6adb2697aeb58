// Command seed drops and recreates the schema of the configured store and
// loads the fixture data into it.
//
//	go run ./cmd/seed                 # embedded fixtures
//	go run ./cmd/seed -data ./mydata  # topics.json, users.json, ... from a directory
//
// The store is chosen exactly as the server chooses it (DB_DRIVER, DB_PATH,
// DATABASE_URL).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/fixtures"
	"github.com/sakif/news-api/internal/server"
)

func main() {
	envFile := flag.String("env", ".env", "optional env file to load before the environment")
	dataDir := flag.String("data", "", "directory with fixture JSON files (default: embedded set)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(*envFile, *dataDir, logger); err != nil {
		logger.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(envFile, dataDir string, logger *slog.Logger) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := loadData(dataDir)
	if err != nil {
		return err
	}

	store, err := server.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	if err := store.Seed(ctx, data); err != nil {
		return err
	}

	logger.Info("database seeded",
		slog.String("driver", cfg.DBDriver),
		slog.Int("topics", len(data.Topics)),
		slog.Int("users", len(data.Users)),
		slog.Int("articles", len(data.Articles)),
		slog.Int("comments", len(data.Comments)),
	)
	return nil
}

func loadData(dir string) (*fixtures.Data, error) {
	if dir == "" {
		return fixtures.Load()
	}
	return fixtures.LoadFS(os.DirFS(dir), ".")
}
