// Package main is the entry point for the news API server.
//
// MAIN PACKAGE IN GO:
// The main package should be kept minimal. Its job is to:
// 1. Read configuration (internal/config: env vars and an optional .env)
// 2. Create dependencies (the logger)
// 3. Start the application (internal/server)
//
// Passing -routes prints the route table as Markdown and exits.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/go-chi/docgen"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/server"
)

func main() {
	routes := flag.Bool("routes", false, "print the route table as Markdown and exit")
	envFile := flag.String("env", ".env", "optional env file to load before the environment")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Log levels (from least to most severe): Debug → Info → Warn → Error.
	// LOG_LEVEL picks the minimum; the default is info.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	if *routes {
		// The route table does not depend on the data, so document it against
		// a throwaway in-memory store instead of the configured one.
		cfg.DBDriver = config.DriverSQLite
		cfg.DBPath = ":memory:"
		cfg.SeedOnStart = false
		srv, err := server.New(cfg, logger)
		if err != nil {
			logger.Error("failed to create server", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer srv.Close()

		fmt.Println(docgen.MarkdownRoutesDoc(srv.Router(), docgen.MarkdownOpts{
			ProjectPath: "github.com/sakif/news-api",
			Intro:       "Routes served by the news API.",
		}))
		return
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
