// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects the store, services,
// handlers and middleware, and decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on every request
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
//
//	main.go: config.Load() → server.New(cfg, logger)
//	New:     store (sqlite or postgres) → services → handlers → routes
//
// This is the "composition root" pattern: all dependencies are wired in one
// place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/sakif/news-api/internal/config"
	"github.com/sakif/news-api/internal/fixtures"
	"github.com/sakif/news-api/internal/handler"
	"github.com/sakif/news-api/internal/metrics"
	"github.com/sakif/news-api/internal/middleware"
	"github.com/sakif/news-api/internal/repository"
	"github.com/sakif/news-api/internal/repository/postgres"
	sqliteRepo "github.com/sakif/news-api/internal/repository/sqlite"
	"github.com/sakif/news-api/internal/service"
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. Start closes it after the HTTP server has
// drained, so no in-flight request ever sees a closed pool.
type Server struct {
	router  *chi.Mux
	config  config.Config
	logger  *slog.Logger
	store   repository.Store
	metrics *metrics.Metrics
	limiter *middleware.RateLimiter
}

// OpenStore opens the backend cfg.DBDriver names. cmd/seed uses it too.
func OpenStore(ctx context.Context, cfg config.Config) (repository.Store, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.Open(ctx, cfg.DatabaseURL)
	default:
		if !isMemoryPath(cfg.DBPath) {
			// Ensure the data directory exists (like `mkdir -p`).
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		return sqliteRepo.New(cfg.DBPath)
	}
}

func isMemoryPath(p string) bool {
	return p == "" || p == ":memory:"
}

// New opens the configured store and builds the server around it.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s, err := NewWithStore(cfg, logger, store)
	if err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// NewWithStore builds the server around an already-open store. Tests use it
// with a seeded in-memory database.
//
// With SeedOnStart the store is rebuilt from the embedded fixtures first;
// that is the usual setup for an in-memory sqlite database.
func NewWithStore(cfg config.Config, logger *slog.Logger, store repository.Store) (*Server, error) {
	if cfg.SeedOnStart {
		data, err := fixtures.Load()
		if err != nil {
			return nil, fmt.Errorf("loading fixtures: %w", err)
		}
		if err := store.Seed(context.Background(), data); err != nil {
			return nil, fmt.Errorf("seeding database: %w", err)
		}
		logger.Info("database seeded",
			slog.Int("articles", len(data.Articles)),
			slog.Int("comments", len(data.Comments)),
		)
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		store:   store,
		metrics: metrics.New(),
	}
	if cfg.RateLimitRPS > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, logger)
	}

	s.setupRoutes()
	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /api                                → endpoint catalogue
// GET    /api/topics                         → all topics
// GET    /api/users                          → all users
// GET    /api/articles                       → articles (?sort_by, ?order, ?topic)
// GET    /api/articles/{article_id}          → one article
// PATCH  /api/articles/{article_id}          → adjust votes
// GET    /api/articles/{article_id}/comments → comments, newest first
// POST   /api/articles/{article_id}/comments → add a comment
// DELETE /api/comments/{comment_id}          → delete a comment
// GET    /healthz, /metrics                  → operations
//
// MIDDLEWARE ORDER MATTERS:
//  1. RequestID: assigns the id everything after it logs
//  2. RealIP: extracts the real client IP from proxy headers
//  3. Logger and Metrics: observe the final status of every request
//  4. Recoverer: turns panics into 500 {"msg"} (inside Logger, so they are logged)
//  5. RateLimiter (optional): per-IP, after RealIP
func (s *Server) setupRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics(s.metrics))
	s.router.Use(middleware.Recoverer(s.logger))
	if s.limiter != nil {
		s.router.Use(s.limiter.Handler)
	}

	s.router.NotFound(handler.NotFound)
	s.router.MethodNotAllowed(handler.NotFound)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", s.metrics.Handler())

	// DEPENDENCY CHAIN:
	//   s.store implements every repository interface
	//   each service receives only the interfaces it uses
	//   each handler receives its service
	topicHandler := handler.NewTopicHandler(service.NewTopicService(s.store, s.logger), s.logger)
	userHandler := handler.NewUserHandler(service.NewUserService(s.store, s.logger), s.logger)
	articleHandler := handler.NewArticleHandler(service.NewArticleService(s.store, s.store, s.logger), s.logger)
	commentHandler := handler.NewCommentHandler(service.NewCommentService(s.store, s.store, s.logger), s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/", handler.NewAPIHandler().HandleEndpoints)
		r.Get("/topics", topicHandler.HandleList)
		r.Get("/users", userHandler.HandleList)

		r.Route("/articles", func(r chi.Router) {
			r.Get("/", articleHandler.HandleList)
			r.Route("/{article_id}", func(r chi.Router) {
				r.Get("/", articleHandler.HandleGet)
				r.Patch("/", articleHandler.HandleVote)
				r.Get("/comments", commentHandler.HandleList)
				r.Post("/comments", commentHandler.HandleCreate)
			})
		})

		r.Delete("/comments/{comment_id}", commentHandler.HandleDelete)
	})
}

// handleHealth answers 200 {"status":"ok"} while the store responds to a
// ping, 503 otherwise.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", slog.String("error", err.Error()))
		render.Status(r, http.StatusServiceUnavailable)
		render.JSON(w, r, map[string]string{"status": "unavailable"})
		return
	}
	render.JSON(w, r, map[string]string{"status": "ok"})
}

// Handler returns the fully wired router, for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Router exposes the chi router, for route documentation.
func (s *Server) Router() chi.Router {
	return s.router
}

// Close releases the store without starting the server.
func (s *Server) Close() error {
	return s.store.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (cfg.ShutdownTimeout)
// 3. Close the store (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	defer s.store.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.limiter != nil {
		stop := make(chan struct{})
		defer close(stop)
		s.limiter.StartCleanup(time.Minute, stop)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d/api", s.config.Port)),
			slog.String("driver", s.config.DBDriver),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		timeout := s.config.ShutdownTimeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
