// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/cheatsheets/internal/api"
	"github.com/starford/cheatsheets/internal/check"
	"github.com/starford/cheatsheets/internal/content"
	"github.com/starford/cheatsheets/internal/mcpserver"
	"github.com/starford/cheatsheets/internal/metrics"
	"github.com/starford/cheatsheets/internal/render"
	"github.com/starford/cheatsheets/internal/sheetservice"
	"github.com/starford/cheatsheets/internal/site"
	"github.com/starford/cheatsheets/internal/storage"
)

// ErrCheckFailed is returned by RunCheck when a document has errors.
var ErrCheckFailed = errors.New("content check failed")

func newApplication(opts []Option) (*application, error) {
	app := &application{version: "dev", out: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// newLogger builds the structured JSON logger and sets it as default.
func newLogger(cfg *Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)
	return logger
}

func newStore(cfg *Config) (storage.Provider, error) {
	store, err := storage.NewFS(cfg.Content.Path, cfg.Content.Extension)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return store, nil
}

func newService(cfg *Config, store storage.Provider, logger *slog.Logger) *sheetservice.Service {
	loader := content.NewLoader(store, logger, cfg.Content.Workers)
	return sheetservice.NewService(loader, render.New(), logger)
}

// NewHTTPHandler builds the router serving the site, the JSON API, health
// checks and, when enabled, metrics.
func NewHTTPHandler(cfg *Config, svc *sheetservice.Service, logger *slog.Logger) (http.Handler, error) {
	pages, err := site.New(svc, site.Info{Title: cfg.Site.Title, Tagline: cfg.Site.Tagline}, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	if cfg.Metrics.Enabled {
		m, err := metrics.New(cfg.Metrics.Path)
		if err != nil {
			return nil, fmt.Errorf("init metrics: %w", err)
		}
		r.Use(m.Middleware)
		r.Handle(cfg.Metrics.Path, m.Handler())
	}

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Mount("/api", api.NewRouter(svc))
	r.Mount("/", pages.Routes())

	return r, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config
	logger := newLogger(cfg, os.Stdout)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.String("content_ext", cfg.Content.Extension),
		slog.Bool("metrics", cfg.Metrics.Enabled),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := newStore(cfg)
	if err != nil {
		return err
	}
	if _, err := os.Stat(store.Root()); errors.Is(err, os.ErrNotExist) {
		logger.Warn("content directory does not exist, serving empty listing",
			slog.String("path", store.Root()))
	}

	handler, err := NewHTTPHandler(cfg, newService(cfg, store, logger), logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// RunMCP serves the MCP tools on stdin/stdout. Logs go to stderr.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config, os.Stderr)

	store, err := newStore(app.config)
	if err != nil {
		return err
	}

	logger.Info("MCP server starting", slog.String("content_path", store.Root()))
	srv := mcpserver.New(newService(app.config, store, logger), app.version)
	return srv.ServeStdio()
}

// RunCheck validates every document and writes the issues found. With
// watch set it keeps re-checking changed files until interrupted.
func RunCheck(ctx context.Context, watch bool, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.config, os.Stderr)

	store, err := newStore(app.config)
	if err != nil {
		return err
	}

	checker := check.New(store, logger)
	report, err := checker.Run(ctx)
	if err != nil {
		return err
	}
	for _, issue := range report.Issues {
		fmt.Fprintln(app.out, issue)
	}
	fmt.Fprintf(app.out, "%d checked, %d issues\n", report.Checked, len(report.Issues))

	if !watch {
		if report.HasErrors() {
			return ErrCheckFailed
		}
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return checker.Watch(ctx, func(kind, slug string, issues []check.Issue) {
		fmt.Fprintf(app.out, "%s: %s\n", kind, slug)
		for _, issue := range issues {
			fmt.Fprintln(app.out, issue)
		}
	})
}
