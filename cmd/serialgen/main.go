package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/neomorfeo/serialgen/internal/adapter/clipboard"
	oteladapter "github.com/neomorfeo/serialgen/internal/adapter/otel"
	"github.com/neomorfeo/serialgen/internal/adapter/random"
	riveradapter "github.com/neomorfeo/serialgen/internal/adapter/river"
	"github.com/neomorfeo/serialgen/internal/adapter/sqlite"
	"github.com/neomorfeo/serialgen/internal/app"
	"github.com/neomorfeo/serialgen/internal/domain"
	"github.com/neomorfeo/serialgen/internal/logging"

	handler "github.com/neomorfeo/serialgen/internal/adapter/http"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd(clipboard.NewSystem()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run starts the HTTP service and blocks until SIGINT or SIGTERM.
func run() error {
	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "serialgen.db")
	logger := newLogger()

	generator, err := newGenerator(os.Getenv("SERIAL_SEED"))
	if err != nil {
		return err
	}

	ctx := context.Background()

	// --- Observability ---
	otelCfg := oteladapter.ConfigFromEnv()
	providers, err := oteladapter.Setup(ctx, otelCfg)
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Error("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := oteladapter.OpenDB(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		db.Close()
		return fmt.Errorf("database: %w", err)
	}
	defer store.Close()

	repo := oteladapter.NewTracingRepository(store)

	client, err := riveradapter.Setup(ctx, db, repo, logger)
	if err != nil {
		return fmt.Errorf("river: %w", err)
	}
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("starting river: %w", err)
	}

	publisher, err := oteladapter.NewTracingPublisher(riveradapter.NewPublisher(client))
	if err != nil {
		_ = client.Stop(ctx)
		return fmt.Errorf("publisher: %w", err)
	}

	// --- Application ---
	serials, err := app.NewSerialService(generator, publisher, app.WithLogger(logger))
	if err != nil {
		_ = client.Stop(ctx)
		return err
	}
	activity := app.NewActivityService(repo)

	// --- Adapters (in) ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           newRouter(otelCfg.ServiceName, serials, activity),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("serialgen listening", "addr", srv.Addr, "docs", "http://localhost:"+port+"/docs")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	var runErr error
	select {
	case <-done:
		logger.Info("shutting down")
	case err := <-serveErr:
		runErr = fmt.Errorf("server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	if err := client.Stop(shutdownCtx); err != nil {
		logger.Error("river shutdown", "error", err)
	}

	logger.Info("stopped")
	return runErr
}

// newRouter mounts the API on a chi router with the standard middleware chain.
func newRouter(serviceName string, serials *app.SerialService, activity *app.ActivityService) http.Handler {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("serialgen", version))
	handler.Register(api, serials, activity)

	return router
}

// newGenerator returns the seeded generator when seed is set, nanoid otherwise.
func newGenerator(seed string) (domain.IdentifierGenerator, error) {
	if seed == "" {
		return random.NewNanoID(), nil
	}

	n, err := strconv.ParseUint(seed, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q: %w", seed, err)
	}
	return random.NewSeeded(n), nil
}

func newLogger() *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		Format: logging.ParseFormat(os.Getenv("LOG_FORMAT")),
	})
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
