package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rest-user-client/internal/config"
	domain "rest-user-client/internal/domain/user"
	"rest-user-client/internal/mockapi"
	"rest-user-client/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("mockapi exited with error: %v", err)
	}
}

func run() error {
	// Load Configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.NewWithConfig(logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    "mockapi",
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    environment(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	store, closeStore, err := newStore(cfg, l)
	if err != nil {
		return err
	}
	defer closeStore()

	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              cfg.Mock.Addr,
		Handler:           mockapi.NewServer(store, mockapi.Config{APIKey: cfg.Mock.APIKey}, l).Router(),
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.Info("mock users API running", zap.String("address", cfg.Mock.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		l.Info("shutting down mock users API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// newStore picks the persistent SQLite store when a db path is configured
// and the seeded in-memory store otherwise. The in-memory seed mirrors the
// canonical demo fixture.
func newStore(cfg *config.Config, l *zap.Logger) (mockapi.Store, func(), error) {
	if cfg.Mock.DBPath != "" {
		g, err := mockapi.NewGormStore(cfg.Mock.DBPath, l)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store: %w", err)
		}
		return g, func() { _ = g.Close() }, nil
	}

	return mockapi.NewMemoryStore(domain.Record{"name": "Alice"}), func() {}, nil
}

// environment returns the application environment
func environment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
