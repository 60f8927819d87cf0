package app

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"rest-user-client/internal/adapter/rest"
	"rest-user-client/internal/config"
	domain "rest-user-client/internal/domain/user"
	"rest-user-client/internal/filestore"
	"rest-user-client/internal/usecase/user"
	"rest-user-client/pkg/logger"
)

const greeting = "Hello, World!"

// App represents the application
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Users  *user.Usecase
	Files  *filestore.Store
	Out    io.Writer
}

// New creates a new application instance
func New() (*App, error) {
	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// Initialize logger
	l, err := initLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	client, err := rest.New(rest.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout(),
	}, l)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: l,
		Users:  user.New(client, l),
		Files:  filestore.New(l),
		Out:    os.Stdout,
	}, nil
}

// Run walks the whole surface once: the remote users API end to end, then
// the local file round trip. The first failure stops the run.
func (a *App) Run(ctx context.Context) error {
	a.Logger.Info("starting demo run",
		zap.String("service", a.Config.Logger.ServiceName),
		zap.String("version", a.Config.Logger.ServiceVersion),
		zap.String("base_url", a.Config.API.BaseURL),
	)

	records, err := a.Users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	if err := a.printJSON("users", records); err != nil {
		return err
	}

	created, err := a.Users.CreateUser(ctx, domain.Record{"name": "Bob"})
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if err := a.printJSON("created", created); err != nil {
		return err
	}

	id, ok := created.ID()
	if !ok {
		return fmt.Errorf("created user has no id: %v", created)
	}

	updated, err := a.Users.UpdateUser(ctx, id, domain.Record{"name": "Bobby"})
	if err != nil {
		return fmt.Errorf("failed to update user %s: %w", id, err)
	}
	if err := a.printJSON("updated", updated); err != nil {
		return err
	}

	if err := a.Users.DeleteUser(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	fmt.Fprintf(a.Out, "deleted: user %s\n", id)

	path := a.Config.Output.Path
	if err := a.Files.Write(path, greeting); err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "wrote: %s\n", path)

	contents, err := a.Files.Read(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.Out, "read: %s\n", contents)

	a.Logger.Info("demo run complete")
	return nil
}

// printJSON writes one labeled result line. Map keys marshal in sorted
// order, so output is stable across runs.
func (a *App) printJSON(label string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s result: %w", label, err)
	}
	fmt.Fprintf(a.Out, "%s: %s\n", label, data)
	return nil
}

// loadConfig loads application configuration
func loadConfig() (*config.Config, error) {
	configPath := getConfigPath()
	return config.LoadConfig(configPath)
}

// initLogger initializes the application logger
func initLogger(cfg *config.Config) (*zap.Logger, error) {
	env := getEnvironment()

	loggerCfg := logger.Config{
		Level:          cfg.Logger.Level,
		Format:         cfg.Logger.Format,
		OutputPath:     cfg.Logger.OutputPath,
		EnableSampling: cfg.Logger.EnableSampling,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
		Environment:    env,
	}

	return logger.NewWithConfig(loggerCfg)
}

// getConfigPath returns the configuration path
func getConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}

// getEnvironment returns the application environment
func getEnvironment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	return "development"
}
