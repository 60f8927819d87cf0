package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	API    APIConfig
	Output OutputConfig
	Logger LoggerConfig
	Mock   MockConfig
}

// APIConfig holds the endpoint configuration for the remote users API
type APIConfig struct {
	BaseURL        string `mapstructure:"API_BASE_URL" validate:"required,url"`
	Key            string `mapstructure:"API_KEY" validate:"required"`
	TimeoutSeconds int    `mapstructure:"API_TIMEOUT_SECONDS" validate:"gt=0"`
}

// OutputConfig holds configuration for the local output file
type OutputConfig struct {
	Path string `mapstructure:"OUTPUT_FILE" validate:"required"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level          string `mapstructure:"LOG_LEVEL"`
	Format         string `mapstructure:"LOG_FORMAT"`
	OutputPath     string `mapstructure:"LOG_OUTPUT_PATH"`
	EnableSampling bool   `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
}

// MockConfig holds configuration for the local mock users API server
type MockConfig struct {
	Addr   string `mapstructure:"MOCKAPI_ADDR" validate:"required"`
	APIKey string `mapstructure:"MOCKAPI_API_KEY"`
	DBPath string `mapstructure:"MOCKAPI_DB_PATH"`
}

// LoadConfig reads configuration from file or environment variables.
// Every key has a default, so loading succeeds with zero environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AutomaticEnv() // Read from environment variables

	// Set defaults after env binding so APP_ENV can steer them
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay, defaults and env vars cover everything
	}

	var config Config

	// Manually populate config from viper
	config.API.BaseURL = v.GetString("API_BASE_URL")
	config.API.Key = v.GetString("API_KEY")
	config.API.TimeoutSeconds = v.GetInt("API_TIMEOUT_SECONDS")

	config.Output.Path = v.GetString("OUTPUT_FILE")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.Mock.Addr = v.GetString("MOCKAPI_ADDR")
	config.Mock.APIKey = v.GetString("MOCKAPI_API_KEY")
	config.Mock.DBPath = v.GetString("MOCKAPI_DB_PATH")

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("API_BASE_URL", "https://api.example.com")
	v.SetDefault("API_KEY", "your_api_key")
	v.SetDefault("API_TIMEOUT_SECONDS", 30)

	v.SetDefault("OUTPUT_FILE", "output.txt")

	// Logger defaults
	env := v.GetString("APP_ENV")
	if env == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("SERVICE_NAME", "rest-user-client")
	v.SetDefault("SERVICE_VERSION", "1.0.0")

	v.SetDefault("MOCKAPI_ADDR", ":8080")
	v.SetDefault("MOCKAPI_API_KEY", "")
	v.SetDefault("MOCKAPI_DB_PATH", "")
}

// Timeout returns the per-request timeout for the remote API
func (c *APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Validate checks the loaded configuration and reports the first problem
// in a human-readable form.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return errors.New(formatValidationError(validationErrors))
		}
		return err
	}
	return nil
}

// formatValidationError converts validator errors to readable messages
func formatValidationError(errs validator.ValidationErrors) string {
	messages := make([]string, 0, len(errs))
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", err.Field()))
		case "url":
			messages = append(messages, fmt.Sprintf("%s must be a valid URL", err.Field()))
		case "gt":
			messages = append(messages, fmt.Sprintf("%s must be greater than %s", err.Field(), err.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", err.Field()))
		}
	}
	return strings.Join(messages, "; ")
}
