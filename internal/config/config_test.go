package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL)
	assert.Equal(t, "your_api_key", cfg.API.Key)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, "output.txt", cfg.Output.Path)
	assert.Equal(t, ":8080", cfg.Mock.Addr)
	assert.Empty(t, cfg.Mock.APIKey)
	assert.Empty(t, cfg.Mock.DBPath)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://localhost:9090")
	t.Setenv("API_KEY", "secret")
	t.Setenv("OUTPUT_FILE", "demo.txt")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9090", cfg.API.BaseURL)
	assert.Equal(t, "secret", cfg.API.Key)
	assert.Equal(t, "demo.txt", cfg.Output.Path)
}

func TestLoadConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	content := "API_BASE_URL=http://files.example.com\nAPI_TIMEOUT_SECONDS=5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://files.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5, cfg.API.TimeoutSeconds)
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.API.BaseURL = "not a url"

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BaseURL must be a valid URL")
}

func TestValidate_MissingKey(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.API.Key = ""

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Key is required")
}

func TestValidate_NonPositiveTimeout(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	cfg.API.TimeoutSeconds = 0

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TimeoutSeconds must be greater than 0")
}
