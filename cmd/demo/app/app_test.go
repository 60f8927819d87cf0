package app

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"rest-user-client/internal/adapter/rest"
	"rest-user-client/internal/config"
	domain "rest-user-client/internal/domain/user"
	"rest-user-client/internal/filestore"
	"rest-user-client/internal/mockapi"
	"rest-user-client/internal/usecase/user"
	apperrors "rest-user-client/pkg/errors"
)

// newTestApp wires a full App against the given base URL, collecting output
// in the returned buffer.
func newTestApp(t *testing.T, baseURL, apiKey string) (*App, *bytes.Buffer) {
	t.Helper()

	cfg := &config.Config{
		API: config.APIConfig{
			BaseURL:        baseURL,
			Key:            apiKey,
			TimeoutSeconds: 10,
		},
		Output: config.OutputConfig{
			Path: filepath.Join(t.TempDir(), "output.txt"),
		},
		Logger: config.LoggerConfig{
			ServiceName:    "demo",
			ServiceVersion: "test",
		},
	}

	l := zaptest.NewLogger(t)
	client, err := rest.New(rest.Config{
		BaseURL: cfg.API.BaseURL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout(),
	}, l)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &App{
		Config: cfg,
		Logger: l,
		Users:  user.New(client, l),
		Files:  filestore.New(l),
		Out:    out,
	}, out
}

// startFixtureServer serves the users API from a seeded in-memory store.
func startFixtureServer(t *testing.T, apiKey string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := mockapi.NewMemoryStore(domain.Record{"name": "Alice"})
	srv := mockapi.NewServer(store, mockapi.Config{APIKey: apiKey}, zaptest.NewLogger(t))
	server := httptest.NewServer(srv.Router())
	t.Cleanup(server.Close)
	return server
}

func TestRun_EndToEnd(t *testing.T) {
	server := startFixtureServer(t, "test-key")
	a, out := newTestApp(t, server.URL, "test-key")

	require.NoError(t, a.Run(context.Background()))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, `users: [{"id":1,"name":"Alice"}]`, lines[0])
	assert.Equal(t, `created: {"id":2,"name":"Bob"}`, lines[1])
	assert.Equal(t, `updated: {"id":2,"name":"Bobby"}`, lines[2])
	assert.Equal(t, `deleted: user 2`, lines[3])
	assert.Equal(t, "wrote: "+a.Config.Output.Path, lines[4])
	assert.Equal(t, "read: Hello, World!", lines[5])

	contents, err := os.ReadFile(a.Config.Output.Path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(contents))
}

func TestRun_FailsFastOnRejectedCredentials(t *testing.T) {
	server := startFixtureServer(t, "test-key")
	a, out := newTestApp(t, server.URL, "wrong-key")

	err := a.Run(context.Background())
	require.Error(t, err)

	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)

	assert.Empty(t, out.String(), "nothing should print when the first step fails")
	_, statErr := os.Stat(a.Config.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "output file should not be written")
}

// A mid-sequence failure must stop the run where it happened.
func TestRun_StopsAfterFirstFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/users" {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"id":1,"name":"Alice"}]`)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	a, out := newTestApp(t, server.URL, "test-key")

	err := a.Run(context.Background())
	require.Error(t, err)

	var httpErr *apperrors.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 1, "only the list result should print")
	assert.Equal(t, `users: [{"id":1,"name":"Alice"}]`, lines[0])

	_, statErr := os.Stat(a.Config.Output.Path)
	assert.True(t, os.IsNotExist(statErr), "output file should not be written")
}
