// main_test.go
package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"catering-admin/config"
	"catering-admin/logger"
	"catering-admin/services"
	"catering-admin/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Env:           "test",
			Port:          "0",
			BaseURL:       "http://localhost:8080",
			BusinessName:  "Jagdamba Caterers",
			SessionSecret: config.DefaultSessionSecret,
		},
		Database: config.DatabaseConfig{Driver: "sqlite", DSN: "file:" + t.Name() + "?mode=memory&cache=shared", MaxOpenConns: 1},
		Storage:  config.StorageConfig{Driver: "memory"},
		Seed:     config.SeedConfig{AdminUsername: "admin", AdminEmail: "admin@example.com", AdminPassword: "first-login"},
	}
}

// TestHealthEndpoint tests the /health endpoint.
// Given: a server built from a development configuration.
// When: A GET request is made to /health.
// Then: It should return HTTP 200 and the expected content.
func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, cleanup, err := buildServer(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	srv.Handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, resp.Body.String())
	assert.Equal(t, ":0", srv.Addr)
}

// TestProtectedRouteRedirect checks that the dashboard needs a session.
func TestProtectedRouteRedirect(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv, cleanup, err := buildServer(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	resp := httptest.NewRecorder()
	srv.Handler.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, "/login", resp.Header().Get("Location"))
}

func TestBuildServer_SeedsAdminOnEmptyDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.Seed.AdminEmail = ""

	_, _, err := buildServer(context.Background(), cfg)
	assert.ErrorContains(t, err, "SEED_ADMIN_EMAIL")
}

func TestNewBlobStore(t *testing.T) {
	cfg := testConfig(t)
	store, err := newBlobStore(cfg)
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStorage{}, store)

	cfg.Storage.Driver = "ftp"
	_, err = newBlobStore(cfg)
	assert.Error(t, err)
}

func TestNewMetrics_Disabled(t *testing.T) {
	m, err := newMetrics(testConfig(t))
	require.NoError(t, err)
	assert.Equal(t, services.NopPublisher{}, m)
}

// TestSetupLogging checks that LOG_LEVEL wins over the environment default.
func TestSetupLogging(t *testing.T) {
	t.Cleanup(func() { _ = logger.InitLogger(logger.Options{Level: "debug"}) })

	cases := []struct {
		name       string
		env        string
		level      string
		infoShown  bool
		debugShown bool
	}{
		{"explicit warn in development", "development", "warn", false, false},
		{"explicit debug in production", "production", "debug", true, true},
		{"development default", "development", "", true, true},
		{"production default", "production", "", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig(t)
			cfg.App.Env = tc.env
			cfg.Log.Level = tc.level

			require.NoError(t, setupLogging(cfg))
			assert.Equal(t, tc.infoShown, logger.Enabled(zapcore.InfoLevel))
			assert.Equal(t, tc.debugShown, logger.Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Enabled(zapcore.WarnLevel))
		})
	}
}
