package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080", Env: "development"},
		Log:       LogConfig{Level: "info", Format: "json"},
		Storage:   StorageConfig{Driver: DriverFile, Path: "./data/wellspring.json"},
		Analytics: AnalyticsConfig{DefaultWindowDays: 30, Timezone: "UTC"},
		RateLimit: RateLimitConfig{RequestsPerSecond: 10, Burst: 20},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverFile, cfg.Storage.Driver)
	assert.Equal(t, 30, cfg.Analytics.DefaultWindowDays)
	assert.True(t, cfg.Storage.Breaker.Enabled)
	assert.Equal(t, uint32(5), cfg.Storage.Breaker.MaxFailures)
	assert.Equal(t, 30*time.Second, cfg.Storage.Breaker.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WELLSPRING_STORAGE_DRIVER", "sqlite")
	t.Setenv("WELLSPRING_ANALYTICS_DEFAULT_WINDOW_DAYS", "14")
	t.Setenv("PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.wellspring.dev,https://*.wellspring-app.pages.dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, 14, cfg.Analytics.DefaultWindowDays)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://app.wellspring.dev", "https://*.wellspring-app.pages.dev"}, cfg.Server.CORSAllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid file config", mutate: func(c *Config) {}},
		{name: "memory needs nothing", mutate: func(c *Config) {
			c.Storage = StorageConfig{Driver: DriverMemory}
		}},
		{name: "file without path", mutate: func(c *Config) {
			c.Storage.Path = ""
		}, wantErr: "storage.path is required"},
		{name: "postgres without dsn", mutate: func(c *Config) {
			c.Storage.Driver = DriverPostgres
		}, wantErr: "storage.dsn is required"},
		{name: "supabase without url", mutate: func(c *Config) {
			c.Storage.Driver = DriverSupabase
		}, wantErr: "SUPABASE_URL is required"},
		{name: "supabase without key", mutate: func(c *Config) {
			c.Storage.Driver = DriverSupabase
			c.Storage.Supabase.URL = "https://example.supabase.co"
		}, wantErr: "SUPABASE_SERVICE_KEY is required"},
		{name: "unknown driver", mutate: func(c *Config) {
			c.Storage.Driver = "redis"
		}, wantErr: "unknown storage driver"},
		{name: "window too large", mutate: func(c *Config) {
			c.Analytics.DefaultWindowDays = 400
		}, wantErr: "default_window_days"},
		{name: "bad timezone", mutate: func(c *Config) {
			c.Analytics.Timezone = "Mars/Olympus"
		}, wantErr: "invalid analytics.timezone"},
		{name: "zero burst", mutate: func(c *Config) {
			c.RateLimit.Burst = 0
		}, wantErr: "ratelimit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLocation(t *testing.T) {
	cfg := validConfig()
	cfg.Analytics.Timezone = "Local"
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Analytics.Timezone = "Asia/Tokyo"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}
