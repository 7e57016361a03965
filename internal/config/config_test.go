package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Server:      ServerConfig{Port: 8080, RequestTimeout: 50, WriteTimeout: 60},
		Frankfurter: FrankfurterConfig{BaseURL: "https://api.frankfurter.dev/v1", Timeout: 5},
		Series:      SeriesConfig{DefaultDays: 30, MaxDays: 366, Workers: 1},
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Server.ServeSwagger)
	assert.True(t, cfg.Server.ServeMetrics)
	assert.Equal(t, 50, cfg.Server.RequestTimeout)
	assert.Equal(t, 60, cfg.Server.WriteTimeout)
	assert.Equal(t, "https://api.frankfurter.dev/v1", cfg.Frankfurter.BaseURL)
	assert.Equal(t, 5, cfg.Frankfurter.Timeout)
	assert.Equal(t, 30, cfg.Series.DefaultDays)
	assert.Equal(t, 366, cfg.Series.MaxDays)
	assert.Equal(t, 1, cfg.Series.Workers)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("RATECHART_SERVER_PORT", "9090")
	t.Setenv("RATECHART_FRANKFURTER_BASE_URL", "http://localhost:8081/v1")
	t.Setenv("RATECHART_SERIES_WORKERS", "4")
	t.Setenv("RATECHART_SERVER_SERVE_SWAGGER", "false")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8081/v1", cfg.Frankfurter.BaseURL)
	assert.Equal(t, 4, cfg.Series.Workers)
	assert.False(t, cfg.Server.ServeSwagger)
}

func TestLoadConfig_RequestTimeoutAboveWriteTimeout(t *testing.T) {
	t.Setenv("RATECHART_SERVER_REQUEST_TIMEOUT_SEC", "90")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must exceed server.request_timeout_sec (90)")
}

func TestLoadConfig_InvalidEnv(t *testing.T) {
	t.Setenv("RATECHART_SERIES_WORKERS", "0")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "series.workers must be positive")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "zero port",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: []string{"server.port must be positive"},
		},
		{
			name:    "zero request timeout",
			mutate:  func(c *Config) { c.Server.RequestTimeout = 0 },
			wantErr: []string{"server.request_timeout_sec must be positive"},
		},
		{
			name:    "write timeout not above request timeout",
			mutate:  func(c *Config) { c.Server.WriteTimeout = 50 },
			wantErr: []string{"server.write_timeout_sec (50) must exceed server.request_timeout_sec (50)"},
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.Frankfurter.BaseURL = "" },
			wantErr: []string{"frankfurter.base_url is required"},
		},
		{
			name:    "relative base url",
			mutate:  func(c *Config) { c.Frankfurter.BaseURL = "api/v1" },
			wantErr: []string{"frankfurter.base_url must be an absolute URL"},
		},
		{
			name:    "max below default",
			mutate:  func(c *Config) { c.Series.MaxDays = 7 },
			wantErr: []string{"series.max_days (7) must be at least series.default_days (30)"},
		},
		{
			name: "all errors joined",
			mutate: func(c *Config) {
				c.Frankfurter.Timeout = 0
				c.Series.DefaultDays = 0
				c.Series.Workers = -1
			},
			wantErr: []string{
				"frankfurter.timeout_sec must be positive",
				"series.default_days must be positive",
				"series.workers must be positive",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			for _, want := range tt.wantErr {
				assert.Contains(t, err.Error(), want)
			}
		})
	}
}
