// Package config provides application configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the complete application configuration.
type Config struct {
	Server      ServerConfig
	Frankfurter FrankfurterConfig `mapstructure:"frankfurter"`
	Series      SeriesConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int  `mapstructure:"port"`
	ServeSwagger bool `mapstructure:"serve_swagger"`
	ServeMetrics bool `mapstructure:"serve_metrics"`
	// RequestTimeout bounds each rate request, history builds included.
	RequestTimeout int `mapstructure:"request_timeout_sec"`
	WriteTimeout   int `mapstructure:"write_timeout_sec"`
}

// FrankfurterConfig holds settings for the frankfurter rate API.
type FrankfurterConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout_sec"`
}

// SeriesConfig holds historical series settings.
type SeriesConfig struct {
	DefaultDays int `mapstructure:"default_days"`
	MaxDays     int `mapstructure:"max_days"`
	Workers     int `mapstructure:"workers"` // concurrent day fetches; 1 is sequential
}

// LoadConfig reads configuration from config files, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file found or error loading it: %v\n", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("RATECHART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.serve_swagger", true)
	v.SetDefault("server.serve_metrics", true)
	v.SetDefault("server.request_timeout_sec", 50)
	v.SetDefault("server.write_timeout_sec", 60)
	v.SetDefault("frankfurter.base_url", "https://api.frankfurter.dev/v1")
	v.SetDefault("frankfurter.timeout_sec", 5)
	v.SetDefault("series.default_days", 30)
	v.SetDefault("series.max_days", 366)
	v.SetDefault("series.workers", 1)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if no config file, we have defaults and env
		fmt.Printf("Config file not found: %v\n", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks that all required configuration fields are set and valid.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be positive, got %d", c.Server.Port))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout_sec must be positive, got %d", c.Server.RequestTimeout))
	}
	if c.Server.WriteTimeout <= c.Server.RequestTimeout {
		// the error response has to be written before the connection is cut
		errs = append(errs, fmt.Errorf("server.write_timeout_sec (%d) must exceed server.request_timeout_sec (%d)",
			c.Server.WriteTimeout, c.Server.RequestTimeout))
	}

	if c.Frankfurter.BaseURL == "" {
		errs = append(errs, fmt.Errorf("frankfurter.base_url is required (set RATECHART_FRANKFURTER_BASE_URL)"))
	} else if u, err := url.Parse(c.Frankfurter.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("frankfurter.base_url must be an absolute URL, got %q", c.Frankfurter.BaseURL))
	}
	if c.Frankfurter.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("frankfurter.timeout_sec must be positive, got %d", c.Frankfurter.Timeout))
	}

	if c.Series.DefaultDays <= 0 {
		errs = append(errs, fmt.Errorf("series.default_days must be positive, got %d", c.Series.DefaultDays))
	}
	if c.Series.MaxDays < c.Series.DefaultDays {
		errs = append(errs, fmt.Errorf("series.max_days (%d) must be at least series.default_days (%d)", c.Series.MaxDays, c.Series.DefaultDays))
	}
	if c.Series.Workers <= 0 {
		errs = append(errs, fmt.Errorf("series.workers must be positive, got %d", c.Series.Workers))
	}

	return errors.Join(errs...)
}
