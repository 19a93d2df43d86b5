// Package config provides application configuration management with
// multi-source priority.
//
// Configuration sources (highest to lowest priority):
//  1. Environment variables (EASEL_* or DATABASE_URL, runtime override)
//  2. Config file (~/.easel/config.yaml)
//  3. Default values
//
// Main configuration categories:
//   - Storage: PostgreSQL connection (see storage.go)
//   - Detection: heuristic thresholds for artifact classification
//   - Session: resident-artifact capacity
//   - Retention: per-artifact version retention bound
//   - Observability: OTLP trace export (opt-in)
//
// Security: the database password is never logged; the config directory
// uses 0750 permissions. Validation lives in validation.go with sentinel
// errors checked via errors.Is().
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/easelhq/easel/internal/artifact"
	"github.com/easelhq/easel/internal/detect"
	"github.com/easelhq/easel/internal/session"
)

const (
	configDirName  = ".easel"
	configFileName = "config"
	configFileType = "yaml"
	envPrefix      = "EASEL"
)

// Config stores application configuration.
type Config struct {
	// PostgreSQL connection
	PostgresHost     string `mapstructure:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password"`
	PostgresDBName   string `mapstructure:"postgres_dbname"`
	PostgresSSLMode  string `mapstructure:"postgres_sslmode"`

	// Detection heuristics
	DetectionMinLines  int     `mapstructure:"detection_min_lines"`
	DetectionThreshold float64 `mapstructure:"detection_threshold"`

	// Session residency bound
	SessionCapacity int `mapstructure:"session_capacity"`

	// Version retention bound per artifact
	RetainVersions int `mapstructure:"retain_versions"`

	// Logging
	LogLevel string `mapstructure:"log_level"` // debug | info | warn | error
	LogJSON  bool   `mapstructure:"log_json"`

	// Tracing (opt-in)
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	ServiceName    string `mapstructure:"service_name"`
}

// Load reads configuration from defaults, the optional config file, and
// environment variables, then validates the result.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	if dir, err := Dir(); err == nil {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// DATABASE_URL overrides individual postgres_* settings; it is the
	// common single-variable form in cloud deployments.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("postgres_host", "localhost")
	v.SetDefault("postgres_port", 5432)
	v.SetDefault("postgres_user", "easel")
	v.SetDefault("postgres_password", "")
	v.SetDefault("postgres_dbname", "easel")
	v.SetDefault("postgres_sslmode", "disable")

	v.SetDefault("detection_min_lines", detect.DefaultMinLines)
	v.SetDefault("detection_threshold", detect.DefaultThreshold)
	v.SetDefault("session_capacity", session.DefaultCapacity)
	v.SetDefault("retain_versions", artifact.DefaultRetainVersions)

	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)

	v.SetDefault("tracing_enabled", false)
	v.SetDefault("otlp_endpoint", "localhost:4318")
	v.SetDefault("service_name", "easel")
}

// Dir returns the easel config/state directory (~/.easel), creating it if
// needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, configDirName)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	return dir, nil
}

// DetectConfig maps the configuration onto the detector's knobs.
func (c *Config) DetectConfig() detect.Config {
	return detect.Config{
		MinLines:  c.DetectionMinLines,
		Threshold: c.DetectionThreshold,
	}
}
