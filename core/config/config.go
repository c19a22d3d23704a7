/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/ksv-py/custom-interpreter/core/logging"
)

// DefaultPath is read when no config file is given explicitly and it exists
const DefaultPath = "interpreter.toml"

// Environment variables that override file values
const (
	EnvPath           = "ENV_PATH"
	EnvLogLevel       = "INTERPRETER_LOG_LEVEL"
	EnvLogFormat      = "INTERPRETER_LOG_FORMAT"
	EnvServeAddr      = "INTERPRETER_SERVE_ADDR"
	EnvMaxSourceBytes = "INTERPRETER_MAX_SOURCE_BYTES"
)

// Config holds the complete application configuration
type Config struct {
	Log   LogConfig   `toml:"log"`
	Serve ServeConfig `toml:"serve"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// ServeConfig holds playground server settings
type ServeConfig struct {
	Addr           string   `toml:"addr"`
	MaxSourceBytes int      `toml:"max_source_bytes"`
	ReadTimeout    Duration `toml:"read_timeout"`
	WriteTimeout   Duration `toml:"write_timeout"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Serve: ServeConfig{
			Addr:           "127.0.0.1:8097",
			MaxSourceBytes: 64 << 10,
			ReadTimeout:    Duration{10 * time.Second},
			WriteTimeout:   Duration{10 * time.Second},
		},
	}
}

// Load reads a TOML file on top of the defaults. With an empty path,
// DefaultPath is used if it exists and the defaults are returned otherwise.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultPath); err != nil {
			return cfg, nil
		}
		path = DefaultPath
	}

	path = os.ExpandEnv(path)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads environment variables from a .env file. The path comes
// from ENV_PATH, falling back to defaultPath. A missing file is not an error.
func LoadDotEnv(defaultPath string) error {
	envPath := os.Getenv(EnvPath)
	if envPath == "" {
		envPath = defaultPath
	}

	if _, err := os.Stat(envPath); errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Skipping .env, file not found", "path", envPath)
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", envPath, err)
	}
	return nil
}

// ApplyEnv overrides values with the INTERPRETER_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv(EnvServeAddr); v != "" {
		c.Serve.Addr = v
	}
	if v := os.Getenv(EnvMaxSourceBytes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxSourceBytes, err)
		}
		c.Serve.MaxSourceBytes = n
	}
	return nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr must not be empty")
	}
	if c.Serve.MaxSourceBytes <= 0 {
		return fmt.Errorf("serve.max_source_bytes must be positive, got %d", c.Serve.MaxSourceBytes)
	}
	if c.Serve.ReadTimeout.Duration <= 0 || c.Serve.WriteTimeout.Duration <= 0 {
		return fmt.Errorf("serve timeouts must be positive")
	}
	return nil
}

// LoggingConfig converts the log section to a logging.Config writing to stderr
func (c *Config) LoggingConfig() logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = c.Log.Level
	lc.Format = c.Log.Format
	return lc
}
