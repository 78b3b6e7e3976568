// Package config loads skyreport settings from an optional YAML file and
// SKYREPORT_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvTimezone    = "SKYREPORT_TIMEZONE"
	EnvEphemeris   = "SKYREPORT_EPHEMERIS"
	EnvOutputDir   = "SKYREPORT_OUTPUT_DIR"
	EnvPort        = "SKYREPORT_PORT"
	EnvMaxUploadMB = "SKYREPORT_MAX_UPLOAD_MB"
	EnvLogLevel    = "SKYREPORT_LOG_LEVEL"
)

// Config holds every tunable setting.
type Config struct {
	// Timezone is an IANA name or "Local". EXIF timestamps carry no zone and
	// are read in this location.
	Timezone    string `yaml:"timezone"`
	Ephemeris   bool   `yaml:"ephemeris"`
	OutputDir   string `yaml:"output_dir"`
	Port        string `yaml:"port"`
	MaxUploadMB int64  `yaml:"max_upload_mb"`
	LogLevel    string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Timezone:    "Local",
		Ephemeris:   true,
		OutputDir:   ".",
		Port:        "8888",
		MaxUploadMB: 25,
		LogLevel:    "info",
	}
}

// Load starts from Default, applies the YAML file at path when path is not
// empty, then applies environment overrides. The result is not validated so
// command line flags can still replace bad values; call Validate afterwards.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		slog.Debug("Loaded config file", "path", path)
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvEphemeris); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvEphemeris, v, err)
		}
		c.Ephemeris = b
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvPort); v != "" {
		c.Port = v
	}
	if v := os.Getenv(EnvMaxUploadMB); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxUploadMB, v, err)
		}
		c.MaxUploadMB = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks values that cannot be used as given.
func (c Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port must not be empty")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("max_upload_mb must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// MaxUploadBytes is MaxUploadMB in bytes.
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

// AsYAML renders the effective configuration.
func (c Config) AsYAML() (string, error) {
	data, err := yaml.Marshal(&c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}
