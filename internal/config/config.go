// Package config loads runtime settings for the contact server and CLI.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// YAML file named by CONFIG_FILE, and environment variables (a .env file in
// the working directory is loaded into the environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // timezone names must resolve on minimal hosts

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
)

// Config holds runtime settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// DataFile is the JSON array file holding contact messages.
	DataFile string `yaml:"data_file"`
	// StoreBackend is "file" or "memory".
	StoreBackend string `yaml:"store_backend"`
	// FrontendURL is the allowed CORS origin; empty disables CORS.
	FrontendURL string `yaml:"frontend_url"`
	// LogLevel is DEBUG, INFO, WARN or ERROR.
	LogLevel string `yaml:"log_level"`
	// RateLimitPerMinute caps submissions per client IP; 0 disables.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	// MetricsEnabled exposes /metrics.
	MetricsEnabled bool `yaml:"metrics_enabled"`
	// Timezone is used to display message dates on the admin page.
	Timezone string `yaml:"timezone"`
}

// Default returns a Config with development defaults.
func Default() *Config {
	return &Config{
		Addr:               ":8080",
		DataFile:           "data/contact-messages.json",
		StoreBackend:       StoreFile,
		LogLevel:           "INFO",
		RateLimitPerMinute: 10,
		MetricsEnabled:     true,
		Timezone:           "Europe/Helsinki",
	}
}

// Load builds a Config from defaults, CONFIG_FILE and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML document at path onto c. Keys absent from
// the file keep their current values.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := os.LookupEnv("DATA_FILE"); ok {
		c.DataFile = v
	}
	if v, ok := os.LookupEnv("STORE_BACKEND"); ok {
		c.StoreBackend = strings.ToLower(v)
	}
	if v, ok := os.LookupEnv("FRONTEND_URL"); ok {
		c.FrontendURL = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv("RATE_LIMIT_PER_MINUTE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
		}
		c.RateLimitPerMinute = n
	}
	if v, ok := os.LookupEnv("METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("METRICS_ENABLED: %w", err)
		}
		c.MetricsEnabled = b
	}
	if v, ok := os.LookupEnv("TIMEZONE"); ok {
		c.Timezone = v
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("addr is required")
	}
	if c.StoreBackend != StoreFile && c.StoreBackend != StoreMemory {
		return fmt.Errorf("store_backend must be %q or %q, got %q", StoreFile, StoreMemory, c.StoreBackend)
	}
	if c.StoreBackend == StoreFile && c.DataFile == "" {
		return errors.New("data_file is required for the file store")
	}
	if c.RateLimitPerMinute < 0 {
		return errors.New("rate_limit_per_minute must not be negative")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty means UTC.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
