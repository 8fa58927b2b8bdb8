// Package config loads tzline settings from an optional YAML file and TZLINE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("invalid configuration")

// Config holds settings shared by the tzline binaries.
type Config struct {
	Port         string        `yaml:"port"`
	Timezones    []string      `yaml:"timezones"`
	FallbackHour float64       `yaml:"fallback_hour"`
	CacheTTL     time.Duration `yaml:"cache_ttl"`
	CacheSize    int           `yaml:"cache_size"`
	BarWidth     int           `yaml:"bar_width"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Port:         "8080",
		Timezones:    []string{"Asia/Ho_Chi_Minh", "Asia/Tokyo", "Europe/London", "America/New_York"},
		FallbackHour: 12,
		CacheTTL:     10 * time.Minute,
		CacheSize:    10_000,
		BarWidth:     48,
	}
}

// Load reads path on top of the defaults. An empty path returns the defaults;
// a path that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from TZLINE_PORT, TZLINE_TIMEZONES (comma separated),
// TZLINE_FALLBACK_HOUR, TZLINE_CACHE_TTL and TZLINE_BAR_WIDTH when they are set.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("TZLINE_PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("TZLINE_TIMEZONES"); v != "" {
		c.Timezones = SplitList(v)
	}
	if v := os.Getenv("TZLINE_FALLBACK_HOUR"); v != "" {
		hour, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("TZLINE_FALLBACK_HOUR: %w", err)
		}
		c.FallbackHour = hour
	}
	if v := os.Getenv("TZLINE_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("TZLINE_CACHE_TTL: %w", err)
		}
		c.CacheTTL = ttl
	}
	if v := os.Getenv("TZLINE_BAR_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TZLINE_BAR_WIDTH: %w", err)
		}
		c.BarWidth = width
	}
	return c.Validate()
}

// Validate checks ranges.
func (c *Config) Validate() error {
	if c.FallbackHour < 0 || c.FallbackHour >= 24 {
		return fmt.Errorf("%w: fallback_hour %v outside [0, 24)", ErrInvalid, c.FallbackHour)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: negative cache_ttl", ErrInvalid)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: negative cache_size", ErrInvalid)
	}
	if c.BarWidth < 0 {
		return fmt.Errorf("%w: negative bar_width", ErrInvalid)
	}
	return nil
}

// SplitList splits a comma-separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
