// Package config reads scurve settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/alexanderramin/scurve/internal/curve"
)

// Config holds all runtime settings.
type Config struct {
	DBPath        string
	TimeZone      string
	Location      *time.Location
	LogUseCases   bool
	MetricsFile   string
	SmoothDisplay bool
	// Warnings collects values that were ignored in favor of defaults.
	Warnings []string
}

// DefaultConfig returns a Config with defaults; DBPath is left empty until Load
// resolves the home directory.
func DefaultConfig() Config {
	loc, err := curve.LoadLocation(curve.DefaultTimeZone)
	if err != nil {
		loc = time.UTC
	}
	return Config{
		TimeZone:      curve.DefaultTimeZone,
		Location:      loc,
		SmoothDisplay: true,
	}
}

// Load reads configuration from environment variables, falling back to defaults
// for any unset or invalid values.
func Load() (Config, error) {
	cfg := DefaultConfig()

	cfg.DBPath = os.Getenv("SCURVE_DB")
	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".scurve", "scurve.db")
	}

	if v := os.Getenv("SCURVE_TZ"); v != "" {
		if err := cfg.SetTimeZone(v); err != nil {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("SCURVE_TZ=%q ignored: %v", v, err))
		}
	}
	if v := os.Getenv("SCURVE_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SCURVE_SMOOTH_DISPLAY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SmoothDisplay = b
		} else {
			cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("SCURVE_SMOOTH_DISPLAY=%q ignored", v))
		}
	}
	cfg.MetricsFile = os.Getenv("SCURVE_METRICS_FILE")

	return cfg, nil
}

// SetTimeZone switches day bucketing to the named IANA zone.
func (c *Config) SetTimeZone(name string) error {
	loc, err := curve.LoadLocation(name)
	if err != nil {
		return err
	}
	c.TimeZone = loc.String()
	c.Location = loc
	return nil
}
