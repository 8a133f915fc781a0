// Package cliconfig holds CLI configuration for grove with the precedence
// defaults < config file < environment < flags.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/verdant-labs/grove/internal/catalog"
)

// Config holds CLI configuration for grove.
type Config struct {
	// CatalogPath is the plant catalog TOML file. Empty means the
	// built-in catalog.
	CatalogPath string

	// Seed seeds the growth duration generator. Zero means time-based.
	Seed int64

	// GrowthMin/GrowthMax bound randomized growth durations for catalogs
	// that do not configure their own range.
	GrowthMin time.Duration
	GrowthMax time.Duration

	// Watch enables the catalog file watcher during the session.
	Watch bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		GrowthMin: catalog.DefaultGrowthMin,
		GrowthMax: catalog.DefaultGrowthMax,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.GrowthMin <= 0 {
		return fmt.Errorf("growth-min must be positive")
	}
	if c.GrowthMax < c.GrowthMin {
		return fmt.Errorf("growth-max must be >= growth-min")
	}
	if c.Watch && c.CatalogPath == "" {
		return fmt.Errorf("watch requires a catalog file")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setInt64FromString parses a string to int64 and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setInt64FromString(flag, value string, dst *int64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = i
	return nil
}

// setInt64 sets an int64 value if non-zero and flag not changed.
func (s *configSetter) setInt64(flag string, value int64, dst *int64) {
	if value == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
