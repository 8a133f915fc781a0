package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (GROVE_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("catalog", os.Getenv("GROVE_CATALOG"), &cfg.CatalogPath)

	if err := s.setInt64FromString("seed", os.Getenv("GROVE_SEED"), &cfg.Seed); err != nil {
		return err
	}
	if err := s.setDuration("growth-min", os.Getenv("GROVE_GROWTH_MIN"), &cfg.GrowthMin); err != nil {
		return err
	}
	if err := s.setDuration("growth-max", os.Getenv("GROVE_GROWTH_MAX"), &cfg.GrowthMax); err != nil {
		return err
	}

	s.setBoolFromString("watch", os.Getenv("GROVE_WATCH"), &cfg.Watch)

	return nil
}
