package rules

import (
	"fmt"
	"os"
	"time"
)

// Config holds rule defaults and the storage refresh interval.
type Config struct {
	// Defaults override the built-in value of a rule when no row exists for it.
	Defaults map[string]bool `toml:"defaults"`
	// RefreshInterval bounds how long a loaded snapshot is reused. "0s" reads storage on every request.
	RefreshInterval string `toml:"refresh_interval"`
}

// Env maps environment variable names for rules configuration.
type Env struct {
	RefreshInterval string
}

func (c *Config) RefreshIntervalDuration() time.Duration {
	d, _ := time.ParseDuration(c.RefreshInterval)
	return d
}

// Snapshot returns Defaults with the configured overrides applied.
func (c *Config) Snapshot() Snapshot {
	s := Defaults()
	for name, v := range c.Defaults {
		s[Rule(name)] = v
	}
	return s
}

func (c *Config) Finalize(env *Env) error {
	if c.RefreshInterval == "" {
		c.RefreshInterval = "30s"
	}
	if env != nil && env.RefreshInterval != "" {
		if v := os.Getenv(env.RefreshInterval); v != "" {
			c.RefreshInterval = v
		}
	}

	if d, err := time.ParseDuration(c.RefreshInterval); err != nil || d < 0 {
		return fmt.Errorf("invalid refresh_interval %q", c.RefreshInterval)
	}
	for name := range c.Defaults {
		if _, err := Parse(name); err != nil {
			return fmt.Errorf("defaults: %w", err)
		}
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.RefreshInterval != "" {
		c.RefreshInterval = overlay.RefreshInterval
	}
	if len(overlay.Defaults) > 0 && c.Defaults == nil {
		c.Defaults = make(map[string]bool, len(overlay.Defaults))
	}
	for name, v := range overlay.Defaults {
		c.Defaults[name] = v
	}
}
