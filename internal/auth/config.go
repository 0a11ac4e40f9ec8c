package auth

import (
	"fmt"
	"os"
)

// Config configures bearer token verification.
type Config struct {
	// Secret is the HS256 signing key.
	Secret   string `toml:"secret"`
	Issuer   string `toml:"issuer"`
	Audience string `toml:"audience"`
}

// Env maps environment variable names for auth configuration.
type Env struct {
	Secret   string
	Issuer   string
	Audience string
}

func (c *Config) Finalize(env *Env) error {
	if env != nil {
		c.loadEnv(env)
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("secret must be at least 16 characters")
	}
	return nil
}

func (c *Config) Merge(overlay *Config) {
	if overlay.Secret != "" {
		c.Secret = overlay.Secret
	}
	if overlay.Issuer != "" {
		c.Issuer = overlay.Issuer
	}
	if overlay.Audience != "" {
		c.Audience = overlay.Audience
	}
}

func (c *Config) loadEnv(env *Env) {
	if v := os.Getenv(env.Secret); env.Secret != "" && v != "" {
		c.Secret = v
	}
	if v := os.Getenv(env.Issuer); env.Issuer != "" && v != "" {
		c.Issuer = v
	}
	if v := os.Getenv(env.Audience); env.Audience != "" && v != "" {
		c.Audience = v
	}
}
