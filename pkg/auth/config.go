package auth

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DefaultDevHeader carries the caller identity when verification is disabled.
const DefaultDevHeader = "X-User-ID"

// Config holds identity verification settings.
type Config struct {
	Enabled          bool   `toml:"enabled"`
	IssuerURL        string `toml:"issuer_url"`
	ClientID         string `toml:"client_id"`
	DevHeader        string `toml:"dev_header"`
	DiscoveryTimeout string `toml:"discovery_timeout"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Enabled          string
	IssuerURL        string
	ClientID         string
	DevHeader        string
	DiscoveryTimeout string
}

// DiscoveryTimeoutDuration returns DiscoveryTimeout as a time.Duration.
func (c *Config) DiscoveryTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DiscoveryTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites fields from overlay. Enabled always applies; string
// fields only apply when non-empty.
func (c *Config) Merge(overlay *Config) {
	c.Enabled = overlay.Enabled

	if overlay.IssuerURL != "" {
		c.IssuerURL = overlay.IssuerURL
	}
	if overlay.ClientID != "" {
		c.ClientID = overlay.ClientID
	}
	if overlay.DevHeader != "" {
		c.DevHeader = overlay.DevHeader
	}
	if overlay.DiscoveryTimeout != "" {
		c.DiscoveryTimeout = overlay.DiscoveryTimeout
	}
}

func (c *Config) loadDefaults() {
	if c.DevHeader == "" {
		c.DevHeader = DefaultDevHeader
	}
	if c.DiscoveryTimeout == "" {
		c.DiscoveryTimeout = "10s"
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Enabled != "" {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
	}
	if env.IssuerURL != "" {
		if v := os.Getenv(env.IssuerURL); v != "" {
			c.IssuerURL = v
		}
	}
	if env.ClientID != "" {
		if v := os.Getenv(env.ClientID); v != "" {
			c.ClientID = v
		}
	}
	if env.DevHeader != "" {
		if v := os.Getenv(env.DevHeader); v != "" {
			c.DevHeader = v
		}
	}
	if env.DiscoveryTimeout != "" {
		if v := os.Getenv(env.DiscoveryTimeout); v != "" {
			c.DiscoveryTimeout = v
		}
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.DiscoveryTimeout); err != nil {
		return fmt.Errorf("invalid discovery_timeout: %w", err)
	}
	if !c.Enabled {
		return nil
	}
	if c.IssuerURL == "" {
		return fmt.Errorf("issuer_url required when auth is enabled")
	}
	if c.ClientID == "" {
		return fmt.Errorf("client_id required when auth is enabled")
	}
	return nil
}
