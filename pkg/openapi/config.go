package openapi

import (
	"fmt"
	"os"
	"strings"
)

// Config holds OpenAPI metadata for spec generation.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Title       string
	Description string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.Title != "" {
		c.Title = overlay.Title
	}
	if overlay.Description != "" {
		c.Description = overlay.Description
	}
}

func (c *Config) loadDefaults() {
	if c.Title == "" {
		c.Title = "Spiral API"
	}
	if c.Description == "" {
		c.Description = "Keyword scoring of free text against the eight Spiral Dynamics value systems."
	}
}

func (c *Config) loadEnv(env *Env) {
	for name, dst := range map[string]*string{
		env.Title:       &c.Title,
		env.Description: &c.Description,
	} {
		if name == "" {
			continue
		}
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("openapi title required")
	}
	return nil
}
