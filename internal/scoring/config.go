package scoring

import (
	"fmt"
	"os"
	"strconv"
)

// Default length thresholds for quick and strict analysis modes.
const (
	DefaultMinLength       = 10
	DefaultStrictMinLength = 20
)

// Config holds scoring thresholds and batch limits.
type Config struct {
	MinLength       int `toml:"min_length"`
	StrictMinLength int `toml:"strict_min_length"`
	BatchLimit      int `toml:"batch_limit"`
	MaxBatchSize    int `toml:"max_batch_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	MinLength       string
	StrictMinLength string
	BatchLimit      string
	MaxBatchSize    string
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
	if overlay.MinLength != 0 {
		c.MinLength = overlay.MinLength
	}
	if overlay.StrictMinLength != 0 {
		c.StrictMinLength = overlay.StrictMinLength
	}
	if overlay.BatchLimit != 0 {
		c.BatchLimit = overlay.BatchLimit
	}
	if overlay.MaxBatchSize != 0 {
		c.MaxBatchSize = overlay.MaxBatchSize
	}
}

func (c *Config) loadDefaults() {
	if c.MinLength == 0 {
		c.MinLength = DefaultMinLength
	}
	if c.StrictMinLength == 0 {
		c.StrictMinLength = DefaultStrictMinLength
	}
	if c.BatchLimit == 0 {
		c.BatchLimit = 4
	}
	if c.MaxBatchSize == 0 {
		c.MaxBatchSize = 50
	}
}

func (c *Config) loadEnv(env *Env) {
	setInt := func(name string, dst *int) {
		if name == "" {
			return
		}
		if v := os.Getenv(name); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt(env.MinLength, &c.MinLength)
	setInt(env.StrictMinLength, &c.StrictMinLength)
	setInt(env.BatchLimit, &c.BatchLimit)
	setInt(env.MaxBatchSize, &c.MaxBatchSize)
}

func (c *Config) validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("min_length must be positive")
	}
	if c.StrictMinLength < c.MinLength {
		return fmt.Errorf("strict_min_length cannot be less than min_length")
	}
	if c.BatchLimit < 1 {
		return fmt.Errorf("batch_limit must be positive")
	}
	if c.MaxBatchSize < 1 {
		return fmt.Errorf("max_batch_size must be positive")
	}
	return nil
}
