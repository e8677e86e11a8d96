package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/auth"
	"github.com/JaimeStill/spiral/pkg/database"
	"github.com/JaimeStill/spiral/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvSpiralEnv             = "SPIRAL_ENV"
	EnvSpiralShutdownTimeout = "SPIRAL_SHUTDOWN_TIMEOUT"
	EnvSpiralVersion         = "SPIRAL_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "SPIRAL_DB_HOST",
	Port:            "SPIRAL_DB_PORT",
	Name:            "SPIRAL_DB_NAME",
	User:            "SPIRAL_DB_USER",
	Password:        "SPIRAL_DB_PASSWORD",
	SSLMode:         "SPIRAL_DB_SSL_MODE",
	MaxOpenConns:    "SPIRAL_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "SPIRAL_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "SPIRAL_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "SPIRAL_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	Provider:         "SPIRAL_STORAGE_PROVIDER",
	ContainerName:    "SPIRAL_STORAGE_CONTAINER_NAME",
	ConnectionString: "SPIRAL_STORAGE_CONNECTION_STRING",
	ServiceURL:       "SPIRAL_STORAGE_SERVICE_URL",
}

var scoringEnv = &scoring.Env{
	MinLength:       "SPIRAL_SCORING_MIN_LENGTH",
	StrictMinLength: "SPIRAL_SCORING_STRICT_MIN_LENGTH",
	BatchLimit:      "SPIRAL_SCORING_BATCH_LIMIT",
	MaxBatchSize:    "SPIRAL_SCORING_MAX_BATCH_SIZE",
}

var authEnv = &auth.Env{
	Enabled:          "SPIRAL_AUTH_ENABLED",
	IssuerURL:        "SPIRAL_AUTH_ISSUER_URL",
	ClientID:         "SPIRAL_AUTH_CLIENT_ID",
	DevHeader:        "SPIRAL_AUTH_DEV_HEADER",
	DiscoveryTimeout: "SPIRAL_AUTH_DISCOVERY_TIMEOUT",
}

// Config is the root configuration for the Spiral service.
type Config struct {
	Server          ServerConfig    `toml:"server"`
	Database        database.Config `toml:"database"`
	Storage         storage.Config  `toml:"storage"`
	API             APIConfig       `toml:"api"`
	Scoring         scoring.Config  `toml:"scoring"`
	Auth            auth.Config     `toml:"auth"`
	ShutdownTimeout string          `toml:"shutdown_timeout"`
	Version         string          `toml:"version"`
}

// Env returns the SPIRAL_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvSpiralEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return parseDuration(c.ShutdownTimeout)
}

// parseDuration reads a value already checked during validation.
func parseDuration(s string) time.Duration {
	d, _ := time.ParseDuration(s)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Scoring.Merge(&overlay.Scoring)
	c.Auth.Merge(&overlay.Auth)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Scoring.Finalize(scoringEnv); err != nil {
		return fmt.Errorf("scoring: %w", err)
	}
	if err := c.Auth.Finalize(authEnv); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvSpiralShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvSpiralVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvSpiralEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
