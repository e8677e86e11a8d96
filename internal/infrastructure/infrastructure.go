// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (logging, database, storage, identity,
// metrics) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/spiral/internal/config"
	"github.com/JaimeStill/spiral/pkg/auth"
	"github.com/JaimeStill/spiral/pkg/database"
	"github.com/JaimeStill/spiral/pkg/lifecycle"
	"github.com/JaimeStill/spiral/pkg/metrics"
	"github.com/JaimeStill/spiral/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Auth      auth.System
	Metrics   *metrics.Metrics
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Auth:      auth.New(&cfg.Auth, logger),
		Metrics:   metrics.New(),
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Auth.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("auth start failed: %w", err)
	}
	return nil
}

// Ready reports whether startup hooks have completed and identity
// verification can serve requests.
func (i *Infrastructure) Ready() bool {
	return lifecycle.AllReady(i.Lifecycle, i.Auth)
}
