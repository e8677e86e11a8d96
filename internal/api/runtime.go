package api

import (
	"github.com/JaimeStill/spiral/internal/config"
	"github.com/JaimeStill/spiral/internal/infrastructure"
	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/openapi"
	"github.com/JaimeStill/spiral/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Ontology    *ontology.Ontology
	Scoring     scoring.Config
	Pagination  pagination.Config
	OpenAPI     openapi.Config
	BasePath    string
	MaxBodySize int64
	Version     string
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
			Auth:      infra.Auth,
			Metrics:   infra.Metrics,
		},
		Ontology:    ontology.Default(),
		Scoring:     cfg.Scoring,
		Pagination:  cfg.API.Pagination,
		OpenAPI:     cfg.API.OpenAPI,
		BasePath:    cfg.API.BasePath,
		MaxBodySize: cfg.API.MaxBodySizeBytes(),
		Version:     cfg.Version,
	}
}
