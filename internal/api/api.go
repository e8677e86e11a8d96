// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/spiral/internal/config"
	"github.com/JaimeStill/spiral/internal/infrastructure"
	"github.com/JaimeStill/spiral/pkg/middleware"
	"github.com/JaimeStill/spiral/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Middleware runs in order: CORS, request logging, body limit, identity,
// then route metrics closest to the router so the matched pattern is visible.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, runtime); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	m := module.New(runtime.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.MaxBytes(runtime.MaxBodySize))
	m.Use(runtime.Auth.Middleware())
	m.Use(runtime.Metrics.Middleware())

	return m, nil
}
