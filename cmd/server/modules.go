package main

import (
	"encoding/json"
	"net/http"

	"github.com/JaimeStill/spiral/internal/api"
	"github.com/JaimeStill/spiral/internal/config"
	"github.com/JaimeStill/spiral/internal/infrastructure"
	"github.com/JaimeStill/spiral/pkg/module"
)

// Modules holds the HTTP modules mounted by the server.
type Modules struct {
	API *module.Module
}

// NewModules creates the API module from the shared infrastructure.
func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{API: apiModule}, nil
}

// Mount registers every module on the router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

type readiness struct {
	Status  string          `json:"status"`
	Checks  map[string]bool `json:"checks"`
	Version string          `json:"version,omitempty"`
}

func buildRouter(infra *infrastructure.Infrastructure, version string) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "ok"})
	}))

	router.HandleNative("GET /readyz", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := readiness{
			Status:  "ready",
			Version: version,
			Checks: map[string]bool{
				"lifecycle": infra.Lifecycle.Ready(),
				"auth":      infra.Auth.Ready(),
				"database":  infra.Database.Ready() || infra.Database.Ping(r.Context()) == nil,
			},
		}

		status := http.StatusOK
		for _, ok := range body.Checks {
			if !ok {
				body.Status = "not ready"
				status = http.StatusServiceUnavailable
				break
			}
		}
		writeStatus(w, status, body)
	}))

	router.HandleNative("GET /metrics", infra.Metrics.Handler())

	return router
}

func writeStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
