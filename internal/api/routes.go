package api

import (
	"net/http"

	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	runtime *Runtime,
) error {
	groups, err := routeGroups(domain, runtime)
	if err != nil {
		return err
	}

	routes.Register(mux, groups...)
	runtime.Logger.Debug("routes registered", "patterns", routes.Patterns(groups...))
	return nil
}

func routeGroups(domain *Domain, runtime *Runtime) ([]routes.Group, error) {
	spec, err := specHandler(runtime)
	if err != nil {
		return nil, err
	}

	scoringHandler := scoring.NewHandler(
		domain.Scoring,
		runtime.Scoring,
		runtime.Logger,
		runtime.Metrics,
	)

	return []routes.Group{
		scoringHandler.Routes(),
		domain.Analyses.Handler().Routes(),
		{
			Routes: []routes.Route{
				{Method: "GET", Path: "/openapi.json", Handler: spec},
			},
		},
	}, nil
}
