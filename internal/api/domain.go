package api

import (
	"github.com/JaimeStill/spiral/internal/analyses"
	"github.com/JaimeStill/spiral/internal/scoring"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Scoring  scoring.Modes
	Analyses analyses.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	modes := scoring.NewModes(scoring.New(runtime.Ontology), runtime.Scoring)

	analysesSystem := analyses.New(
		runtime.Database.Connection(),
		modes,
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
		runtime.Metrics,
	)

	return &Domain{
		Scoring:  modes,
		Analyses: analysesSystem,
	}
}
