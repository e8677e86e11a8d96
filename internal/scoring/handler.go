package scoring

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/spiral/pkg/handlers"
	"github.com/JaimeStill/spiral/pkg/routes"
)

// Observer receives scoring outcomes for metrics collection.
type Observer interface {
	ObserveAnalysis(dominant string, matches int)
	ObserveRejection(reason string)
}

type nopObserver struct{}

// NopObserver returns an Observer that discards observations.
func NopObserver() Observer { return nopObserver{} }

func (nopObserver) ObserveAnalysis(string, int) {}
func (nopObserver) ObserveRejection(string)     {}

// AnalyzeRequest is the body of the analyze endpoint.
// Strict applies the higher-confidence minimum length.
type AnalyzeRequest struct {
	Text   string `json:"text"`
	Strict bool   `json:"strict"`
}

// BatchRequest is the body of the batch endpoint.
type BatchRequest struct {
	Texts  []string `json:"texts"`
	Strict bool     `json:"strict"`
}

// InvalidInputResponse is written when text is rejected.
type InvalidInputResponse struct {
	Error     string `json:"error"`
	Reason    Reason `json:"reason"`
	MinLength int    `json:"min_length"`
}

// Handler provides HTTP endpoints for stateless scoring.
type Handler struct {
	modes    Modes
	cfg      Config
	logger   *slog.Logger
	observer Observer
}

// NewHandler creates a Handler serving the quick and strict modes.
// A nil observer discards observations.
func NewHandler(modes Modes, cfg Config, logger *slog.Logger, observer Observer) *Handler {
	if observer == nil {
		observer = NopObserver()
	}
	return &Handler{
		modes:    modes,
		cfg:      cfg,
		logger:   logger.With("handler", "scoring"),
		observer: observer,
	}
}

// Routes returns the route group definition for scoring endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/scoring",
		Routes: []routes.Route{
			{Method: "GET", Path: "/categories", Handler: h.Categories},
			{Method: "POST", Path: "/analyze", Handler: h.Analyze},
			{Method: "POST", Path: "/batch", Handler: h.Batch},
		},
	}
}

// Categories returns the ontology in canonical order.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.modes.Quick.Ontology().Categories())
}

// Analyze scores the text in an AnalyzeRequest body without persisting it.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.modes.Select(req.Strict).Score(req.Text)
	if err != nil {
		RespondInvalidInput(w, h.logger, h.observer, err)
		return
	}

	h.observer.ObserveAnalysis(string(result.Dominant), result.Counts.Total())
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Batch scores every text in a BatchRequest body concurrently.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if len(req.Texts) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrEmptyBatch)
		return
	}
	if len(req.Texts) > h.cfg.MaxBatchSize {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrBatchTooLarge)
		return
	}

	items, err := h.modes.Select(req.Strict).ScoreBatch(r.Context(), req.Texts, h.cfg.BatchLimit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	for _, item := range items {
		if item.Result != nil {
			h.observer.ObserveAnalysis(string(item.Result.Dominant), item.Result.Counts.Total())
		} else {
			h.observer.ObserveRejection(string(item.Reason))
		}
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}

// RespondInvalidInput writes an InvalidInputResponse for scoring rejections
// and falls back to a plain error response for anything else.
func RespondInvalidInput(w http.ResponseWriter, logger *slog.Logger, observer Observer, err error) {
	ie, ok := AsInvalidInput(err)
	if !ok {
		handlers.RespondError(w, logger, MapHTTPStatus(err), err)
		return
	}

	if observer != nil {
		observer.ObserveRejection(string(ie.Reason))
	}
	logger.Info("input rejected", "reason", ie.Reason, "min_length", ie.MinLength)
	handlers.RespondJSON(w, http.StatusBadRequest, InvalidInputResponse{
		Error:     ie.Error(),
		Reason:    ie.Reason,
		MinLength: ie.MinLength,
	})
}
