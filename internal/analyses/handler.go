package analyses

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/auth"
	"github.com/JaimeStill/spiral/pkg/handlers"
	"github.com/JaimeStill/spiral/pkg/pagination"
	"github.com/JaimeStill/spiral/pkg/routes"
)

// Handler provides HTTP endpoints for analysis operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	observer   scoring.Observer
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination config,
// and scoring observer. A nil observer discards observations.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	observer scoring.Observer,
) *Handler {
	if observer == nil {
		observer = scoring.NopObserver()
	}
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "analyses"),
		pagination: pagination,
		observer:   observer,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analyses",
		Routes: []routes.Route{
			{Method: "GET", Path: "", Handler: h.List},
			{Method: "POST", Path: "", Handler: h.Create},
			{Method: "POST", Path: "/search", Handler: h.Search},
			{Method: "GET", Path: "/evolution", Handler: h.Evolution},
			{Method: "GET", Path: "/{id}", Handler: h.Find},
			{Method: "GET", Path: "/{id}/transcript", Handler: h.Transcript},
			{Method: "DELETE", Path: "/{id}", Handler: h.Delete},
		},
	}
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.UserID(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthorized)
	}
	return id, ok
}

// Create scores the text in a CreateCommand body and persists the result.
// Returns 201 with the stored analysis.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	a, err := h.sys.Create(r.Context(), userID, cmd)
	if err != nil {
		if _, invalid := scoring.AsInvalidInput(err); invalid {
			scoring.RespondInvalidInput(w, h.logger, h.observer, err)
			return
		}
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.observer.ObserveAnalysis(string(a.DominantCategory), a.Counts.Total())
	handlers.RespondJSON(w, http.StatusCreated, a)
}

// List returns a paginated list of the caller's analyses with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters, err := FiltersFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	result, err := h.sys.List(r.Context(), userID, page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching analyses.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), userID, req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Evolution returns the caller's recent timeline, average profile, and latest trend.
func (h *Handler) Evolution(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	limit, err := EvolutionLimitFromQuery(r.URL.Query())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	evo, err := h.sys.Evolution(r.Context(), userID, limit)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, evo)
}

// Find returns a single analysis by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	a, err := h.sys.Find(r.Context(), userID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, a)
}

// Transcript streams the archived text of an analysis.
func (h *Handler) Transcript(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	rc, err := h.sys.Transcript(r.Context(), userID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, rc); err != nil {
		h.logger.Error("transcript stream failed", "id", id, "error", err)
	}
}

// Delete removes an analysis and its transcript by UUID path parameter.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.user(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidID)
		return
	}

	if err := h.sys.Delete(r.Context(), userID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
