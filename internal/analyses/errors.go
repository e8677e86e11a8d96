package analyses

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/storage"
)

// Domain errors for analysis operations.
var (
	ErrNotFound      = errors.New("analysis not found")
	ErrDuplicate     = errors.New("analysis already exists")
	ErrUnauthorized  = errors.New("caller identity required")
	ErrInvalidFilter = errors.New("invalid analysis filter")
	ErrInvalidID     = errors.New("invalid analysis id")
)

// MapHTTPStatus maps analysis domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) || errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrInvalidFilter) || errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, storage.ErrUnavailable) {
		return http.StatusServiceUnavailable
	}
	return scoring.MapHTTPStatus(err)
}
