package scoring

import (
	"errors"
	"fmt"
	"net/http"
)

// Reason describes why input text was rejected.
type Reason string

// Rejection reasons.
const (
	ReasonEmpty    Reason = "empty"
	ReasonTooShort Reason = "too_short"
)

// Domain errors for scoring operations.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrEmptyBatch    = errors.New("batch contains no texts")
	ErrBatchTooLarge = errors.New("batch exceeds maximum size")
)

// InvalidInputError reports text that is empty or shorter than MinLength
// after trimming. It matches ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	Reason    Reason `json:"reason"`
	MinLength int    `json:"min_length"`
}

func (e *InvalidInputError) Error() string {
	if e.Reason == ReasonEmpty {
		return "no text provided for analysis"
	}
	return fmt.Sprintf("text too short for analysis: provide at least %d characters", e.MinLength)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// AsInvalidInput extracts an InvalidInputError from err's chain.
func AsInvalidInput(err error) (*InvalidInputError, bool) {
	var ie *InvalidInputError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// MapHTTPStatus maps scoring domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidInput) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrEmptyBatch) || errors.Is(err, ErrBatchTooLarge) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
