package scoring_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/JaimeStill/spiral/internal/scoring"
)

func TestConfigDefaults(t *testing.T) {
	var cfg scoring.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.MinLength != scoring.DefaultMinLength {
		t.Errorf("min_length: got %d, want %d", cfg.MinLength, scoring.DefaultMinLength)
	}
	if cfg.StrictMinLength != scoring.DefaultStrictMinLength {
		t.Errorf("strict_min_length: got %d, want %d", cfg.StrictMinLength, scoring.DefaultStrictMinLength)
	}
	if cfg.BatchLimit != 4 {
		t.Errorf("batch_limit: got %d, want 4", cfg.BatchLimit)
	}
	if cfg.MaxBatchSize != 50 {
		t.Errorf("max_batch_size: got %d, want 50", cfg.MaxBatchSize)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	env := &scoring.Env{
		MinLength:       "TEST_SCORING_MIN_LENGTH",
		StrictMinLength: "TEST_SCORING_STRICT_MIN_LENGTH",
		BatchLimit:      "TEST_SCORING_BATCH_LIMIT",
		MaxBatchSize:    "TEST_SCORING_MAX_BATCH_SIZE",
	}

	t.Setenv("TEST_SCORING_MIN_LENGTH", "15")
	t.Setenv("TEST_SCORING_STRICT_MIN_LENGTH", "40")
	t.Setenv("TEST_SCORING_BATCH_LIMIT", "8")
	t.Setenv("TEST_SCORING_MAX_BATCH_SIZE", "100")

	var cfg scoring.Config
	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.MinLength != 15 {
		t.Errorf("min_length: got %d, want 15", cfg.MinLength)
	}
	if cfg.StrictMinLength != 40 {
		t.Errorf("strict_min_length: got %d, want 40", cfg.StrictMinLength)
	}
	if cfg.BatchLimit != 8 {
		t.Errorf("batch_limit: got %d, want 8", cfg.BatchLimit)
	}
	if cfg.MaxBatchSize != 100 {
		t.Errorf("max_batch_size: got %d, want 100", cfg.MaxBatchSize)
	}
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  scoring.Config
	}{
		{"negative min length", scoring.Config{MinLength: -1}},
		{"strict below min", scoring.Config{MinLength: 30, StrictMinLength: 20}},
		{"negative batch limit", scoring.Config{BatchLimit: -2}},
		{"negative batch size", scoring.Config{MaxBatchSize: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := scoring.Config{MinLength: 10, StrictMinLength: 20, BatchLimit: 4, MaxBatchSize: 50}
	base.Merge(&scoring.Config{StrictMinLength: 30})

	if base.MinLength != 10 {
		t.Errorf("min_length: got %d, want 10", base.MinLength)
	}
	if base.StrictMinLength != 30 {
		t.Errorf("strict_min_length: got %d, want 30", base.StrictMinLength)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", &scoring.InvalidInputError{Reason: scoring.ReasonEmpty}, http.StatusBadRequest},
		{"empty batch", scoring.ErrEmptyBatch, http.StatusBadRequest},
		{"batch too large", scoring.ErrBatchTooLarge, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoring.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInvalidInputErrorMessage(t *testing.T) {
	empty := &scoring.InvalidInputError{Reason: scoring.ReasonEmpty, MinLength: 10}
	if empty.Error() != "no text provided for analysis" {
		t.Errorf("empty: got %q", empty.Error())
	}

	short := &scoring.InvalidInputError{Reason: scoring.ReasonTooShort, MinLength: 20}
	if short.Error() != "text too short for analysis: provide at least 20 characters" {
		t.Errorf("too short: got %q", short.Error())
	}
}
