package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/spiral/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare bytes", "1024", 1024, false},
		{"bytes unit", "512B", 512, false},
		{"kilobytes", "64KB", 64 * 1024, false},
		{"megabytes", "1MB", 1024 * 1024, false},
		{"fractional", "1.5KB", 1536, false},
		{"lowercase unit", "10mb", 10 * 1024 * 1024, false},
		{"with space", "100 KB", 100 * 1024, false},
		{"surrounding whitespace", "  2MB  ", 2 * 1024 * 1024, false},
		{"zero", "0", 0, false},
		{"empty string", "", 0, true},
		{"unknown unit", "50XX", 0, true},
		{"no number", "MB", 0, true},
		{"negative", "-5MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if !errors.Is(err, formatting.ErrInvalidSize) {
					t.Fatalf("ParseBytes(%q) error = %v, want ErrInvalidSize", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{500, 0, "500 B"},
		{1024, 0, "1 KB"},
		{1536, 1, "1.5 KB"},
		{1024 * 1024, 0, "1 MB"},
		{1024, -3, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}
