// Package formatting parses and renders human-readable byte sizes used by
// request body limits.
package formatting

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// ErrInvalidSize is returned for byte size strings that cannot be parsed.
var ErrInvalidSize = errors.New("invalid byte size")

var units = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}

// FormatBytes renders n with base-1024 units, e.g. FormatBytes(1536, 1) is "1.5 KB".
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}
	precision = max(precision, 0)

	i := min(int(math.Log(float64(n))/math.Log(1024)), len(units)-1)
	size := float64(n) / math.Pow(1024, float64(i))

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + units[i]
}

// ParseBytes parses sizes such as "64KB", "1.5 mb", or "512" (bytes).
// Units are base-1024 and case-insensitive.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSize)
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})

	num, unit := s, "B"
	if split >= 0 {
		num = s[:split]
		unit = strings.ToUpper(strings.TrimSpace(s[split:]))
	}

	value, err := strconv.ParseFloat(num, 64)
	if err != nil || value < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, s)
	}

	idx := slices.Index(units, unit)
	if idx == -1 {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrInvalidSize, unit)
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}
