package analyses

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/query"
	"github.com/JaimeStill/spiral/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "analyses", "a").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("dominant_category", "DominantCategory").
	Project("color_name", "ColorName").
	Project("color_hex", "ColorHex").
	Project("summary", "Summary").
	Project("scores", "Scores").
	Project("counts", "Counts").
	Project("feedback", "Feedback").
	Project("transcript_key", "TranscriptKey").
	Project("text_length", "TextLength").
	Project("analyzed_at", "AnalyzedAt").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "AnalyzedAt",
	Descending: true,
}

// Evolution window bounds.
const (
	DefaultEvolutionLimit = 10
	MaxEvolutionLimit     = 100
)

// Filters contains optional filtering criteria for analysis queries.
// Nil fields are ignored. Since is inclusive and Until is exclusive.
type Filters struct {
	DominantCategory *ontology.ID `json:"dominant_category,omitempty"`
	Since            *time.Time   `json:"since,omitempty"`
	Until            *time.Time   `json:"until,omitempty"`
}

// Validate reports whether the category is known and the time range is well formed.
func (f Filters) Validate() error {
	if f.DominantCategory != nil {
		if _, err := ontology.ParseID(string(*f.DominantCategory)); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
	}
	if f.Since != nil && f.Until != nil && !f.Since.Before(*f.Until) {
		return fmt.Errorf("%w: since must be before until", ErrInvalidFilter)
	}
	return nil
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.DominantCategory != nil {
		b.WhereEquals("DominantCategory", string(*f.DominantCategory))
	}
	if f.Since != nil {
		b.WhereAtLeast("AnalyzedAt", *f.Since)
	}
	if f.Until != nil {
		b.WhereBefore("AnalyzedAt", *f.Until)
	}
	return b
}

// FiltersFromQuery extracts filter values from URL query parameters.
// Timestamps accept RFC 3339 or a plain YYYY-MM-DD date.
func FiltersFromQuery(values url.Values) (Filters, error) {
	var f Filters

	if v := values.Get("dominant_category"); v != "" {
		id, err := ontology.ParseID(v)
		if err != nil {
			return f, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
		}
		f.DominantCategory = &id
	}

	if v := values.Get("since"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return f, fmt.Errorf("%w: since: %v", ErrInvalidFilter, err)
		}
		f.Since = &t
	}

	if v := values.Get("until"); v != "" {
		t, err := parseTime(v)
		if err != nil {
			return f, fmt.Errorf("%w: until: %v", ErrInvalidFilter, err)
		}
		f.Until = &t
	}

	return f, f.Validate()
}

// EvolutionLimitFromQuery reads the limit parameter, defaulting to
// DefaultEvolutionLimit and clamping to MaxEvolutionLimit.
func EvolutionLimitFromQuery(values url.Values) (int, error) {
	v := values.Get("limit")
	if v == "" {
		return DefaultEvolutionLimit, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: limit must be a positive integer", ErrInvalidFilter)
	}
	return min(n, MaxEvolutionLimit), nil
}

func parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, v)
}

func scanAnalysis(s repository.Scanner) (Analysis, error) {
	var (
		a        Analysis
		dominant string
		scores   repository.JSON[scoring.ScoreVector]
		counts   repository.JSON[scoring.Counts]
		feedback repository.JSON[scoring.Feedback]
	)

	err := s.Scan(
		&a.ID,
		&a.UserID,
		&dominant,
		&a.ColorName,
		&a.ColorHex,
		&a.Summary,
		&scores,
		&counts,
		&feedback,
		&a.TranscriptKey,
		&a.TextLength,
		&a.AnalyzedAt,
		&a.CreatedAt,
	)
	if err != nil {
		return a, err
	}

	a.DominantCategory = ontology.ID(dominant)
	a.Scores = scores.V
	a.Counts = counts.V
	a.Feedback = feedback.V
	return a, nil
}
