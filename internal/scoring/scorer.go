// Package scoring turns free-form reflective text into a normalized
// eight-stage developmental profile. A Scorer is immutable once built and
// safe for concurrent use.
package scoring

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JaimeStill/spiral/internal/ontology"
)

// Scorer matches text against an ontology's lexicons and builds a Result.
type Scorer struct {
	ontology  *ontology.Ontology
	matchers  []categoryMatcher
	minLength int
	now       func() time.Time
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithMinLength sets the minimum trimmed length, in characters, of accepted text.
func WithMinLength(n int) Option {
	return func(s *Scorer) {
		s.minLength = n
	}
}

// WithClock sets the source of result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// New builds a Scorer for o, compiling one whole-word matcher per keyword.
func New(o *ontology.Ontology, opts ...Option) *Scorer {
	s := &Scorer{
		ontology:  o,
		matchers:  compileMatchers(o),
		minLength: DefaultMinLength,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// With returns a copy of s with opts applied. The copy shares compiled matchers.
func (s *Scorer) With(opts ...Option) *Scorer {
	c := *s
	for _, opt := range opts {
		opt(&c)
	}
	return &c
}

// Ontology returns the ontology the scorer matches against.
func (s *Scorer) Ontology() *ontology.Ontology {
	return s.ontology
}

// MinLength returns the minimum accepted trimmed text length.
func (s *Scorer) MinLength() int {
	return s.minLength
}

// Validate reports whether text is long enough to score.
func (s *Scorer) Validate(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return &InvalidInputError{Reason: ReasonEmpty, MinLength: s.minLength}
	}
	if utf8.RuneCountInString(trimmed) < s.minLength {
		return &InvalidInputError{Reason: ReasonTooShort, MinLength: s.minLength}
	}
	return nil
}

// Count returns raw whole-word keyword matches per category.
// Every category is present in the result, including those with no matches.
func (s *Scorer) Count(text string) Counts {
	normalized := normalize(text)
	counts := make(Counts, len(s.matchers))
	for _, m := range s.matchers {
		counts[m.id] = m.count(normalized)
	}
	return counts
}

// Normalize converts raw counts to a distribution. With no matches at all,
// every category receives an equal share.
func (s *Scorer) Normalize(counts Counts) ScoreVector {
	ids := s.ontology.IDs()
	total := counts.Total()

	scores := make(ScoreVector, len(ids))
	for _, id := range ids {
		if total == 0 {
			scores[id] = 1 / float64(len(ids))
			continue
		}
		scores[id] = float64(counts[id]) / float64(total)
	}
	return scores
}

// Score validates text and returns its complete profile.
// The only error is *InvalidInputError.
func (s *Scorer) Score(text string) (*Result, error) {
	if err := s.Validate(text); err != nil {
		return nil, err
	}

	counts := s.Count(text)
	scores := s.Normalize(counts)
	dominant := scores.Dominant(s.ontology)

	category, _ := s.ontology.Category(dominant)
	summary, feedback := s.narrate(category)

	return &Result{
		RawText:           text,
		Counts:            counts,
		Dominant:          dominant,
		Name:              category.Name(),
		Hex:               category.Hex,
		Scores:            scores,
		Description:       category.Description,
		Summary:           summary,
		Feedback:          feedback,
		ColorDescriptions: s.ontology.Descriptions(),
		Timestamp:         s.now().UTC(),
	}, nil
}

// Modes pairs the quick and strict scorers derived from one Config.
type Modes struct {
	Quick  *Scorer
	Strict *Scorer
}

// NewModes derives quick and strict scorers from s using the thresholds in cfg.
func NewModes(s *Scorer, cfg Config) Modes {
	return Modes{
		Quick:  s.With(WithMinLength(cfg.MinLength)),
		Strict: s.With(WithMinLength(cfg.StrictMinLength)),
	}
}

// Select returns the strict scorer when strict is set, otherwise the quick one.
func (m Modes) Select(strict bool) *Scorer {
	if strict {
		return m.Strict
	}
	return m.Quick
}
