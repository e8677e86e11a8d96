// Package analyses implements the persisted analysis history. Each analysis
// is a scored profile owned by one user, with the original text archived to
// blob storage and the profile stored in PostgreSQL.
package analyses

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/internal/scoring"
)

// Analysis is a stored scoring result. It mirrors the analyses table schema.
type Analysis struct {
	ID               uuid.UUID           `json:"id"`
	UserID           string              `json:"user_id"`
	DominantCategory ontology.ID         `json:"dominant_category"`
	ColorName        string              `json:"color_name"`
	ColorHex         string              `json:"color_hex"`
	Summary          string              `json:"summary"`
	Scores           scoring.ScoreVector `json:"scores"`
	Counts           scoring.Counts      `json:"counts"`
	Feedback         scoring.Feedback    `json:"feedback"`
	TranscriptKey    string              `json:"transcript_key"`
	TextLength       int                 `json:"text_length"`
	AnalyzedAt       time.Time           `json:"analyzed_at"`
	CreatedAt        time.Time           `json:"created_at"`
}

// CreateCommand carries the text to score and persist.
// Strict applies the higher-confidence minimum length.
type CreateCommand struct {
	Text   string `json:"text"`
	Strict bool   `json:"strict"`
}

// Snapshot is one point on an evolution timeline.
type Snapshot struct {
	ID               uuid.UUID           `json:"id"`
	DominantCategory ontology.ID         `json:"dominant_category"`
	Scores           scoring.ScoreVector `json:"scores"`
	AnalyzedAt       time.Time           `json:"analyzed_at"`
}

// Evolution summarizes how a user's profile has moved over recent analyses.
// Timeline is oldest first. Trend compares the two most recent analyses and
// is empty when fewer than two exist.
type Evolution struct {
	Timeline []Snapshot            `json:"timeline"`
	Average  scoring.ScoreVector   `json:"average"`
	Dominant ontology.ID           `json:"dominant"`
	Trend    []scoring.StageChange `json:"trend"`
	Total    int                   `json:"total"`
}

// NewEvolution builds an Evolution from analyses ordered oldest first.
// Total is the user's overall analysis count, which may exceed len(items).
func NewEvolution(o *ontology.Ontology, items []Analysis, total int) Evolution {
	timeline := make([]Snapshot, len(items))
	vectors := make([]scoring.ScoreVector, len(items))
	for i, a := range items {
		timeline[i] = Snapshot{
			ID:               a.ID,
			DominantCategory: a.DominantCategory,
			Scores:           a.Scores,
			AnalyzedAt:       a.AnalyzedAt,
		}
		vectors[i] = a.Scores
	}

	avg := scoring.Average(o, vectors)

	trend := []scoring.StageChange{}
	if n := len(items); n >= 2 {
		trend = scoring.Trend(o, items[n-2].Scores, items[n-1].Scores)
	}

	return Evolution{
		Timeline: timeline,
		Average:  avg,
		Dominant: avg.Dominant(o),
		Trend:    trend,
		Total:    total,
	}
}
