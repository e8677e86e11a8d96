package analyses_test

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/spiral/internal/analyses"
	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/internal/scoring"
)

func pure(id ontology.ID) scoring.ScoreVector {
	v := scoring.ScoreVector{}
	for _, c := range ontology.Default().IDs() {
		v[c] = 0
	}
	v[id] = 1
	return v
}

func TestNewEvolutionEmpty(t *testing.T) {
	o := ontology.Default()
	evo := analyses.NewEvolution(o, nil, 0)

	if len(evo.Timeline) != 0 {
		t.Errorf("timeline: got %d entries, want 0", len(evo.Timeline))
	}
	if evo.Trend == nil || len(evo.Trend) != 0 {
		t.Errorf("trend: got %v, want empty non-nil slice", evo.Trend)
	}
	for _, id := range o.IDs() {
		if math.Abs(evo.Average[id]-0.125) > 1e-9 {
			t.Errorf("average[%s]: got %f, want 0.125", id, evo.Average[id])
		}
	}
	if evo.Dominant != ontology.Beige {
		t.Errorf("dominant: got %q, want beige on a uniform profile", evo.Dominant)
	}
}

func TestNewEvolutionSingle(t *testing.T) {
	o := ontology.Default()
	items := []analyses.Analysis{
		{ID: uuid.New(), DominantCategory: ontology.Red, Scores: pure(ontology.Red)},
	}

	evo := analyses.NewEvolution(o, items, 7)

	if evo.Total != 7 {
		t.Errorf("total: got %d, want 7", evo.Total)
	}
	if len(evo.Trend) != 0 {
		t.Errorf("trend: got %d changes, want none for a single analysis", len(evo.Trend))
	}
	if evo.Dominant != ontology.Red {
		t.Errorf("dominant: got %q, want red", evo.Dominant)
	}
}

func TestNewEvolutionTrend(t *testing.T) {
	o := ontology.Default()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	items := []analyses.Analysis{
		{ID: uuid.New(), DominantCategory: ontology.Blue, Scores: pure(ontology.Blue), AnalyzedAt: base},
		{ID: uuid.New(), DominantCategory: ontology.Blue, Scores: pure(ontology.Blue), AnalyzedAt: base.Add(time.Hour)},
		{ID: uuid.New(), DominantCategory: ontology.Green, Scores: pure(ontology.Green), AnalyzedAt: base.Add(2 * time.Hour)},
	}

	evo := analyses.NewEvolution(o, items, len(items))

	if len(evo.Timeline) != 3 {
		t.Fatalf("timeline: got %d entries, want 3", len(evo.Timeline))
	}
	for i, snap := range evo.Timeline {
		if snap.ID != items[i].ID {
			t.Errorf("timeline[%d]: order not preserved", i)
		}
	}

	if evo.Dominant != ontology.Blue {
		t.Errorf("dominant: got %q, want blue", evo.Dominant)
	}
	if math.Abs(evo.Average[ontology.Blue]-2.0/3.0) > 1e-9 {
		t.Errorf("average blue: got %f, want 0.667", evo.Average[ontology.Blue])
	}

	if len(evo.Trend) != len(o.IDs()) {
		t.Fatalf("trend: got %d changes, want %d", len(evo.Trend), len(o.IDs()))
	}

	// Blue and Green move by the same magnitude; canonical order keeps Blue first.
	if evo.Trend[0].ID != ontology.Blue || evo.Trend[0].Change != -1 {
		t.Errorf("trend[0]: got %+v, want blue -1", evo.Trend[0])
	}
	if evo.Trend[1].ID != ontology.Green || evo.Trend[1].Change != 1 {
		t.Errorf("trend[1]: got %+v, want green +1", evo.Trend[1])
	}
}
