package scoring

import (
	"cmp"
	"math"
	"slices"

	"github.com/JaimeStill/spiral/internal/ontology"
)

// StageChange is the movement of one category between two profiles.
type StageChange struct {
	ID       ontology.ID `json:"id"`
	Previous float64     `json:"previous"`
	Latest   float64     `json:"latest"`
	Change   float64     `json:"change"`
}

// Uniform returns the equal-share distribution over o.
func Uniform(o *ontology.Ontology) ScoreVector {
	ids := o.IDs()
	v := make(ScoreVector, len(ids))
	for _, id := range ids {
		v[id] = 1 / float64(len(ids))
	}
	return v
}

// Trend compares two profiles and returns every category's change, largest
// absolute movement first. Equal movements keep canonical order.
func Trend(o *ontology.Ontology, previous, latest ScoreVector) []StageChange {
	ids := o.IDs()
	changes := make([]StageChange, len(ids))
	for i, id := range ids {
		changes[i] = StageChange{
			ID:       id,
			Previous: previous[id],
			Latest:   latest[id],
			Change:   latest[id] - previous[id],
		}
	}

	slices.SortStableFunc(changes, func(a, b StageChange) int {
		return cmp.Compare(math.Abs(b.Change), math.Abs(a.Change))
	})

	return changes
}

// Average returns the mean of vectors. An empty input yields Uniform(o).
func Average(o *ontology.Ontology, vectors []ScoreVector) ScoreVector {
	if len(vectors) == 0 {
		return Uniform(o)
	}

	ids := o.IDs()
	avg := make(ScoreVector, len(ids))
	for _, v := range vectors {
		for _, id := range ids {
			avg[id] += v[id]
		}
	}
	for _, id := range ids {
		avg[id] /= float64(len(vectors))
	}
	return avg
}
