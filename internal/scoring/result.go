package scoring

import (
	"time"

	"github.com/JaimeStill/spiral/internal/ontology"
)

// ScoreVector is a normalized distribution over every category.
type ScoreVector map[ontology.ID]float64

// Sum adds the scores in canonical category order.
func (v ScoreVector) Sum() float64 {
	var sum float64
	for _, id := range ontology.IDs() {
		sum += v[id]
	}
	return sum
}

// Dominant returns the id with the highest score. Ties go to the category
// that comes first in o's ordering.
func (v ScoreVector) Dominant(o *ontology.Ontology) ontology.ID {
	ids := o.IDs()
	best := ids[0]
	for _, id := range ids[1:] {
		if v[id] > v[best] {
			best = id
		}
	}
	return best
}

// Counts holds raw whole-word keyword matches per category.
type Counts map[ontology.ID]int

// Total returns the sum of all category counts.
func (c Counts) Total() int {
	var total int
	for _, n := range c {
		total += n
	}
	return total
}

// Resource is a suggested book, practice, or other follow-up.
type Resource struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// Feedback groups the narrative guidance derived from the dominant category.
type Feedback struct {
	Insights        []string   `json:"insights"`
	Recommendations []string   `json:"recommendations"`
	Resources       []Resource `json:"resources"`
}

// Result is the complete output of one scoring call.
// RawText and Counts are carried for persistence and are not part of the
// serialized profile.
type Result struct {
	RawText           string                               `json:"-"`
	Counts            Counts                               `json:"-"`
	Dominant          ontology.ID                          `json:"dominantColor"`
	Name              string                               `json:"colorName"`
	Hex               string                               `json:"colorHex"`
	Scores            ScoreVector                          `json:"scores"`
	Description       string                               `json:"description"`
	Summary           string                               `json:"summary"`
	Feedback          Feedback                             `json:"feedback"`
	ColorDescriptions map[ontology.ID]ontology.Description `json:"colorDescriptions"`
	Timestamp         time.Time                            `json:"timestamp"`
}
