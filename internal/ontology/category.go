package ontology

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ID identifies one of the eight developmental stages.
type ID string

// Stages ordered low to high on the developmental axis.
const (
	Beige     ID = "beige"
	Purple    ID = "purple"
	Red       ID = "red"
	Blue      ID = "blue"
	Orange    ID = "orange"
	Green     ID = "green"
	Yellow    ID = "yellow"
	Turquoise ID = "turquoise"
)

var ids = []ID{
	Beige,
	Purple,
	Red,
	Blue,
	Orange,
	Green,
	Yellow,
	Turquoise,
}

// Errors returned when parsing identifiers or building an ontology.
var (
	ErrUnknownID       = errors.New("unknown category id")
	ErrInvalidOntology = errors.New("invalid ontology")
)

// IDs returns all known identifiers in canonical order.
func IDs() []ID {
	return slices.Clone(ids)
}

// ParseID validates s as a known category identifier. Matching ignores case
// and surrounding whitespace.
func ParseID(s string) (ID, error) {
	v := ID(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(ids, v) {
		return "", fmt.Errorf("%w: %q", ErrUnknownID, s)
	}
	return v, nil
}

// UnmarshalJSON rejects identifiers outside the closed set.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseID(raw)
	if err != nil {
		return err
	}
	*id = v
	return nil
}

// Category is a single stage of the ontology.
// Label is the color word ("Blue"), Theme the stage theme ("Order").
type Category struct {
	ID          ID       `json:"id"`
	Label       string   `json:"label"`
	Theme       string   `json:"theme"`
	Hex         string   `json:"hex"`
	Description string   `json:"description"`
	Lexicon     []string `json:"lexicon"`
}

// Name returns the display name, e.g. "Blue - Order".
func (c Category) Name() string {
	return c.Label + " - " + c.Theme
}

// Describe returns the presentation view of the category.
func (c Category) Describe() Description {
	return Description{
		Name:        c.Name(),
		Hex:         c.Hex,
		Description: c.Description,
	}
}

func (c Category) clone() Category {
	c.Lexicon = slices.Clone(c.Lexicon)
	return c
}

func (c Category) validate() error {
	switch {
	case c.Label == "":
		return fmt.Errorf("%w: %s: label required", ErrInvalidOntology, c.ID)
	case c.Theme == "":
		return fmt.Errorf("%w: %s: theme required", ErrInvalidOntology, c.ID)
	case c.Hex == "":
		return fmt.Errorf("%w: %s: hex required", ErrInvalidOntology, c.ID)
	case c.Description == "":
		return fmt.Errorf("%w: %s: description required", ErrInvalidOntology, c.ID)
	case len(c.Lexicon) == 0:
		return fmt.Errorf("%w: %s: lexicon required", ErrInvalidOntology, c.ID)
	}

	seen := make(map[string]struct{}, len(c.Lexicon))
	for _, kw := range c.Lexicon {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" {
			return fmt.Errorf("%w: %s: empty keyword", ErrInvalidOntology, c.ID)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: %s: duplicate keyword %q", ErrInvalidOntology, c.ID, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}
