// Package ontology defines the fixed eight-stage developmental ontology used
// for profile scoring. The ontology is an immutable value: it is validated once
// at construction and only ever handed out as copies.
package ontology

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Size is the number of categories every ontology carries.
const Size = 8

// Ontology is an ordered, validated set of exactly Size categories.
type Ontology struct {
	categories []Category
	index      map[ID]int
}

// Description is the presentation view of a category.
type Description struct {
	Name        string `json:"name"`
	Hex         string `json:"hex"`
	Description string `json:"description"`
}

var defaultOntology = sync.OnceValue(func() *Ontology {
	o, err := New(defaultCategories())
	if err != nil {
		panic(fmt.Sprintf("ontology: invalid default categories: %v", err))
	}
	return o
})

// Default returns the process-wide built-in ontology.
func Default() *Ontology {
	return defaultOntology()
}

// New validates categories and builds an Ontology from them.
// Categories must cover every known ID exactly once in canonical order,
// carry all presentation fields, and hold a non-empty lexicon with no
// duplicate keywords. Keywords are stored lowercased.
func New(categories []Category) (*Ontology, error) {
	if len(categories) != Size {
		return nil, fmt.Errorf("%w: got %d categories, want %d", ErrInvalidOntology, len(categories), Size)
	}

	o := &Ontology{
		categories: make([]Category, len(categories)),
		index:      make(map[ID]int, len(categories)),
	}

	for i, c := range categories {
		if c.ID != ids[i] {
			return nil, fmt.Errorf("%w: position %d holds %q, want %q", ErrInvalidOntology, i, c.ID, ids[i])
		}
		if err := c.validate(); err != nil {
			return nil, err
		}

		lexicon := make([]string, len(c.Lexicon))
		for j, kw := range c.Lexicon {
			lexicon[j] = strings.ToLower(strings.TrimSpace(kw))
		}
		c.Lexicon = lexicon

		o.categories[i] = c
		o.index[c.ID] = i
	}

	return o, nil
}

// Len returns the number of categories.
func (o *Ontology) Len() int {
	return len(o.categories)
}

// IDs returns category identifiers in canonical order.
func (o *Ontology) IDs() []ID {
	out := make([]ID, len(o.categories))
	for i, c := range o.categories {
		out[i] = c.ID
	}
	return out
}

// Categories returns a deep copy of the categories in canonical order.
func (o *Ontology) Categories() []Category {
	out := make([]Category, len(o.categories))
	for i, c := range o.categories {
		out[i] = c.clone()
	}
	return out
}

// Category returns a copy of the category with the given id.
func (o *Ontology) Category(id ID) (Category, bool) {
	i, ok := o.index[id]
	if !ok {
		return Category{}, false
	}
	return o.categories[i].clone(), true
}

// Ordinal returns the position of id in canonical order, or -1 if unknown.
func (o *Ontology) Ordinal(id ID) int {
	if i, ok := o.index[id]; ok {
		return i
	}
	return -1
}

// Next returns the category that follows id on the developmental axis.
// The last category has no successor.
func (o *Ontology) Next(id ID) (Category, bool) {
	i, ok := o.index[id]
	if !ok || i+1 >= len(o.categories) {
		return Category{}, false
	}
	return o.categories[i+1].clone(), true
}

// Descriptions returns the presentation view of every category keyed by id.
func (o *Ontology) Descriptions() map[ID]Description {
	out := make(map[ID]Description, len(o.categories))
	for _, c := range o.categories {
		out[c.ID] = c.Describe()
	}
	return out
}

// Lexicons returns a copy of every lexicon keyed by category id.
func (o *Ontology) Lexicons() map[ID][]string {
	out := make(map[ID][]string, len(o.categories))
	for _, c := range o.categories {
		out[c.ID] = slices.Clone(c.Lexicon)
	}
	return out
}
