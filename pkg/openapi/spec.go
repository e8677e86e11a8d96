package openapi

import (
	"net/http"
	"slices"
	"strings"
)

// Spec represents an OpenAPI 3.1 specification document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Tags       []*Tag               `json:"tags,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec creates a Spec with the given title, version, and default components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI: "3.1.0",
		Info: &Info{
			Title:   title,
			Version: version,
		},
		Components: NewComponents(),
		Paths:      make(map[string]*PathItem),
	}
}

// AddServer appends a server URL to the spec.
func (s *Spec) AddServer(url string) {
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddTag declares an operation tag with a description.
func (s *Spec) AddTag(name, description string) {
	s.Tags = append(s.Tags, &Tag{Name: name, Description: description})
}

// SetDescription sets the API description in the info object.
func (s *Spec) SetDescription(desc string) {
	s.Info.Description = desc
}

// Unresolved returns every component $ref in the document that names a
// schema or response not present in Components, sorted and deduplicated.
func (s *Spec) Unresolved() []string {
	var missing []string
	check := func(ref string) {
		if ref == "" {
			return
		}
		switch {
		case strings.HasPrefix(ref, schemaPrefix):
			if _, ok := s.Components.Schemas[strings.TrimPrefix(ref, schemaPrefix)]; ok {
				return
			}
		case strings.HasPrefix(ref, responsePrefix):
			if _, ok := s.Components.Responses[strings.TrimPrefix(ref, responsePrefix)]; ok {
				return
			}
		}
		missing = append(missing, ref)
	}

	var schema func(*Schema)
	schema = func(sc *Schema) {
		if sc == nil {
			return
		}
		check(sc.Ref)
		schema(sc.Items)
		for _, p := range sc.Properties {
			schema(p)
		}
	}
	content := func(c map[string]*MediaType) {
		for _, mt := range c {
			schema(mt.Schema)
		}
	}
	response := func(r *Response) {
		check(r.Ref)
		content(r.Content)
	}

	for _, sc := range s.Components.Schemas {
		schema(sc)
	}
	for _, r := range s.Components.Responses {
		response(r)
	}
	for _, item := range s.Paths {
		for _, op := range item.operations() {
			for _, p := range op.Parameters {
				schema(p.Schema)
			}
			if op.RequestBody != nil {
				content(op.RequestBody.Content)
			}
			for _, r := range op.Responses {
				response(r)
			}
		}
	}

	slices.Sort(missing)
	return slices.Compact(missing)
}

// ServeSpec returns a handler that serves pre-serialized JSON spec bytes.
func ServeSpec(specBytes []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		w.Write(specBytes)
	}
}
