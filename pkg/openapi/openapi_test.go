package openapi_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/spiral/pkg/openapi"
)

func TestNewSpec(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Test API" || spec.Info.Version != "1.0.0" {
		t.Errorf("info: got %+v", spec.Info)
	}
	if spec.Components == nil || spec.Paths == nil {
		t.Fatal("components and paths should be initialized")
	}

	spec.AddServer("/api")
	spec.SetDescription("A test API")

	if len(spec.Servers) != 1 || spec.Servers[0].URL != "/api" {
		t.Errorf("servers: got %+v", spec.Servers)
	}
	if spec.Info.Description != "A test API" {
		t.Errorf("description: got %s", spec.Info.Description)
	}
}

func TestRefs(t *testing.T) {
	if got := openapi.SchemaRef("Analysis").Ref; got != "#/components/schemas/Analysis" {
		t.Errorf("schema ref: got %s", got)
	}
	if got := openapi.ResponseRef("NotFound").Ref; got != "#/components/responses/NotFound" {
		t.Errorf("response ref: got %s", got)
	}

	rb := openapi.RequestBodyJSON("CreateCommand", true)
	if !rb.Required {
		t.Error("required should be true")
	}
	if ct, ok := rb.Content["application/json"]; !ok || ct.Schema.Ref != "#/components/schemas/CreateCommand" {
		t.Errorf("request body content: got %+v", rb.Content)
	}

	resp := openapi.ResponseJSON("Created", "Analysis")
	if ct, ok := resp.Content["application/json"]; !ok || ct.Schema.Ref != "#/components/schemas/Analysis" {
		t.Errorf("response content: got %+v", resp.Content)
	}
}

func TestParams(t *testing.T) {
	p := openapi.PathParam("id", "Analysis ID")
	if p.In != "path" || !p.Required {
		t.Errorf("path param: got in=%s required=%v", p.In, p.Required)
	}
	if p.Schema.Type != "string" || p.Schema.Format != "uuid" {
		t.Errorf("schema: got type=%s format=%s", p.Schema.Type, p.Schema.Format)
	}

	q := openapi.QueryParam("limit", "integer", "Window size", false)
	if q.In != "query" || q.Required || q.Schema.Type != "integer" {
		t.Errorf("query param: got %+v", q)
	}
}

func TestNewComponentsDefaults(t *testing.T) {
	c := openapi.NewComponents()

	for _, name := range []string{"Error", "PageRequest"} {
		if _, ok := c.Schemas[name]; !ok {
			t.Errorf("missing default schema: %s", name)
		}
	}
	for _, name := range []string{"BadRequest", "Unauthorized", "NotFound", "Conflict", "Unavailable"} {
		r, ok := c.Responses[name]
		if !ok {
			t.Errorf("missing default response: %s", name)
			continue
		}
		if r.Content["application/json"].Schema.Ref != "#/components/schemas/Error" {
			t.Errorf("%s: expected Error schema ref", name)
		}
	}

	c.AddSchemas(map[string]*openapi.Schema{"Analysis": {Type: "object"}})
	c.AddResponses(map[string]*openapi.Response{"InvalidInput": {Description: "Rejected text"}})

	if _, ok := c.Schemas["Analysis"]; !ok {
		t.Error("Analysis schema not added")
	}
	if _, ok := c.Responses["InvalidInput"]; !ok {
		t.Error("InvalidInput response not added")
	}
	if _, ok := c.Schemas["PageRequest"]; !ok {
		t.Error("default PageRequest schema should still exist")
	}
}

func TestServeSpec(t *testing.T) {
	spec := openapi.NewSpec("Test", "1.0.0")
	spec.Paths["/scoring/analyze"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Summary:   "Analyze",
			Responses: map[int]*openapi.Response{200: {Description: "ok"}},
		},
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	rec := httptest.NewRecorder()
	openapi.ServeSpec(data)(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	res := rec.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %s", ct)
	}

	body, _ := io.ReadAll(res.Body)
	var parsed struct {
		OpenAPI string                               `json:"openapi"`
		Paths   map[string]map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		t.Fatalf("body unmarshal failed: %v", err)
	}
	if parsed.OpenAPI != "3.1.0" {
		t.Errorf("openapi: got %s", parsed.OpenAPI)
	}
	if _, ok := parsed.Paths["/scoring/analyze"]["post"]["responses"]; !ok {
		t.Error("expected post operation with responses")
	}
}

func TestConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := openapi.Config{}
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.Title != "Spiral API" {
			t.Errorf("title: got %s, want Spiral API", cfg.Title)
		}
		if cfg.Description == "" {
			t.Error("description should default")
		}
	})

	t.Run("env", func(t *testing.T) {
		t.Setenv("TEST_TITLE", "Custom API")
		t.Setenv("TEST_DESC", "Custom desc")

		cfg := openapi.Config{}
		if err := cfg.Finalize(&openapi.Env{Title: "TEST_TITLE", Description: "TEST_DESC"}); err != nil {
			t.Fatalf("finalize failed: %v", err)
		}
		if cfg.Title != "Custom API" || cfg.Description != "Custom desc" {
			t.Errorf("got %+v", cfg)
		}
	})

	t.Run("blank title from env", func(t *testing.T) {
		t.Setenv("TEST_TITLE", "   ")

		cfg := openapi.Config{Title: "  "}
		if err := cfg.Finalize(&openapi.Env{Title: "TEST_TITLE"}); err == nil {
			t.Error("expected error for blank title")
		}
	})

	t.Run("merge", func(t *testing.T) {
		base := openapi.Config{Title: "Base", Description: "Keep"}
		base.Merge(&openapi.Config{Title: "Overlay"})

		if base.Title != "Overlay" || base.Description != "Keep" {
			t.Errorf("got %+v", base)
		}
	})
}

func TestUnresolved(t *testing.T) {
	spec := openapi.NewSpec("Spiral API", "0.1.0")
	spec.Components.AddSchemas(map[string]*openapi.Schema{
		"Result": {Type: "object", Properties: map[string]*openapi.Schema{
			"scores": openapi.SchemaRef("ScoreVector"),
		}},
	})
	spec.Paths["/scoring/analyze"] = &openapi.PathItem{
		Post: &openapi.Operation{
			RequestBody: openapi.RequestBodyJSON("AnalyzeRequest", true),
			Responses: map[int]*openapi.Response{
				200: openapi.ResponseJSON("Profile", "Result"),
				400: openapi.ResponseRef("BadRequest"),
				503: openapi.ResponseRef("Missing"),
			},
		},
	}

	want := []string{
		"#/components/responses/Missing",
		"#/components/schemas/AnalyzeRequest",
		"#/components/schemas/ScoreVector",
	}
	if diff := cmp.Diff(want, spec.Unresolved()); diff != "" {
		t.Errorf("unresolved mismatch (-want +got):\n%s", diff)
	}
}

func TestPathItemOperation(t *testing.T) {
	get := &openapi.Operation{Summary: "find"}
	del := &openapi.Operation{Summary: "delete"}
	item := &openapi.PathItem{Get: get, Delete: del}

	if item.Operation("GET") != get || item.Operation("DELETE") != del {
		t.Error("operation lookup returned the wrong operation")
	}
	if item.Operation("POST") != nil || item.Operation("PATCH") != nil {
		t.Error("undefined methods should return nil")
	}
}

func TestResponseHelpers(t *testing.T) {
	arr := openapi.ArrayJSON("Ontology", "Category")
	if s := arr.Content["application/json"].Schema; s.Type != "array" || s.Items.Ref != "#/components/schemas/Category" {
		t.Errorf("array response schema: got %+v", s)
	}

	text := openapi.ResponseText("Original text")
	if s := text.Content["text/plain"].Schema; s.Type != "string" {
		t.Errorf("text response schema: got %+v", s)
	}

	spec := openapi.NewSpec("Spiral API", "0.1.0")
	spec.AddTag("Scoring", "Stateless keyword scoring")
	if len(spec.Tags) != 1 || spec.Tags[0].Name != "Scoring" {
		t.Errorf("tags: got %+v", spec.Tags)
	}
}

func TestMarshalJSONRejectsUnresolved(t *testing.T) {
	spec := openapi.NewSpec("Spiral API", "0.1.0")
	spec.Paths["/scoring/analyze"] = &openapi.PathItem{
		Post: &openapi.Operation{
			Responses: map[int]*openapi.Response{200: openapi.ResponseJSON("Profile", "Missing")},
		},
	}

	if _, err := openapi.MarshalJSON(spec); err == nil {
		t.Fatal("expected error for unresolved schema ref")
	}
}
