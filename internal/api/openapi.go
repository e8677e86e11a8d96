package api

import (
	"net/http"

	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/pkg/openapi"
)

func categoryEnum(o *ontology.Ontology) []any {
	ids := o.IDs()
	enum := make([]any, len(ids))
	for i, id := range ids {
		enum[i] = string(id)
	}
	return enum
}

func scoreVectorSchema(o *ontology.Ontology) *openapi.Schema {
	props := make(map[string]*openapi.Schema, len(o.IDs()))
	for _, id := range o.IDs() {
		props[string(id)] = &openapi.Schema{Type: "number", Format: "double"}
	}
	return &openapi.Schema{
		Type:        "object",
		Description: "Share of keyword matches per category. Values sum to 1.",
		Properties:  props,
	}
}

func schemas(o *ontology.Ontology) map[string]*openapi.Schema {
	category := &openapi.Schema{Type: "string", Enum: categoryEnum(o)}
	stringList := &openapi.Schema{Type: "array", Items: &openapi.Schema{Type: "string"}}
	minText := 1

	return map[string]*openapi.Schema{
		"CategoryID":  category,
		"ScoreVector": scoreVectorSchema(o),
		"Category": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          openapi.SchemaRef("CategoryID"),
				"label":       {Type: "string"},
				"theme":       {Type: "string"},
				"hex":         {Type: "string", Pattern: "^#[0-9A-Fa-f]{6}$"},
				"description": {Type: "string"},
				"lexicon":     stringList,
			},
		},
		"Feedback": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"insights":        stringList,
				"recommendations": stringList,
				"resources": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"title": {Type: "string"},
							"type":  {Type: "string"},
						},
					},
				},
			},
		},
		"AnalyzeRequest": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text":   {Type: "string", MinLength: &minText},
				"strict": {Type: "boolean", Description: "Apply the strict minimum length", Default: false},
			},
		},
		"BatchRequest": {
			Type:     "object",
			Required: []string{"texts"},
			Properties: map[string]*openapi.Schema{
				"texts":  stringList,
				"strict": {Type: "boolean", Default: false},
			},
		},
		"Result": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"dominantColor":     openapi.SchemaRef("CategoryID"),
				"colorName":         {Type: "string"},
				"colorHex":          {Type: "string"},
				"scores":            openapi.SchemaRef("ScoreVector"),
				"description":       {Type: "string"},
				"summary":           {Type: "string"},
				"feedback":          openapi.SchemaRef("Feedback"),
				"colorDescriptions": {Type: "object"},
				"timestamp":         {Type: "string", Format: "date-time"},
			},
		},
		"BatchItem": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"index":  {Type: "integer"},
				"result": openapi.SchemaRef("Result"),
				"error":  {Type: "string"},
				"reason": {Type: "string", Enum: []any{"empty", "too_short"}},
			},
		},
		"InvalidInput": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"error":      {Type: "string"},
				"reason":     {Type: "string", Enum: []any{"empty", "too_short"}},
				"min_length": {Type: "integer"},
			},
		},
		"CreateCommand": {
			Type:     "object",
			Required: []string{"text"},
			Properties: map[string]*openapi.Schema{
				"text":   {Type: "string", MinLength: &minText},
				"strict": {Type: "boolean", Default: false},
			},
		},
		"Analysis": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":                {Type: "string", Format: "uuid"},
				"user_id":           {Type: "string"},
				"dominant_category": openapi.SchemaRef("CategoryID"),
				"color_name":        {Type: "string"},
				"color_hex":         {Type: "string"},
				"summary":           {Type: "string"},
				"scores":            openapi.SchemaRef("ScoreVector"),
				"counts":            {Type: "object"},
				"feedback":          openapi.SchemaRef("Feedback"),
				"transcript_key":    {Type: "string"},
				"text_length":       {Type: "integer"},
				"analyzed_at":       {Type: "string", Format: "date-time"},
				"created_at":        {Type: "string", Format: "date-time"},
			},
		},
		"AnalysisPage": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"data":         {Type: "array", Items: openapi.SchemaRef("Analysis")},
				"total":        {Type: "integer"},
				"page":         {Type: "integer"},
				"page_size":    {Type: "integer"},
				"total_pages":  {Type: "integer"},
				"has_next":     {Type: "boolean"},
				"has_previous": {Type: "boolean"},
			},
		},
		"AnalysisSearch": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"page":              {Type: "integer"},
				"page_size":         {Type: "integer"},
				"search":            {Type: "string"},
				"sort":              {Type: "string"},
				"dominant_category": openapi.SchemaRef("CategoryID"),
				"since":             {Type: "string", Format: "date-time"},
				"until":             {Type: "string", Format: "date-time"},
			},
		},
		"Evolution": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"timeline": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"id":                {Type: "string", Format: "uuid"},
							"dominant_category": openapi.SchemaRef("CategoryID"),
							"scores":            openapi.SchemaRef("ScoreVector"),
							"analyzed_at":       {Type: "string", Format: "date-time"},
						},
					},
				},
				"average":  openapi.SchemaRef("ScoreVector"),
				"dominant": openapi.SchemaRef("CategoryID"),
				"trend": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"id":       openapi.SchemaRef("CategoryID"),
							"previous": {Type: "number"},
							"latest":   {Type: "number"},
							"change":   {Type: "number"},
						},
					},
				},
				"total": {Type: "integer"},
			},
		},
	}
}

func invalidInput() *openapi.Response {
	return openapi.ResponseJSON("Text rejected before scoring", "InvalidInput")
}

func paths() map[string]*openapi.PathItem {
	id := openapi.PathParam("id", "Analysis ID")
	unauthorized := openapi.ResponseRef("Unauthorized")

	return map[string]*openapi.PathItem{
		"/scoring/categories": {
			Get: &openapi.Operation{
				Summary: "List categories in canonical order",
				Tags:    []string{"Scoring"},
				Responses: map[int]*openapi.Response{
					200: openapi.ArrayJSON("Ontology", "Category"),
				},
			},
		},
		"/scoring/analyze": {
			Post: &openapi.Operation{
				Summary:     "Score text without persisting",
				Tags:        []string{"Scoring"},
				RequestBody: openapi.RequestBodyJSON("AnalyzeRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Profile", "Result"),
					400: invalidInput(),
				},
			},
		},
		"/scoring/batch": {
			Post: &openapi.Operation{
				Summary:     "Score several texts concurrently",
				Tags:        []string{"Scoring"},
				RequestBody: openapi.RequestBodyJSON("BatchRequest", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ArrayJSON("Per-item outcomes in input order", "BatchItem"),
					400: openapi.ResponseRef("BadRequest"),
				},
			},
		},
		"/analyses": {
			Get: &openapi.Operation{
				Summary: "List the caller's analyses, newest first",
				Tags:    []string{"Analyses"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("page", "integer", "Page number", false),
					openapi.QueryParam("page_size", "integer", "Results per page", false),
					openapi.QueryParam("search", "string", "Search summary and color name", false),
					openapi.QueryParam("sort", "string", "Sort fields, e.g. -AnalyzedAt", false),
					openapi.QueryParam("dominant_category", "string", "Filter by dominant category", false),
					openapi.QueryParam("since", "string", "Inclusive lower bound (RFC 3339 or YYYY-MM-DD)", false),
					openapi.QueryParam("until", "string", "Exclusive upper bound (RFC 3339 or YYYY-MM-DD)", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of analyses", "AnalysisPage"),
					400: openapi.ResponseRef("BadRequest"),
					401: unauthorized,
				},
			},
			Post: &openapi.Operation{
				Summary:     "Score and persist text",
				Tags:        []string{"Analyses"},
				RequestBody: openapi.RequestBodyJSON("CreateCommand", true),
				Responses: map[int]*openapi.Response{
					201: openapi.ResponseJSON("Stored analysis", "Analysis"),
					400: invalidInput(),
					401: unauthorized,
					409: openapi.ResponseRef("Conflict"),
					503: openapi.ResponseRef("Unavailable"),
				},
			},
		},
		"/analyses/search": {
			Post: &openapi.Operation{
				Summary:     "Search the caller's analyses",
				Tags:        []string{"Analyses"},
				RequestBody: openapi.RequestBodyJSON("AnalysisSearch", true),
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Page of analyses", "AnalysisPage"),
					400: openapi.ResponseRef("BadRequest"),
					401: unauthorized,
				},
			},
		},
		"/analyses/evolution": {
			Get: &openapi.Operation{
				Summary: "Timeline, average profile, and latest trend",
				Tags:    []string{"Analyses"},
				Parameters: []*openapi.Parameter{
					openapi.QueryParam("limit", "integer", "Number of recent analyses (default 10, max 100)", false),
				},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Evolution", "Evolution"),
					400: openapi.ResponseRef("BadRequest"),
					401: unauthorized,
				},
			},
		},
		"/analyses/{id}": {
			Get: &openapi.Operation{
				Summary:    "Find an analysis",
				Tags:       []string{"Analyses"},
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseJSON("Analysis", "Analysis"),
					401: unauthorized,
					404: openapi.ResponseRef("NotFound"),
				},
			},
			Delete: &openapi.Operation{
				Summary:    "Delete an analysis and its transcript",
				Tags:       []string{"Analyses"},
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					204: {Description: "Deleted"},
					401: unauthorized,
					404: openapi.ResponseRef("NotFound"),
				},
			},
		},
		"/analyses/{id}/transcript": {
			Get: &openapi.Operation{
				Summary:    "Download the archived text",
				Tags:       []string{"Analyses"},
				Parameters: []*openapi.Parameter{id},
				Responses: map[int]*openapi.Response{
					200: openapi.ResponseText("Original text"),
					401: unauthorized,
					404: openapi.ResponseRef("NotFound"),
					503: openapi.ResponseRef("Unavailable"),
				},
			},
		},
	}
}

// NewSpec builds the OpenAPI document for the API module.
func NewSpec(runtime *Runtime) *openapi.Spec {
	spec := openapi.NewSpec(runtime.OpenAPI.Title, runtime.Version)
	spec.SetDescription(runtime.OpenAPI.Description)
	spec.AddServer(runtime.BasePath)
	spec.AddTag("Scoring", "Stateless keyword scoring")
	spec.AddTag("Analyses", "Persisted analysis history for the caller")
	spec.Components.AddSchemas(schemas(runtime.Ontology))
	spec.Paths = paths()
	return spec
}

func specHandler(runtime *Runtime) (http.HandlerFunc, error) {
	data, err := openapi.MarshalJSON(NewSpec(runtime))
	if err != nil {
		return nil, err
	}
	return openapi.ServeSpec(data), nil
}
