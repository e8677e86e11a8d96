package analyses_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/JaimeStill/spiral/internal/analyses"
	"github.com/JaimeStill/spiral/internal/ontology"
	"github.com/JaimeStill/spiral/internal/scoring"
	"github.com/JaimeStill/spiral/pkg/auth"
	"github.com/JaimeStill/spiral/pkg/pagination"
	"github.com/JaimeStill/spiral/pkg/routes"
	"github.com/JaimeStill/spiral/pkg/storage"
)

type mockSystem struct {
	createFn     func(ctx context.Context, userID string, cmd analyses.CreateCommand) (*analyses.Analysis, error)
	listFn       func(ctx context.Context, userID string, page pagination.PageRequest, f analyses.Filters) (*pagination.PageResult[analyses.Analysis], error)
	findFn       func(ctx context.Context, userID string, id uuid.UUID) (*analyses.Analysis, error)
	transcriptFn func(ctx context.Context, userID string, id uuid.UUID) (io.ReadCloser, error)
	deleteFn     func(ctx context.Context, userID string, id uuid.UUID) error
	evolutionFn  func(ctx context.Context, userID string, limit int) (*analyses.Evolution, error)
}

func (m *mockSystem) Handler() *analyses.Handler { return nil }

func (m *mockSystem) Create(ctx context.Context, userID string, cmd analyses.CreateCommand) (*analyses.Analysis, error) {
	return m.createFn(ctx, userID, cmd)
}

func (m *mockSystem) List(ctx context.Context, userID string, page pagination.PageRequest, f analyses.Filters) (*pagination.PageResult[analyses.Analysis], error) {
	return m.listFn(ctx, userID, page, f)
}

func (m *mockSystem) Find(ctx context.Context, userID string, id uuid.UUID) (*analyses.Analysis, error) {
	return m.findFn(ctx, userID, id)
}

func (m *mockSystem) Transcript(ctx context.Context, userID string, id uuid.UUID) (io.ReadCloser, error) {
	return m.transcriptFn(ctx, userID, id)
}

func (m *mockSystem) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return m.deleteFn(ctx, userID, id)
}

func (m *mockSystem) Evolution(ctx context.Context, userID string, limit int) (*analyses.Evolution, error) {
	return m.evolutionFn(ctx, userID, limit)
}

type countingObserver struct {
	analyses   []string
	rejections []string
}

func (o *countingObserver) ObserveAnalysis(dominant string, _ int) {
	o.analyses = append(o.analyses, dominant)
}

func (o *countingObserver) ObserveRejection(reason string) {
	o.rejections = append(o.rejections, reason)
}

func testPagination() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func mount(sys analyses.System, obs scoring.Observer) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := analyses.NewHandler(sys, logger, testPagination(), obs)
	mux := http.NewServeMux()
	routes.Register(mux, h.Routes())
	return mux
}

func asUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(auth.WithUserID(req.Context(), userID))
}

func sample(userID string) *analyses.Analysis {
	return &analyses.Analysis{
		ID:               uuid.MustParse("7d3c2a1e-5c4b-4e8f-9a6d-1b2c3d4e5f60"),
		UserID:           userID,
		DominantCategory: ontology.Orange,
		ColorName:        "Orange",
		ColorHex:         "#FF8C00",
		Summary:          "summary",
		Counts:           scoring.Counts{ontology.Orange: 3},
		AnalyzedAt:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestRoutes(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	g := analyses.NewHandler(&mockSystem{}, logger, testPagination(), nil).Routes()

	if g.Prefix != "/analyses" {
		t.Errorf("prefix: got %q, want /analyses", g.Prefix)
	}

	got := routes.Patterns(g)
	want := []string{
		"GET /analyses",
		"POST /analyses",
		"POST /analyses/search",
		"GET /analyses/evolution",
		"GET /analyses/{id}",
		"GET /analyses/{id}/transcript",
		"DELETE /analyses/{id}",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestAnonymousRequestsRejected(t *testing.T) {
	h := mount(&mockSystem{}, nil)

	tests := []struct {
		method string
		path   string
	}{
		{"GET", "/analyses"},
		{"POST", "/analyses"},
		{"GET", "/analyses/evolution"},
		{"GET", "/analyses/7d3c2a1e-5c4b-4e8f-9a6d-1b2c3d4e5f60"},
		{"DELETE", "/analyses/7d3c2a1e-5c4b-4e8f-9a6d-1b2c3d4e5f60"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	var gotUser string
	var gotCmd analyses.CreateCommand

	sys := &mockSystem{
		createFn: func(_ context.Context, userID string, cmd analyses.CreateCommand) (*analyses.Analysis, error) {
			gotUser, gotCmd = userID, cmd
			return sample(userID), nil
		},
	}
	obs := &countingObserver{}
	h := mount(sys, obs)

	body := `{"text":"my goal is to win and achieve success","strict":true}`
	req := asUser(httptest.NewRequest("POST", "/analyses", strings.NewReader(body)), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if gotUser != "alice" {
		t.Errorf("user: got %q, want alice", gotUser)
	}
	if !gotCmd.Strict {
		t.Error("strict flag not forwarded")
	}

	var a analyses.Analysis
	if err := json.NewDecoder(rec.Body).Decode(&a); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if a.DominantCategory != ontology.Orange {
		t.Errorf("dominant: got %q, want orange", a.DominantCategory)
	}
	if diff := cmp.Diff([]string{"orange"}, obs.analyses); diff != "" {
		t.Errorf("observed analyses mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateRejected(t *testing.T) {
	sys := &mockSystem{
		createFn: func(context.Context, string, analyses.CreateCommand) (*analyses.Analysis, error) {
			return nil, &scoring.InvalidInputError{Reason: scoring.ReasonTooShort, MinLength: 10}
		},
	}
	obs := &countingObserver{}
	h := mount(sys, obs)

	req := asUser(httptest.NewRequest("POST", "/analyses", strings.NewReader(`{"text":"hi"}`)), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}

	var resp scoring.InvalidInputResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Reason != scoring.ReasonTooShort || resp.MinLength != 10 {
		t.Errorf("response: got %+v", resp)
	}
	if len(obs.analyses) != 0 {
		t.Errorf("rejection counted as analysis: %v", obs.analyses)
	}
	if diff := cmp.Diff([]string{string(scoring.ReasonTooShort)}, obs.rejections); diff != "" {
		t.Errorf("observed rejections mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateMalformedBody(t *testing.T) {
	h := mount(&mockSystem{}, nil)

	req := asUser(httptest.NewRequest("POST", "/analyses", strings.NewReader("{")), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestList(t *testing.T) {
	var gotPage pagination.PageRequest
	var gotFilters analyses.Filters

	sys := &mockSystem{
		listFn: func(_ context.Context, _ string, page pagination.PageRequest, f analyses.Filters) (*pagination.PageResult[analyses.Analysis], error) {
			gotPage, gotFilters = page, f
			r := pagination.NewPageResult([]analyses.Analysis{*sample("alice")}, 1, page.Page, page.PageSize)
			return &r, nil
		},
	}
	h := mount(sys, nil)

	req := asUser(httptest.NewRequest("GET", "/analyses?page=2&page_size=5&dominant_category=orange&since=2026-01-01", nil), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	if gotPage.Page != 2 || gotPage.PageSize != 5 {
		t.Errorf("page: got %d/%d, want 2/5", gotPage.Page, gotPage.PageSize)
	}
	if gotFilters.DominantCategory == nil || *gotFilters.DominantCategory != ontology.Orange {
		t.Errorf("dominant filter: got %v", gotFilters.DominantCategory)
	}
	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if gotFilters.Since == nil || !gotFilters.Since.Equal(want) {
		t.Errorf("since filter: got %v, want %v", gotFilters.Since, want)
	}

	var result pagination.PageResult[analyses.Analysis]
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if result.Total != 1 || len(result.Data) != 1 {
		t.Errorf("result: got total %d with %d items", result.Total, len(result.Data))
	}
}

func TestListInvalidFilter(t *testing.T) {
	h := mount(&mockSystem{}, nil)

	for _, q := range []string{
		"dominant_category=magenta",
		"since=yesterday",
		"since=2026-02-01&until=2026-01-01",
	} {
		t.Run(q, func(t *testing.T) {
			req := asUser(httptest.NewRequest("GET", "/analyses?"+q, nil), "alice")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	var gotPage pagination.PageRequest

	sys := &mockSystem{
		listFn: func(_ context.Context, _ string, page pagination.PageRequest, _ analyses.Filters) (*pagination.PageResult[analyses.Analysis], error) {
			gotPage = page
			r := pagination.NewPageResult[analyses.Analysis](nil, 0, page.Page, page.PageSize)
			return &r, nil
		},
	}
	h := mount(sys, nil)

	body := `{"page":0,"page_size":500,"search":"achieve","sort":"-AnalyzedAt"}`
	req := asUser(httptest.NewRequest("POST", "/analyses/search", strings.NewReader(body)), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if gotPage.Page != 1 {
		t.Errorf("page: got %d, want 1", gotPage.Page)
	}
	if gotPage.PageSize != 100 {
		t.Errorf("page size: got %d, want clamp to 100", gotPage.PageSize)
	}
	if gotPage.Search == nil || *gotPage.Search != "achieve" {
		t.Errorf("search: got %v", gotPage.Search)
	}
	if len(gotPage.Sort) != 1 || !gotPage.Sort[0].Descending {
		t.Errorf("sort: got %+v", gotPage.Sort)
	}
}

func TestEvolution(t *testing.T) {
	var gotLimit int
	sys := &mockSystem{
		evolutionFn: func(_ context.Context, _ string, limit int) (*analyses.Evolution, error) {
			gotLimit = limit
			evo := analyses.NewEvolution(ontology.Default(), nil, 0)
			return &evo, nil
		},
	}
	h := mount(sys, nil)

	tests := []struct {
		query string
		code  int
		limit int
	}{
		{"", http.StatusOK, analyses.DefaultEvolutionLimit},
		{"?limit=3", http.StatusOK, 3},
		{"?limit=1000", http.StatusOK, analyses.MaxEvolutionLimit},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=abc", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			gotLimit = 0
			req := asUser(httptest.NewRequest("GET", "/analyses/evolution"+tt.query, nil), "alice")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("status: got %d, want %d", rec.Code, tt.code)
			}
			if gotLimit != tt.limit {
				t.Errorf("limit: got %d, want %d", gotLimit, tt.limit)
			}
		})
	}
}

func TestFind(t *testing.T) {
	target := sample("alice")

	sys := &mockSystem{
		findFn: func(_ context.Context, userID string, id uuid.UUID) (*analyses.Analysis, error) {
			if userID != "alice" || id != target.ID {
				return nil, analyses.ErrNotFound
			}
			return target, nil
		},
	}
	h := mount(sys, nil)

	tests := []struct {
		name string
		user string
		path string
		code int
	}{
		{"owner", "alice", "/analyses/" + target.ID.String(), http.StatusOK},
		{"other user", "bob", "/analyses/" + target.ID.String(), http.StatusNotFound},
		{"unknown id", "alice", "/analyses/" + uuid.NewString(), http.StatusNotFound},
		{"malformed id", "alice", "/analyses/not-a-uuid", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asUser(httptest.NewRequest("GET", tt.path, nil), tt.user)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Errorf("status: got %d, want %d", rec.Code, tt.code)
			}
		})
	}
}

func TestMalformedID(t *testing.T) {
	h := mount(&mockSystem{}, nil)

	for _, tt := range []struct{ method, path string }{
		{"GET", "/analyses/not-a-uuid"},
		{"GET", "/analyses/not-a-uuid/transcript"},
		{"DELETE", "/analyses/not-a-uuid"},
	} {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := asUser(httptest.NewRequest(tt.method, tt.path, nil), "alice")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}

			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if body["error"] != analyses.ErrInvalidID.Error() {
				t.Errorf("error: got %q, want %q", body["error"], analyses.ErrInvalidID.Error())
			}
		})
	}
}

func TestTranscript(t *testing.T) {
	sys := &mockSystem{
		transcriptFn: func(_ context.Context, _ string, id uuid.UUID) (io.ReadCloser, error) {
			if id == uuid.Nil {
				return nil, storage.ErrNotFound
			}
			return io.NopCloser(strings.NewReader("original text")), nil
		},
	}
	h := mount(sys, nil)

	req := asUser(httptest.NewRequest("GET", "/analyses/"+uuid.NewString()+"/transcript", nil), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type: got %q", ct)
	}
	if rec.Body.String() != "original text" {
		t.Errorf("body: got %q", rec.Body.String())
	}

	req = asUser(httptest.NewRequest("GET", "/analyses/"+uuid.Nil.String()+"/transcript", nil), "alice")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("missing blob status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDelete(t *testing.T) {
	deleted := map[uuid.UUID]bool{}
	sys := &mockSystem{
		deleteFn: func(_ context.Context, _ string, id uuid.UUID) error {
			if deleted[id] {
				return analyses.ErrNotFound
			}
			deleted[id] = true
			return nil
		},
	}
	h := mount(sys, nil)
	path := "/analyses/" + uuid.NewString()

	req := asUser(httptest.NewRequest("DELETE", path, nil), "alice")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}

	req = asUser(httptest.NewRequest("DELETE", path, nil), "alice")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
}
