package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/spiral/pkg/metrics"
)

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status: got %d, want 200", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return string(body)
}

func TestMiddlewareRecordsRoutePattern(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := m.Middleware()(mux)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/def", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	out := scrape(t, m)

	want := []string{
		`spiral_http_requests_total{route="GET /items/{id}",status="404"} 2`,
		`spiral_http_requests_total{route="unmatched",status="404"} 1`,
		`spiral_http_request_duration_seconds_count{route="GET /items/{id}"} 2`,
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in scrape output", w)
		}
	}
}

func TestMiddlewareSupportsFlush(t *testing.T) {
	m := metrics.New()

	var flushErr error
	h := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chunk"))
		flushErr = http.NewResponseController(w).Flush()
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analyses/x/transcript", nil))

	if flushErr != nil {
		t.Fatalf("flush through recorder: %v", flushErr)
	}
	if !rec.Flushed {
		t.Error("underlying writer was not flushed")
	}
}

func TestObserveAnalysis(t *testing.T) {
	m := metrics.New()

	m.ObserveAnalysis("blue", 4)
	m.ObserveAnalysis("blue", 2)
	m.ObserveAnalysis("green", 0)
	m.ObserveRejection("too_short")

	out := scrape(t, m)

	want := []string{
		`spiral_analyses_total{dominant="blue"} 2`,
		`spiral_analyses_total{dominant="green"} 1`,
		`spiral_rejections_total{reason="too_short"} 1`,
		`spiral_keyword_matches_count 3`,
		`spiral_keyword_matches_sum 6`,
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("missing %q in scrape output", w)
		}
	}
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics

	m.ObserveAnalysis("blue", 1)
	m.ObserveRejection("empty")

	handler := m.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("status: got %d, want 418", rec.Code)
	}
}
