// Package module mounts self-contained HTTP handlers under single-level path
// prefixes, each with its own middleware stack.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/JaimeStill/spiral/pkg/middleware"
)

// Module is an HTTP handler that strips its prefix and delegates to an inner router
// with its own middleware stack.
type Module struct {
	prefix     string
	router     http.Handler
	middleware middleware.System
	handler    func() http.Handler
	sealed     bool
	mu         sync.Mutex
}

// New creates a Module with the given single-level prefix (e.g. "/api").
// Panics if the prefix is empty, missing a leading slash, or multi-level.
func New(prefix string, router http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	m := &Module{
		prefix:     prefix,
		router:     router,
		middleware: middleware.New(),
	}
	m.handler = sync.OnceValue(func() http.Handler {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.sealed = true
		return m.middleware.Apply(m.router)
	})
	return m
}

// Handler returns the inner router wrapped with the module's middleware stack.
// The stack is composed on first call and reused afterwards.
func (m *Module) Handler() http.Handler {
	return m.handler()
}

// Prefix returns the module's path prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Serve strips the module prefix from the request path and dispatches to the inner router.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	path := extractPath(req.URL.Path, m.prefix)
	m.Handler().ServeHTTP(w, cloneRequest(req, path))
}

// Use adds middleware to the module's stack. The first middleware added is
// the outermost. Panics once the module has served a request.
func (m *Module) Use(mw middleware.Func) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sealed {
		panic(fmt.Errorf("module %s: middleware added after handler composed", m.prefix))
	}
	m.middleware.Use(mw)
}

func cloneRequest(req *http.Request, path string) *http.Request {
	request := req.Clone(req.Context())
	request.URL.Path = path
	request.URL.RawPath = ""
	return request
}

func extractPath(fullPath, prefix string) string {
	path := fullPath[len(prefix):]
	if path == "" {
		return "/"
	}
	return path
}

func validatePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	}
	if strings.Count(prefix, "/") != 1 || prefix == "/" {
		return fmt.Errorf("module prefix must be single-level sub-path: %s", prefix)
	}
	if prefix != "/"+url.PathEscape(prefix[1:]) {
		return fmt.Errorf("module prefix contains reserved characters: %s", prefix)
	}
	return nil
}
