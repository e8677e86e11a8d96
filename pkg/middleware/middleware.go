// Package middleware provides the HTTP middleware stack and the request
// middleware shared by service modules.
package middleware

import "net/http"

// Func wraps an http.Handler with additional behavior.
type Func func(http.Handler) http.Handler

// System manages an ordered stack of HTTP middleware.
type System interface {
	Use(mw Func)
	Apply(handler http.Handler) http.Handler
}

type stack struct {
	funcs []Func
}

// New creates an empty middleware System.
func New() System {
	return &stack{}
}

func (s *stack) Use(fn Func) {
	s.funcs = append(s.funcs, fn)
}

// Apply wraps handler so the first middleware registered runs first.
func (s *stack) Apply(handler http.Handler) http.Handler {
	return Chain(s.funcs...)(handler)
}

// Chain composes middleware into one, outermost first.
func Chain(funcs ...Func) Func {
	return func(handler http.Handler) http.Handler {
		for i := len(funcs) - 1; i >= 0; i-- {
			handler = funcs[i](handler)
		}
		return handler
	}
}
