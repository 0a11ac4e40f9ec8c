// Package module mounts self-contained HTTP handlers under a single-level path prefix.
// A module strips its prefix before dispatch and applies its own middleware stack.
package module

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type originalPathKey struct{}

// Module is an http.Handler mounted under Prefix with its own middleware.
type Module struct {
	prefix      string
	handler     http.Handler
	middlewares []func(http.Handler) http.Handler
}

// New creates a module. It panics when prefix is not a single segment such as "/vendor".
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}

	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. The first registered runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middlewares = append(m.middlewares, mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		h = m.middlewares[i](h)
	}
	return h
}

// Serve strips the module prefix and dispatches the request.
// The unstripped path remains available through OriginalPath.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	original := OriginalPath(r)

	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := r.Clone(context.WithValue(r.Context(), originalPathKey{}, original))
	r2.URL.Path = path
	r2.URL.RawPath = ""

	m.Handler().ServeHTTP(w, r2)
}

// OriginalPath returns the request path as received before any module stripped its prefix.
func OriginalPath(r *http.Request) string {
	if p, ok := r.Context().Value(originalPathKey{}).(string); ok {
		return p
	}
	return r.URL.Path
}

func validatePrefix(prefix string) error {
	if prefix == "" || !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with '/': %q", prefix)
	}
	if strings.Count(prefix, "/") != 1 || len(prefix) < 2 {
		return fmt.Errorf("module prefix must be a single path segment: %q", prefix)
	}
	return nil
}
