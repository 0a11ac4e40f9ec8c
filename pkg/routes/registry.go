package routes

import (
	"fmt"
	"net/http"
	"regexp"
	"slices"

	"github.com/JaimeStill/vendor-products/pkg/middleware"
	"github.com/JaimeStill/vendor-products/pkg/module"
)

var knownMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodOptions,
}

// Descriptor binds a set of HTTP methods and a path matcher to an ordered
// middleware chain. Steps run left to right before the route handler.
type Descriptor struct {
	Methods     []string
	Matcher     string
	Middlewares []middleware.Middleware
}

type entry struct {
	desc    Descriptor
	methods []string
	re      *regexp.Regexp
}

// Registry is an immutable, ordered table of descriptors.
// It is safe for concurrent use.
type Registry struct {
	entries []entry
}

// NewRegistry validates and compiles descriptors in order.
// It panics on an empty method set, an unknown method, or an invalid matcher;
// the table is static so these are programming errors.
func NewRegistry(descriptors ...Descriptor) *Registry {
	entries := make([]entry, 0, len(descriptors))

	for i, d := range descriptors {
		e, err := compile(d)
		if err != nil {
			panic(fmt.Sprintf("routes: descriptor %d: %v", i, err))
		}
		entries = append(entries, e)
	}

	return &Registry{entries: entries}
}

func compile(d Descriptor) (entry, error) {
	if len(d.Methods) == 0 {
		return entry{}, fmt.Errorf("matcher %q has no methods", d.Matcher)
	}

	for _, m := range d.Methods {
		if !slices.Contains(knownMethods, m) {
			return entry{}, fmt.Errorf("matcher %q: unknown method %q", d.Matcher, m)
		}
	}

	re, err := CompileMatcher(d.Matcher)
	if err != nil {
		return entry{}, err
	}

	methods := slices.Clone(d.Methods)
	if slices.Contains(methods, http.MethodGet) && !slices.Contains(methods, http.MethodHead) {
		methods = append(methods, http.MethodHead)
	}

	return entry{
		desc: Descriptor{
			Methods:     slices.Clone(d.Methods),
			Matcher:     d.Matcher,
			Middlewares: slices.Clone(d.Middlewares),
		},
		methods: methods,
		re:      re,
	}, nil
}

// Descriptors returns a copy of the table in registry order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, len(r.entries))
	for i, e := range r.entries {
		out[i] = Descriptor{
			Methods:     slices.Clone(e.desc.Methods),
			Matcher:     e.desc.Matcher,
			Middlewares: slices.Clone(e.desc.Middlewares),
		}
	}
	return out
}

// Match returns the concatenated chains of every descriptor matching method and
// path, in registry order. A GET descriptor also matches HEAD requests.
func (r *Registry) Match(method, path string) []middleware.Middleware {
	chain, _ := r.match(method, path)
	return chain
}

// Middleware returns a step that runs the matching chain for each request and
// then the wrapped handler. Paths are matched as received, before any module
// prefix was stripped. Placeholder values captured by matching descriptors are
// set as path values so steps can read them with r.PathValue before the mux
// routes the request; the first descriptor to capture a name wins.
func (r *Registry) Middleware() middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			chain, values := r.match(req.Method, module.OriginalPath(req))
			if len(chain) == 0 {
				next.ServeHTTP(w, req)
				return
			}

			for name, v := range values {
				req.SetPathValue(name, v)
			}
			middleware.Chain(chain...)(next).ServeHTTP(w, req)
		})
	}
}

func (r *Registry) match(method, path string) ([]middleware.Middleware, map[string]string) {
	var chain []middleware.Middleware
	values := make(map[string]string)

	for _, e := range r.entries {
		if !slices.Contains(e.methods, method) {
			continue
		}
		m := e.re.FindStringSubmatch(path)
		if m == nil {
			continue
		}
		for i, name := range e.re.SubexpNames() {
			if _, seen := values[name]; name == "" || seen {
				continue
			}
			values[name] = m[i]
		}
		chain = append(chain, e.desc.Middlewares...)
	}
	return chain, values
}
