// Package routes declares HTTP route groups, registers them on a ServeMux, and
// feeds the OpenAPI document. It also hosts the route middleware registry that
// binds method and path matchers to middleware chains.
package routes

import (
	"net/http"

	"github.com/JaimeStill/vendor-products/pkg/openapi"
)

// Route is a single handler bound to a method and a pattern relative to its group.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// AddToSpec adds every documented route to spec under basePath.
// Operations without tags inherit the group's tags.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	g.walk("", func(prefix string, tags []string, route Route) {
		if route.OpenAPI == nil {
			return
		}
		op := route.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = tags
		}
		spec.AddOperation(basePath+prefix+route.Pattern, route.Method, op)
	}, nil)
}

func (g Group) walk(parent string, fn func(prefix string, tags []string, route Route), inherited []string) {
	prefix := parent + g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = inherited
	}

	for _, route := range g.Routes {
		fn(prefix, tags, route)
	}
	for _, child := range g.Children {
		child.walk(prefix, fn, tags)
	}
}

// Register mounts every group's routes on mux and documents them in spec.
// Mux patterns are relative to the module; spec paths are prefixed with basePath.
func Register(mux *http.ServeMux, basePath string, spec *openapi.Spec, groups ...Group) {
	for _, group := range groups {
		group.walk("", func(prefix string, _ []string, route Route) {
			mux.HandleFunc(route.Method+" "+prefix+route.Pattern, route.Handler)
		}, nil)

		if spec != nil {
			group.AddToSpec(basePath, spec)
		}
	}
}
