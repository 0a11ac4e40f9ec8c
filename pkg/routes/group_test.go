package routes_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/vendor-products/pkg/openapi"
	"github.com/JaimeStill/vendor-products/pkg/routes"
)

func write(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, body)
	}
}

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	spec := openapi.NewSpec("Test API", "1.0.0")

	group := routes.Group{
		Prefix: "/products",
		Tags:   []string{"Products"},
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: write("list"), OpenAPI: &openapi.Operation{Summary: "List"}},
			{Method: "GET", Pattern: "/{id}", Handler: write("retrieve"), OpenAPI: &openapi.Operation{Summary: "Retrieve"}},
			{Method: "POST", Pattern: "/export", Handler: write("export")},
		},
		Children: []routes.Group{
			{
				Prefix: "/{id}/variants",
				Tags:   []string{"Variants"},
				Routes: []routes.Route{
					{Method: "POST", Pattern: "", Handler: write("variant"), OpenAPI: &openapi.Operation{Summary: "Create variant"}},
				},
			},
		},
	}

	routes.Register(mux, "/vendor", spec, group)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{"GET", "/products", "list"},
		{"GET", "/products/1", "retrieve"},
		{"POST", "/products/export", "export"},
		{"POST", "/products/1/variants", "variant"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.want, w.Body.String(), "%s %s", tt.method, tt.path)
	}

	require.NotNil(t, spec.Paths["/vendor/products"])
	require.NotNil(t, spec.Paths["/vendor/products/{id}/variants"])
	assert.Nil(t, spec.Paths["/vendor/products/export"], "undocumented routes stay out of the spec")
	assert.Equal(t, []string{"Products"}, spec.Paths["/vendor/products"].Get.Tags)
	assert.Equal(t, []string{"Variants"}, spec.Paths["/vendor/products/{id}/variants"].Post.Tags)
}

func TestGroup_AddToSpec_PreservesExplicitTags(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	routes.Group{
		Prefix: "/products",
		Tags:   []string{"Products"},
		Routes: []routes.Route{
			{Method: "GET", Handler: write(""), OpenAPI: &openapi.Operation{Tags: []string{"Admin"}}},
		},
	}.AddToSpec("", spec)

	assert.Equal(t, []string{"Admin"}, spec.Paths["/products"].Get.Tags)
}

func TestGroup_ChildInheritsTags(t *testing.T) {
	spec := openapi.NewSpec("Test API", "1.0.0")

	routes.Group{
		Prefix: "/products",
		Tags:   []string{"Products"},
		Children: []routes.Group{{
			Prefix: "/{id}/options",
			Routes: []routes.Route{{Method: "DELETE", Pattern: "/{option_id}", Handler: write(""), OpenAPI: &openapi.Operation{}}},
		}},
	}.AddToSpec("/vendor", spec)

	item := spec.Paths["/vendor/products/{id}/options/{option_id}"]
	require.NotNil(t, item)
	assert.Equal(t, []string{"Products"}, item.Delete.Tags)
}
