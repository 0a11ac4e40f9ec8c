package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/vendor-products/pkg/middleware"
	"github.com/JaimeStill/vendor-products/pkg/module"
)

func record(name string, calls *[]string) middleware.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*calls = append(*calls, name)
			next.ServeHTTP(w, r)
		})
	}
}

func terminal(calls *[]string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls = append(*calls, "handler")
		w.WriteHeader(http.StatusOK)
	})
}

func TestChain_Order(t *testing.T) {
	var calls []string

	h := middleware.Chain(record("a", &calls), record("b", &calls), record("c", &calls))(terminal(&calls))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"a", "b", "c", "handler"}, calls)
}

func TestChain_Empty(t *testing.T) {
	var calls []string

	middleware.Chain()(terminal(&calls)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"handler"}, calls)
}

func TestChain_ShortCircuit(t *testing.T) {
	var calls []string

	reject := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls = append(calls, "reject")
			w.WriteHeader(http.StatusForbidden)
		})
	}

	w := httptest.NewRecorder()
	middleware.Chain(reject, record("after", &calls))(terminal(&calls)).
		ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{"reject"}, calls)
}

func TestUnlessPath(t *testing.T) {
	reserved := regexp.MustCompile(`^.*/products/(export|import)$`)

	tests := []struct {
		path    string
		skipped bool
	}{
		{"/vendor/products/export", true},
		{"/vendor/products/import", true},
		{"/products/export", true},
		{"/vendor/products/123", false},
		{"/vendor/products/exported", false},
		{"/vendor/products/export/extra", false},
		{"/vendor/products", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var calls []string
			h := middleware.UnlessPath(reserved, record("guarded", &calls))(terminal(&calls))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, tt.path, nil))

			if tt.skipped {
				assert.Equal(t, []string{"handler"}, calls)
			} else {
				assert.Equal(t, []string{"guarded", "handler"}, calls)
			}
		})
	}
}

func TestUnlessPath_UsesOriginalPath(t *testing.T) {
	onlyFull := regexp.MustCompile(`^/vendor/products/export$`)

	var calls []string
	inner := middleware.UnlessPath(onlyFull, record("guarded", &calls))(terminal(&calls))
	m := module.New("/vendor", inner)

	m.Serve(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/vendor/products/export", nil))

	assert.Equal(t, []string{"handler"}, calls)
}

func TestUnless_Predicate(t *testing.T) {
	var calls []string

	skipHead := func(r *http.Request) bool { return r.Method == http.MethodHead }
	h := middleware.Unless(skipHead, record("guarded", &calls))(terminal(&calls))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodHead, "/", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"handler", "guarded", "handler"}, calls)
}
