package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/vendor-products/pkg/middleware"
	"github.com/JaimeStill/vendor-products/pkg/module"
)

func ok() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
}

func TestTrimSlash(t *testing.T) {
	h := middleware.TrimSlash()(ok())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/?limit=5", nil))
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/products?limit=5", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products/", nil))
	assert.Equal(t, http.StatusPermanentRedirect, w.Code)

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}

func TestTrimSlash_KeepsModulePrefix(t *testing.T) {
	m := module.New("/vendor", middleware.TrimSlash()(ok()))

	w := httptest.NewRecorder()
	m.Serve(w, httptest.NewRequest(http.MethodGet, "/vendor/products/", nil))

	assert.Equal(t, "/vendor/products", w.Header().Get("Location"))
}

func TestTrimSlash_CleansPath(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		location string
	}{
		{"empty segment", "/vendor/products//abc", "/vendor/products/abc"},
		{"dot segment", "/vendor/products/./abc", "/vendor/products/abc"},
		{"parent segment", "/vendor/products/abc/../def", "/vendor/products/def"},
		{"trailing slash with query", "/vendor/products//?limit=5", "/vendor/products?limit=5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.Handle("/", ok())
			m := module.New("/vendor", middleware.TrimSlash()(mux))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.URL.Path, req.URL.RawQuery, _ = splitTarget(tt.target)

			w := httptest.NewRecorder()
			m.Serve(w, req)

			require.Equal(t, http.StatusMovedPermanently, w.Code)
			assert.Equal(t, tt.location, w.Header().Get("Location"))
		})
	}
}

func splitTarget(target string) (string, string, bool) {
	return strings.Cut(target, "?")
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := middleware.RequestID()(middleware.Logger(logger)(ok()))
	req := httptest.NewRequest(http.MethodGet, "/vendor/products?limit=5", nil)
	req.Header.Set(middleware.HeaderRequestID, "req-42")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	out := buf.String()
	assert.Contains(t, out, "msg=request")
	assert.Contains(t, out, "method=GET")
	assert.Contains(t, out, "/vendor/products?limit=5")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=req-42")
	assert.Contains(t, out, "duration=")
}

func TestRequestID(t *testing.T) {
	var seen string
	h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.RequestIDFrom(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(middleware.HeaderRequestID))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.HeaderRequestID, "  abc  ")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, "abc", seen)
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		Enabled:          true,
		Origins:          []string{"http://localhost:3000"},
		AllowCredentials: true,
		MaxAge:           7200,
	}
	require.NoError(t, cfg.Finalize(nil))

	h := middleware.CORS(cfg)(ok())

	t.Run("allowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://evil.example")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "7200", w.Header().Get("Access-Control-Max-Age"))
	})
}

func TestCORS_Disabled(t *testing.T) {
	for _, cfg := range []*middleware.CORSConfig{
		{Enabled: false, Origins: []string{"http://localhost:3000"}},
		{Enabled: true},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		w := httptest.NewRecorder()
		middleware.CORS(cfg)(ok()).ServeHTTP(w, req)

		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusTeapot, w.Code)
	}
}

func TestCORSConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_CORS_ORIGINS", "http://a.example, http://b.example")
	t.Setenv("TEST_CORS_ENABLED", "true")

	cfg := &middleware.CORSConfig{}
	require.NoError(t, cfg.Finalize(&middleware.CORSEnv{
		Enabled: "TEST_CORS_ENABLED",
		Origins: "TEST_CORS_ORIGINS",
	}))

	assert.True(t, cfg.Enabled)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.Origins)
	assert.NotEmpty(t, cfg.AllowedMethods)
	assert.Equal(t, 3600, cfg.MaxAge)
}
