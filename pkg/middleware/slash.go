package middleware

import (
	"net/http"
	"path"

	"github.com/JaimeStill/vendor-products/pkg/module"
)

// TrimSlash redirects non-canonical paths (trailing slash, empty segments,
// dot segments) to their cleaned form, keeping any module prefix. The root
// path "/" is preserved. Redirects for non-GET methods use 308 so the body and
// method survive.
func TrimSlash() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "" && path.Clean(r.URL.Path) != r.URL.Path {
				target := path.Clean(module.OriginalPath(r))
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}

				status := http.StatusMovedPermanently
				if r.Method != http.MethodGet && r.Method != http.MethodHead {
					status = http.StatusPermanentRedirect
				}

				http.Redirect(w, r, target, status)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
