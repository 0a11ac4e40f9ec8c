// Package middleware provides composable HTTP middleware.
// A middleware step wraps the next handler and may short-circuit by writing a
// response without calling it.
package middleware

import (
	"net/http"
	"regexp"

	"github.com/JaimeStill/vendor-products/pkg/module"
)

// Middleware is a single step in a handler chain.
type Middleware = func(http.Handler) http.Handler

// Predicate decides per request whether a conditional step is bypassed.
type Predicate func(r *http.Request) bool

// Chain composes steps so that the first listed runs first.
func Chain(steps ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		h := next
		for i := len(steps) - 1; i >= 0; i-- {
			h = steps[i](h)
		}
		return h
	}
}

// Unless returns a step that bypasses mw and calls next directly when skip matches the request.
func Unless(skip Predicate, mw Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		wrapped := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip(r) {
				next.ServeHTTP(w, r)
				return
			}
			wrapped.ServeHTTP(w, r)
		})
	}
}

// UnlessPath bypasses mw when re matches the request path.
// The path is the one received before any module prefix was stripped.
func UnlessPath(re *regexp.Regexp, mw Middleware) Middleware {
	return Unless(PathMatches(re), mw)
}

// PathMatches reports whether re matches the unstripped request path.
func PathMatches(re *regexp.Regexp) Predicate {
	return func(r *http.Request) bool {
		return re.MatchString(module.OriginalPath(r))
	}
}
