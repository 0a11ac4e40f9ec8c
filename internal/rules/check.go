package rules

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
)

// Check admits the request only when rule currently equals expected.
// A mismatch is answered with 403; a failing source with 500.
func Check(src Source, rule Rule, expected bool, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "rules", "rule", string(rule))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snap, err := src.Snapshot(r.Context())
			if err != nil {
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			if snap.Enabled(rule) != expected {
				err := fmt.Errorf("%w: %s must be %t", ErrNotAllowed, rule, expected)
				handlers.RespondError(w, logger, MapHTTPStatus(err), err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
