package rules

import (
	"errors"
	"net/http"
)

var (
	ErrUnknownRule = errors.New("unknown configuration rule")
	ErrNotAllowed  = errors.New("operation not allowed by marketplace configuration")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotAllowed) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrUnknownRule) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
