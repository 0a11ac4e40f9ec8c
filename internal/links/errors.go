package links

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound          = errors.New("link not found")
	ErrNotOwner          = errors.New("you are not allowed to perform this action")
	ErrNoActor           = errors.New("request has no authenticated seller")
	ErrInvalidIdentifier = errors.New("invalid link identifier")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrNotOwner) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrNoActor) {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}
