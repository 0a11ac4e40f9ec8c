// Package storage provides blob storage for generated files such as product exports.
package storage

import (
	"context"
	"errors"
	"net/http"

	"github.com/JaimeStill/vendor-products/pkg/lifecycle"
)

var (
	ErrNotFound         = errors.New("storage: key not found")
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrInvalidKey covers empty keys and path traversal attempts.
	ErrInvalidKey = errors.New("storage: invalid key")
	ErrTooLarge   = errors.New("storage: object exceeds maximum size")
)

// System stores and retrieves opaque blobs by key.
type System interface {
	// Store saves data at key, overwriting existing contents.
	Store(ctx context.Context, key string, data []byte) error
	// Retrieve returns ErrNotFound when the key does not exist.
	Retrieve(ctx context.Context, key string) ([]byte, error)
	// Delete is idempotent.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Start(lc *lifecycle.Coordinator) error
}

// MapHTTPStatus converts storage errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}
