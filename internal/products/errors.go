package products

import (
	"errors"
	"net/http"
)

// Domain errors for product operations.
var (
	ErrNotFound          = errors.New("product not found")
	ErrVariantNotFound   = errors.New("variant not found")
	ErrOptionNotFound    = errors.New("option not found")
	ErrDuplicate         = errors.New("product with this handle already exists")
	ErrDuplicateSKU      = errors.New("variant with this sku already exists")
	ErrDuplicateOption   = errors.New("option with this title already exists")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidImport     = errors.New("invalid import file")
	ErrMissingBody       = errors.New("validated body missing from request")
	ErrMissingListConfig = errors.New("validated query missing from request")
)

// MapHTTPStatus converts domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrVariantNotFound),
		errors.Is(err, ErrOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate),
		errors.Is(err, ErrDuplicateSKU),
		errors.Is(err, ErrDuplicateOption):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidImport):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
