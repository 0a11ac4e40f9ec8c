package validate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
)

type bodyKey[T any] struct{}

// Normalizer is implemented by bodies that transform themselves after
// decoding and before validation (trimming, defaulting).
type Normalizer interface {
	Normalize()
}

// Body decodes the JSON request body into T, rejecting unknown fields, then
// validates it. The validated value is available to handlers through BodyFrom.
func Body[T any](v *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, status, err := decodeBody[T](v, w, r)
			if err != nil {
				handlers.RespondError(w, v.logger, status, err)
				return
			}

			ctx := context.WithValue(r.Context(), bodyKey[T]{}, body)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BodyFrom returns the body stored by Body[T].
func BodyFrom[T any](r *http.Request) (T, bool) {
	body, ok := r.Context().Value(bodyKey[T]{}).(T)
	return body, ok
}

func decodeBody[T any](v *Validator, w http.ResponseWriter, r *http.Request) (T, int, error) {
	var body T

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, v.maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return body, http.StatusRequestEntityTooLarge, invalid("request body exceeds %d bytes", tooLarge.Limit)
		case errors.Is(err, io.EOF):
			return body, http.StatusBadRequest, invalid("request body is required")
		default:
			return body, http.StatusBadRequest, invalid("invalid request body: %v", err)
		}
	}

	if dec.More() {
		return body, http.StatusBadRequest, invalid("request body must contain a single JSON object")
	}

	if n, ok := any(&body).(Normalizer); ok {
		n.Normalize()
	}

	if err := v.Struct(body); err != nil {
		return body, http.StatusBadRequest, err
	}

	return body, 0, nil
}
