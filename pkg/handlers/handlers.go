// Package handlers provides HTTP response utilities for JSON APIs.
// Error bodies share one shape: {"error": message, "type": type, "details": [...]}.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// ErrorType classifies an error response independently of its HTTP status.
type ErrorType string

const (
	TypeInvalidData     ErrorType = "invalid_data"
	TypeUnauthorized    ErrorType = "unauthorized"
	TypeNotAllowed      ErrorType = "not_allowed"
	TypeNotFound        ErrorType = "not_found"
	TypeConflict        ErrorType = "conflict"
	TypePayloadTooLarge ErrorType = "payload_too_large"
	TypeUnexpectedState ErrorType = "unexpected_state"
)

// TypeForStatus maps an HTTP status code to its error type.
func TypeForStatus(status int) ErrorType {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return TypeInvalidData
	case http.StatusUnauthorized:
		return TypeUnauthorized
	case http.StatusForbidden:
		return TypeNotAllowed
	case http.StatusNotFound:
		return TypeNotFound
	case http.StatusConflict:
		return TypeConflict
	case http.StatusRequestEntityTooLarge:
		return TypePayloadTooLarge
	default:
		return TypeUnexpectedState
	}
}

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DetailedError is implemented by errors that carry per-field details.
type DetailedError interface {
	error
	Details() []FieldError
}

// ErrorResponse is the body written by RespondError.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Type    ErrorType    `json:"type"`
	Details []FieldError `json:"details,omitempty"`
}

// RespondJSON writes a JSON response with the given status code and data.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// Server errors are logged at error level, client errors at warn level.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}

	body := ErrorResponse{
		Error: err.Error(),
		Type:  TypeForStatus(status),
	}

	var detailed DetailedError
	if errors.As(err, &detailed) {
		body.Details = detailed.Details()
	}

	RespondJSON(w, status, body)
}
