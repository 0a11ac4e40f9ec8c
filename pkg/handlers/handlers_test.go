package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
	"github.com/JaimeStill/vendor-products/pkg/logging"
)

type fieldErr struct{}

func (fieldErr) Error() string { return "invalid request body" }

func (fieldErr) Details() []handlers.FieldError {
	return []handlers.FieldError{{Field: "title", Code: "required", Message: "title is required"}}
}

func TestRespondJSON(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.RespondJSON(w, http.StatusCreated, map[string]string{"id": "prod_1"})

	if w.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", w.Code, http.StatusCreated)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["id"] != "prod_1" {
		t.Errorf("body = %v", body)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		err      error
		wantType handlers.ErrorType
		details  int
	}{
		{"bad request", http.StatusBadRequest, errors.New("bad"), handlers.TypeInvalidData, 0},
		{"unauthorized", http.StatusUnauthorized, errors.New("no token"), handlers.TypeUnauthorized, 0},
		{"forbidden", http.StatusForbidden, errors.New("nope"), handlers.TypeNotAllowed, 0},
		{"not found", http.StatusNotFound, errors.New("gone"), handlers.TypeNotFound, 0},
		{"conflict", http.StatusConflict, errors.New("dup"), handlers.TypeConflict, 0},
		{"too large", http.StatusRequestEntityTooLarge, errors.New("big"), handlers.TypePayloadTooLarge, 0},
		{"internal", http.StatusInternalServerError, errors.New("boom"), handlers.TypeUnexpectedState, 0},
		{"with details", http.StatusBadRequest, fieldErr{}, handlers.TypeInvalidData, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handlers.RespondError(w, logging.Discard(), tt.status, tt.err)

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}

			var body handlers.ErrorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}

			if body.Error != tt.err.Error() {
				t.Errorf("error = %q, want %q", body.Error, tt.err.Error())
			}
			if body.Type != tt.wantType {
				t.Errorf("type = %q, want %q", body.Type, tt.wantType)
			}
			if len(body.Details) != tt.details {
				t.Errorf("len(details) = %d, want %d", len(body.Details), tt.details)
			}
		})
	}
}
