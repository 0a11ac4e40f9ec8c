package validate

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation error", &Error{Message: "invalid request"}, http.StatusBadRequest},
		{"wrapped validation error", fmt.Errorf("order: %w", invalid("bad order")), http.StatusBadRequest},
		{"decoder failure", fmt.Errorf("build query decoder: %w", errors.New("result must be a pointer")), http.StatusInternalServerError},
		{"filter collection failure", errors.New("collect filters: unsupported type"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, queryStatus(tt.err))
		})
	}
}
