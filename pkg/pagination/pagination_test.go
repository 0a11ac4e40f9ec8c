package pagination_test

import (
	"net/url"
	"testing"

	"github.com/JaimeStill/vendor-products/pkg/pagination"
)

var cfg = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestWindowFromQuery(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    pagination.Window
		wantErr bool
	}{
		{"defaults", "", pagination.Window{Offset: 0, Limit: 20}, false},
		{"explicit", "offset=40&limit=10", pagination.Window{Offset: 40, Limit: 10}, false},
		{"limit at max", "limit=100", pagination.Window{Offset: 0, Limit: 100}, false},
		{"limit above max", "limit=101", pagination.Window{}, true},
		{"negative offset", "offset=-1", pagination.Window{}, true},
		{"zero limit", "limit=0", pagination.Window{}, true},
		{"non numeric", "limit=ten", pagination.Window{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			got, err := pagination.WindowFromQuery(values, cfg)

			if tt.wantErr {
				if err == nil {
					t.Errorf("WindowFromQuery(%q) expected error", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("WindowFromQuery(%q) error: %v", tt.query, err)
			}
			if got != tt.want {
				t.Errorf("WindowFromQuery(%q) = %+v, want %+v", tt.query, got, tt.want)
			}
		})
	}
}

func TestWindow_Normalize(t *testing.T) {
	w := pagination.Window{Offset: -5, Limit: 1000}
	w.Normalize(cfg)

	if w.Offset != 0 || w.Limit != 100 {
		t.Errorf("Normalize() = %+v, want offset 0 limit 100", w)
	}
}

func TestNewPageResult_NilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, pagination.Window{Limit: 20})

	if result.Data == nil {
		t.Error("Data is nil, want empty slice")
	}
	if result.Limit != 20 {
		t.Errorf("Limit = %d, want 20", result.Limit)
	}
}
