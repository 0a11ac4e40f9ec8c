package query_test

import (
	"reflect"
	"testing"

	"github.com/JaimeStill/vendor-products/pkg/query"
)

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{"empty", "", nil},
		{"single asc", "title", []query.SortField{{Field: "title"}}},
		{"single desc", "-created_at", []query.SortField{{Field: "created_at", Descending: true}}},
		{"explicit asc", "+title", []query.SortField{{Field: "title"}}},
		{
			"multiple with spaces",
			"-created_at, title ,",
			[]query.SortField{{Field: "created_at", Descending: true}, {Field: "title"}},
		},
		{"bare minus skipped", "-", []query.SortField{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseSortFields(%q) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSortField_String(t *testing.T) {
	if s := (query.SortField{Field: "title"}).String(); s != "title" {
		t.Errorf("String() = %q, want title", s)
	}
	if s := (query.SortField{Field: "title", Descending: true}).String(); s != "-title" {
		t.Errorf("String() = %q, want -title", s)
	}
}
