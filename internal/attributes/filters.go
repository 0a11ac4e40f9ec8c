package attributes

import (
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

// Filters are the applied attribute filters.
type Filters struct {
	IDs          []string
	Search       *string
	Name         *string
	Handles      []string
	IsFilterable *bool
	UIComponents []string
}

// FiltersFromList extracts attribute filters from a validated list config.
func FiltersFromList(lc *validate.ListConfig) Filters {
	var f Filters
	if ids, ok := lc.Strings("id"); ok {
		f.IDs = ids
	}
	if v := lc.String("q"); v != "" {
		f.Search = &v
	}
	if v := lc.String("name"); v != "" {
		f.Name = &v
	}
	if v, ok := lc.Strings("handle"); ok {
		f.Handles = v
	}
	switch v := lc.Filters["is_filterable"].(type) {
	case *bool:
		f.IsFilterable = v
	case bool:
		f.IsFilterable = &v
	}
	if v, ok := lc.Strings("ui_component"); ok {
		f.UIComponents = v
	}
	return f
}

// Apply adds the filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereIn("id", toAny(f.IDs)).
		WhereSearch(f.Search, "name", "handle").
		WhereContains("name", f.Name).
		WhereIn("handle", toAny(f.Handles)).
		WhereIn("ui_component", toAny(f.UIComponents))

	if f.IsFilterable != nil {
		b.WhereEquals("is_filterable", *f.IsFilterable)
	}
	return b
}

func toAny(values []string) []any {
	if values == nil {
		return nil
	}
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
