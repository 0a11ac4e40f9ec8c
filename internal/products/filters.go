package products

import (
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

// Filters are the applied product list filters. IDs is nil when unfiltered
// and empty when the link filters resolved no products.
type Filters struct {
	IDs      []string
	Search   *string
	Title    *string
	Handles  []string
	Statuses []string
}

// FiltersFromList extracts product filters from a validated list config.
func FiltersFromList(lc *validate.ListConfig) Filters {
	var f Filters
	if ids, ok := lc.Strings("id"); ok {
		f.IDs = ids
		if f.IDs == nil {
			f.IDs = []string{}
		}
	}
	if v := lc.String("q"); v != "" {
		f.Search = &v
	}
	if v := lc.String("title"); v != "" {
		f.Title = &v
	}
	if v, ok := lc.Strings("handle"); ok {
		f.Handles = v
	}
	if v, ok := lc.Strings("status"); ok {
		f.Statuses = v
	}
	return f
}

// Apply adds the filter conditions to the query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.IDs != nil {
		b.WhereRaw("p.id::text = ANY($%d)", f.IDs)
	}
	return b.
		WhereSearch(f.Search, "title", "handle", "description").
		WhereContains("title", f.Title).
		WhereIn("handle", toAny(f.Handles)).
		WhereIn("status", toAny(f.Statuses))
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
