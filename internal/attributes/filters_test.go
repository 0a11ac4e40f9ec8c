package attributes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

func TestFiltersFromList(t *testing.T) {
	filterable := true
	lc := &validate.ListConfig{Filters: map[string]any{
		"id":            []string{"attr_1", "attr_2"},
		"q":             "size",
		"is_filterable": &filterable,
		"ui_component":  "select",
	}}

	f := attributes.FiltersFromList(lc)

	assert.Equal(t, []string{"attr_1", "attr_2"}, f.IDs)
	assert.Equal(t, "size", *f.Search)
	assert.Nil(t, f.Name)
	assert.True(t, *f.IsFilterable)
	assert.Equal(t, []string{"select"}, f.UIComponents)
}

func TestFilters_Apply(t *testing.T) {
	proj := query.NewProjectionMap("public", "attribute", "a").
		Project("id", "id").
		Project("name", "name").
		Project("handle", "handle").
		Project("ui_component", "ui_component").
		Project("is_filterable", "is_filterable")

	search := "size"
	f := attributes.Filters{IDs: []string{"attr_1"}, Search: &search}

	sql, args := f.Apply(query.NewBuilder(proj)).BuildCount()

	assert.Equal(t,
		"SELECT COUNT(*) FROM public.attribute a WHERE a.id IN ($1) AND (a.name ILIKE $2 OR a.handle ILIKE $3)",
		sql)
	assert.Equal(t, []any{"attr_1", "%size%", "%size%"}, args)
}
