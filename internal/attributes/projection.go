package attributes

import (
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

var projection = query.NewProjectionMap("public", "attribute", "a").
	Project("id", "id").
	Project("name", "name").
	Project("handle", "handle").
	Project("description", "description").
	Project("is_global", "is_global").
	Project("is_filterable", "is_filterable").
	Project("ui_component", "ui_component").
	Project("possible_values", "possible_values").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "name"}

// QueryConfig is the list configuration for applicable attributes.
func QueryConfig() validate.QueryConfig {
	return validate.QueryConfig{
		Defaults: []string{
			"id", "name", "handle", "description", "is_global",
			"is_filterable", "ui_component", "possible_values",
		},
		IsList:       true,
		DefaultOrder: "name",
		Sortable:     []string{"name", "handle", "created_at", "updated_at"},
	}
}
