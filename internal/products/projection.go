package products

import (
	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

var projection = query.NewProjectionMap("public", "product", "p").
	Project("id", "id").
	Project("title", "title").
	Project("subtitle", "subtitle").
	Project("description", "description").
	Project("handle", "handle").
	Project("status", "status").
	Project("thumbnail", "thumbnail").
	Project("brand_name", "brand_name").
	Project("created_at", "created_at").
	Project("updated_at", "updated_at")

var defaultSort = query.SortField{Field: "created_at", Descending: true}

const (
	optionColumns  = `id, product_id, title, "values"`
	variantColumns = "id, product_id, title, sku, options, prices, created_at, updated_at"
)

var defaultFields = []string{
	"id", "title", "subtitle", "description", "handle", "status",
	"thumbnail", "brand_name", "created_at", "updated_at",
	"options", "variants",
}

var sortableFields = []string{"title", "handle", "status", "created_at", "updated_at"}

// QueryConfigs holds the list and retrieve query configurations.
type QueryConfigs struct {
	List     validate.QueryConfig
	Retrieve validate.QueryConfig
}

// NewQueryConfigs builds the product query configurations.
func NewQueryConfigs(page pagination.Config) QueryConfigs {
	return QueryConfigs{
		List: validate.QueryConfig{
			Defaults:     defaultFields,
			Allowed:      defaultFields,
			IsList:       true,
			DefaultOrder: "-created_at",
			Sortable:     sortableFields,
			Pagination:   page,
		},
		Retrieve: validate.QueryConfig{
			Defaults: defaultFields,
			Allowed:  defaultFields,
		},
	}
}
