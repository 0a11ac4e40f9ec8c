package attributes

import "github.com/JaimeStill/vendor-products/pkg/openapi"

// Schemas returns the attribute component schemas.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Attribute": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":              {Type: "string"},
				"name":            {Type: "string"},
				"handle":          {Type: "string"},
				"description":     {Type: "string"},
				"is_global":       {Type: "boolean"},
				"is_filterable":   {Type: "boolean"},
				"ui_component":    {Type: "string", Enum: []string{"select", "multivalue", "unit", "toggle", "text_area", "color_picker"}},
				"possible_values": {Type: "array", Items: &openapi.Schema{Type: "string"}},
				"created_at":      {Type: "string", Format: "date-time"},
				"updated_at":      {Type: "string", Format: "date-time"},
			},
		},
		"AttributeList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"attributes": {Type: "array", Items: openapi.SchemaRef("Attribute")},
				"count":      {Type: "integer"},
				"offset":     {Type: "integer"},
				"limit":      {Type: "integer"},
			},
		},
	}
}

// Parameters documents the accepted query parameters.
func Parameters() []*openapi.Parameter {
	return []*openapi.Parameter{
		openapi.QueryParam("q", "string", "Search name and handle", false),
		openapi.QueryParam("id", "string", "Filter by attribute id (comma-separated)", false),
		openapi.QueryParam("name", "string", "Filter by name (contains)", false),
		openapi.QueryParam("handle", "string", "Filter by handle (comma-separated)", false),
		openapi.QueryParam("is_filterable", "boolean", "Filter by filterable flag", false),
		openapi.QueryParam("ui_component", "string", "Filter by UI component", false),
		openapi.QueryParam("fields", "string", "Fields to return; prefix with + or - to adjust defaults", false),
		openapi.QueryParam("offset", "integer", "Records to skip", false),
		openapi.QueryParam("limit", "integer", "Records to return", false),
		openapi.QueryParam("order", "string", "Sort field, prefix with - for descending", false),
	}
}
