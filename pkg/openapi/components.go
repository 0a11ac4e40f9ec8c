package openapi

func errorSchema() *Schema {
	return &Schema{
		Type:     "object",
		Required: []string{"error", "type"},
		Properties: map[string]*Schema{
			"error": {Type: "string", Description: "Error message"},
			"type": {
				Type: "string",
				Enum: []string{
					"invalid_data", "unauthorized", "not_allowed", "not_found",
					"conflict", "payload_too_large", "unexpected_state",
				},
			},
			"details": {
				Type: "array",
				Items: &Schema{
					Type: "object",
					Properties: map[string]*Schema{
						"field":   {Type: "string"},
						"code":    {Type: "string"},
						"message": {Type: "string"},
					},
				},
			},
		},
	}
}

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("Error")},
		},
	}
}

// NewComponents returns the shared error schema, error responses, and bearer auth scheme.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Error": errorSchema(),
		},
		Responses: map[string]*Response{
			"BadRequest":      errorResponse("Invalid request"),
			"Unauthorized":    errorResponse("Missing or invalid credentials"),
			"Forbidden":       errorResponse("Operation not allowed"),
			"NotFound":        errorResponse("Resource not found"),
			"Conflict":        errorResponse("Resource conflict"),
			"PayloadTooLarge": errorResponse("Request body too large"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearerAuth": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
		},
	}
}

// AddSchemas merges schemas into the components.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the components.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, resp := range responses {
		c.Responses[name] = resp
	}
}
