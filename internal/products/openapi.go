package products

import (
	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/pkg/openapi"
)

type spec struct {
	List                 *openapi.Operation
	Create               *openapi.Operation
	Export               *openapi.Operation
	Import               *openapi.Operation
	Retrieve             *openapi.Operation
	Update               *openapi.Operation
	Delete               *openapi.Operation
	AssignBrand          *openapi.Operation
	UpdateStatus         *openapi.Operation
	ApplicableAttributes *openapi.Operation
	CreateVariant        *openapi.Operation
	UpdateVariant        *openapi.Operation
	DeleteVariant        *openapi.Operation
	CreateOption         *openapi.Operation
	UpdateOption         *openapi.Operation
	DeleteOption         *openapi.Operation
}

var bearer = []map[string][]string{{"bearerAuth": {}}}

var fieldsParam = openapi.QueryParam("fields", "string", "Fields to return; prefix with + or - to adjust defaults", false)

func productParam() *openapi.Parameter {
	return openapi.PathParam("id", "Product ID")
}

var Spec = spec{
	List: &openapi.Operation{
		Summary:     "List products",
		Description: "List the seller's products with pagination and optional filters",
		Security:    bearer,
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("q", "string", "Search title, handle and description", false),
			openapi.QueryParam("id", "string", "Filter by product id (comma-separated)", false),
			openapi.QueryParam("title", "string", "Filter by title (contains)", false),
			openapi.QueryParam("handle", "string", "Filter by handle (comma-separated)", false),
			openapi.QueryParam("status", "string", "Filter by status (comma-separated)", false),
			openapi.QueryParam("sales_channel_id", "string", "Filter by sales channel", false),
			openapi.QueryParam("price_list_id", "string", "Filter by price list", false),
			fieldsParam,
			openapi.QueryParam("offset", "integer", "Records to skip", false),
			openapi.QueryParam("limit", "integer", "Records to return", false),
			openapi.QueryParam("order", "string", "Sort field, prefix with - for descending", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Products list", "ProductList"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Create: &openapi.Operation{
		Summary:     "Create product",
		Description: "Create a product owned by the seller. Status becomes proposed when approval is required.",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{fieldsParam},
		RequestBody: openapi.RequestBodyJSON("CreateProduct", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Product created", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Export: &openapi.Operation{
		Summary:     "Export products",
		Description: "Write the seller's catalog as CSV to storage and return its key",
		Security:    bearer,
		Responses: map[int]*openapi.Response{
			202: openapi.ResponseJSON("Export written", "ExportResponse"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Import: &openapi.Operation{
		Summary:     "Import products",
		Description: "Create products from a CSV file, one product per handle",
		Security:    bearer,
		RequestBody: &openapi.RequestBody{
			Required: true,
			Content: map[string]*openapi.MediaType{
				"multipart/form-data": {
					Schema: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							UploadField: {Type: "string", Format: "binary", Description: "CSV file"},
						},
						Required: []string{UploadField},
					},
				},
			},
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Import summary", "ImportResult"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	Retrieve: &openapi.Operation{
		Summary:    "Retrieve product",
		Security:   bearer,
		Parameters: []*openapi.Parameter{productParam(), fieldsParam},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product details", "ProductResponse"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Update: &openapi.Operation{
		Summary:     "Update product",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("UpdateProduct", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product updated", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	Delete: &openapi.Operation{
		Summary:    "Delete product",
		Security:   bearer,
		Parameters: []*openapi.Parameter{productParam()},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product deleted", "DeleteResponse"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	AssignBrand: &openapi.Operation{
		Summary:     "Assign brand",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("AssignBrand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product updated", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	UpdateStatus: &openapi.Operation{
		Summary:     "Update product status",
		Description: "Publishing becomes a proposal when approval is required",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("UpdateStatus", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product updated", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	ApplicableAttributes: &openapi.Operation{
		Summary:     "List applicable attributes",
		Description: "Attributes that are global or linked to one of the product's categories",
		Security:    bearer,
		Parameters:  append([]*openapi.Parameter{productParam()}, attributes.Parameters()...),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Attributes list", "AttributeList"),
			400: openapi.ResponseRef("BadRequest"),
		},
	},
	CreateVariant: &openapi.Operation{
		Summary:     "Create variant",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("CreateVariant", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product with new variant", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			403: openapi.ResponseRef("Forbidden"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	UpdateVariant: &openapi.Operation{
		Summary:     "Update variant",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), openapi.PathParam("variant_id", "Variant ID"), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("UpdateVariant", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product updated", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	DeleteVariant: &openapi.Operation{
		Summary:    "Delete variant",
		Security:   bearer,
		Parameters: []*openapi.Parameter{productParam(), openapi.PathParam("variant_id", "Variant ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Variant deleted", "DeleteResponse"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	CreateOption: &openapi.Operation{
		Summary:     "Create option",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("CreateOption", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product with new option", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	UpdateOption: &openapi.Operation{
		Summary:     "Update option",
		Security:    bearer,
		Parameters:  []*openapi.Parameter{productParam(), openapi.PathParam("option_id", "Option ID"), fieldsParam},
		RequestBody: openapi.RequestBodyJSON("UpdateOption", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Product updated", "ProductResponse"),
			400: openapi.ResponseRef("BadRequest"),
			404: openapi.ResponseRef("NotFound"),
			409: openapi.ResponseRef("Conflict"),
		},
	},
	DeleteOption: &openapi.Operation{
		Summary:    "Delete option",
		Security:   bearer,
		Parameters: []*openapi.Parameter{productParam(), openapi.PathParam("option_id", "Option ID")},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Option deleted", "DeleteResponse"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

func str(desc string) *openapi.Schema {
	return &openapi.Schema{Type: "string", Description: desc}
}

var priceSchema = &openapi.Schema{
	Type:     "object",
	Required: []string{"amount", "currency_code"},
	Properties: map[string]*openapi.Schema{
		"amount":        {Type: "integer", Description: "Amount in the currency's smallest unit"},
		"currency_code": {Type: "string", Example: "usd"},
	},
}

var statusSchema = &openapi.Schema{
	Type: "string",
	Enum: []string{string(StatusDraft), string(StatusProposed), string(StatusPublished), string(StatusRejected)},
}

// Schemas returns the product component schemas, including the attribute
// schemas referenced by the applicable attributes route.
func Schemas() map[string]*openapi.Schema {
	schemas := map[string]*openapi.Schema{
		"Product": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":          {Type: "string", Format: "uuid"},
				"title":       str(""),
				"subtitle":    str(""),
				"description": str(""),
				"handle":      str("URL-safe unique identifier"),
				"status":      statusSchema,
				"thumbnail":   str(""),
				"brand_name":  str(""),
				"options":     {Type: "array", Items: openapi.SchemaRef("ProductOption")},
				"variants":    {Type: "array", Items: openapi.SchemaRef("ProductVariant")},
				"created_at":  {Type: "string", Format: "date-time"},
				"updated_at":  {Type: "string", Format: "date-time"},
			},
		},
		"ProductOption": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"product_id": {Type: "string", Format: "uuid"},
				"title":      str(""),
				"values":     {Type: "array", Items: str("")},
			},
		},
		"ProductVariant": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":         {Type: "string", Format: "uuid"},
				"product_id": {Type: "string", Format: "uuid"},
				"title":      str(""),
				"sku":        str(""),
				"options":    {Type: "object", AdditionalProperties: str("")},
				"prices":     {Type: "array", Items: priceSchema},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"ProductResponse": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"product": openapi.SchemaRef("Product")},
		},
		"ProductList": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"products": {Type: "array", Items: openapi.SchemaRef("Product")},
				"count":    {Type: "integer"},
				"offset":   {Type: "integer"},
				"limit":    {Type: "integer"},
			},
		},
		"CreateProduct": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"title":       str(""),
				"subtitle":    str(""),
				"description": str(""),
				"handle":      str("Derived from the title when omitted"),
				"status":      {Type: "string", Enum: []string{string(StatusDraft), string(StatusProposed)}},
				"thumbnail":   str(""),
				"options":     {Type: "array", Items: openapi.SchemaRef("CreateOption")},
				"variants":    {Type: "array", Items: openapi.SchemaRef("CreateVariant")},
				"sales_channels": {
					Type:  "array",
					Items: &openapi.Schema{Type: "object", Properties: map[string]*openapi.Schema{"id": str("")}},
				},
			},
		},
		"UpdateProduct": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":       str(""),
				"subtitle":    str(""),
				"description": str(""),
				"handle":      str(""),
				"status":      {Type: "string", Enum: []string{string(StatusDraft), string(StatusProposed)}},
				"thumbnail":   str(""),
			},
		},
		"AssignBrand": {
			Type:       "object",
			Required:   []string{"brand_name"},
			Properties: map[string]*openapi.Schema{"brand_name": str("")},
		},
		"UpdateStatus": {
			Type:     "object",
			Required: []string{"status"},
			Properties: map[string]*openapi.Schema{
				"status": {Type: "string", Enum: []string{string(StatusDraft), string(StatusProposed), string(StatusPublished)}},
			},
		},
		"CreateVariant": {
			Type:     "object",
			Required: []string{"title"},
			Properties: map[string]*openapi.Schema{
				"title":   str(""),
				"sku":     str(""),
				"options": {Type: "object", AdditionalProperties: str("")},
				"prices":  {Type: "array", Items: priceSchema},
			},
		},
		"UpdateVariant": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":   str(""),
				"sku":     str(""),
				"options": {Type: "object", AdditionalProperties: str("")},
				"prices":  {Type: "array", Items: priceSchema},
			},
		},
		"CreateOption": {
			Type:     "object",
			Required: []string{"title", "values"},
			Properties: map[string]*openapi.Schema{
				"title":  str(""),
				"values": {Type: "array", Items: str("")},
			},
		},
		"UpdateOption": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"title":  str(""),
				"values": {Type: "array", Items: str("")},
			},
		},
		"DeleteResponse": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"id":      str(""),
				"object":  str(""),
				"deleted": {Type: "boolean"},
				"parent":  openapi.SchemaRef("Product"),
			},
		},
		"ExportResponse": {
			Type:       "object",
			Properties: map[string]*openapi.Schema{"file_key": str("Storage key of the CSV file")},
		},
		"ImportResult": {
			Type: "object",
			Properties: map[string]*openapi.Schema{
				"created": {Type: "array", Items: str("Product ID")},
				"errors": {
					Type: "array",
					Items: &openapi.Schema{
						Type: "object",
						Properties: map[string]*openapi.Schema{
							"line":    {Type: "integer"},
							"handle":  str(""),
							"message": str(""),
						},
					},
				},
			},
		},
	}

	for name, s := range attributes.Schemas() {
		schemas[name] = s
	}
	return schemas
}
