// Package attributes serves product attribute definitions applicable to a
// product through its categories.
package attributes

import "time"

// Attribute is a product attribute definition.
type Attribute struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Handle         string    `json:"handle"`
	Description    *string   `json:"description"`
	IsGlobal       bool      `json:"is_global"`
	IsFilterable   bool      `json:"is_filterable"`
	UIComponent    string    `json:"ui_component"`
	PossibleValues []string  `json:"possible_values"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Params are the accepted query parameters for attribute listings.
type Params struct {
	ID           []string `query:"id"`
	Q            string   `query:"q"`
	Name         string   `query:"name"`
	Handle       []string `query:"handle"`
	IsFilterable *bool    `query:"is_filterable"`
	UIComponent  []string `query:"ui_component" validate:"dive,oneof=select multivalue unit toggle text_area color_picker"`
}
