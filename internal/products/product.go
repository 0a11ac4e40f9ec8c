// Package products implements the vendor product endpoints: the product
// catalog of a seller, its variants and options, CSV import and export, and
// the route middleware table that guards them.
package products

import (
	"time"

	"github.com/google/uuid"
)

// Status is the publication state of a product.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusProposed  Status = "proposed"
	StatusPublished Status = "published"
	StatusRejected  Status = "rejected"
)

// Product is a seller's catalog entry.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Subtitle    *string   `json:"subtitle"`
	Description *string   `json:"description"`
	Handle      string    `json:"handle"`
	Status      Status    `json:"status"`
	Thumbnail   *string   `json:"thumbnail"`
	BrandName   *string   `json:"brand_name"`
	Options     []Option  `json:"options"`
	Variants    []Variant `json:"variants"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Option is a product axis such as size or color.
type Option struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Title     string    `json:"title"`
	Values    []string  `json:"values"`
}

// Variant is a purchasable combination of option values.
type Variant struct {
	ID        uuid.UUID         `json:"id"`
	ProductID uuid.UUID         `json:"product_id"`
	Title     string            `json:"title"`
	SKU       *string           `json:"sku"`
	Options   map[string]string `json:"options"`
	Prices    []Price           `json:"prices"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Price is an amount in the currency's minor unit.
type Price struct {
	Amount       int64  `json:"amount" validate:"gte=0"`
	CurrencyCode string `json:"currency_code" validate:"required,len=3,lowercase"`
}

// DeleteResponse acknowledges a deletion.
type DeleteResponse struct {
	ID      string         `json:"id"`
	Object  string         `json:"object"`
	Deleted bool           `json:"deleted"`
	Parent  map[string]any `json:"parent,omitempty"`
}
