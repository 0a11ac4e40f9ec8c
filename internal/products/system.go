package products

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/query"
)

// Relations selects which child collections are loaded with products.
type Relations struct {
	Options  bool
	Variants bool
}

// ListRequest describes a product listing.
type ListRequest struct {
	Filters   Filters
	Order     []query.SortField
	Window    pagination.Window
	Relations Relations
}

// System defines the product catalog operations.
type System interface {
	List(ctx context.Context, req ListRequest) (*pagination.PageResult[Product], error)
	Find(ctx context.Context, id uuid.UUID, rel Relations) (*Product, error)
	Create(ctx context.Context, sellerID string, cmd CreateProduct) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
	AssignBrand(ctx context.Context, id uuid.UUID, brand string) error

	CreateVariant(ctx context.Context, productID uuid.UUID, cmd CreateVariant) (*Variant, error)
	UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, cmd UpdateVariant) error
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error

	CreateOption(ctx context.Context, productID uuid.UUID, cmd CreateOption) (*Option, error)
	UpdateOption(ctx context.Context, productID, optionID uuid.UUID, cmd UpdateOption) error
	DeleteOption(ctx context.Context, productID, optionID uuid.UUID) error

	// BySeller returns every product of the seller with its variants, oldest first.
	BySeller(ctx context.Context, sellerID string) ([]Product, error)
}
