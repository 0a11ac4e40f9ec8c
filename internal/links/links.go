// Package links resolves cross-module link tables for ownership checks and
// list filters.
package links

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/JaimeStill/vendor-products/pkg/repository"
)

// Link describes a two-column link table.
type Link struct {
	// Name identifies the link in error messages.
	Name  string
	Table string
	// ResourceField is the linked resource column (product_id).
	ResourceField string
	// OwnerField is the owning side of the link (seller_id).
	OwnerField string
}

var (
	LinkSellerProduct = Link{
		Name:          "seller_product",
		Table:         "seller_product",
		ResourceField: "product_id",
		OwnerField:    "seller_id",
	}

	LinkProductSalesChannel = Link{
		Name:          "product_sales_channel",
		Table:         "product_sales_channel",
		ResourceField: "product_id",
		OwnerField:    "sales_channel_id",
	}
)

// Resolver looks up link rows. Implementations are safe for concurrent use.
type Resolver interface {
	// Resolve returns the distinct values of selectField in link for rows
	// whose filterField is one of values.
	Resolve(ctx context.Context, link Link, selectField, filterField string, values []string) ([]string, error)
	// PriceListProducts returns the ids of products with a variant priced in
	// one of the given price lists.
	PriceListProducts(ctx context.Context, priceListIDs []string) ([]string, error)
}

var identifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

type resolver struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewResolver creates a Resolver backed by PostgreSQL.
func NewResolver(db *sql.DB, logger *slog.Logger) Resolver {
	return &resolver{db: db, logger: logger.With("system", "links")}
}

func scanString(s repository.Scanner) (string, error) {
	var v string
	err := s.Scan(&v)
	return v, err
}

func (r *resolver) Resolve(ctx context.Context, link Link, selectField, filterField string, values []string) ([]string, error) {
	if len(values) == 0 {
		return []string{}, nil
	}
	for _, ident := range []string{link.Table, selectField, filterField} {
		if !identifier.MatchString(ident) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, ident)
		}
	}

	q := fmt.Sprintf(
		"SELECT DISTINCT %s::text FROM %s WHERE %s::text = ANY($1)",
		selectField, link.Table, filterField,
	)

	ids, err := repository.QueryMany(ctx, r.db, q, []any{values}, scanString)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", link.Name, err)
	}
	return ids, nil
}

func (r *resolver) PriceListProducts(ctx context.Context, priceListIDs []string) ([]string, error) {
	if len(priceListIDs) == 0 {
		return []string{}, nil
	}

	const q = `SELECT DISTINCT v.product_id::text
		FROM price_list_price plp
		JOIN product_variant v ON v.id = plp.variant_id
		WHERE plp.price_list_id::text = ANY($1)`

	ids, err := repository.QueryMany(ctx, r.db, q, []any{priceListIDs}, scanString)
	if err != nil {
		return nil, fmt.Errorf("resolve price lists: %w", err)
	}
	return ids, nil
}
