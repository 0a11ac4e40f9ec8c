package attributes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/repository"
)

// System provides attribute lookups.
type System interface {
	// Applicable lists attributes that are global or linked to one of the
	// product's categories.
	Applicable(ctx context.Context, productID string, filters Filters, order []query.SortField, w pagination.Window) (*pagination.PageResult[Attribute], error)
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an attribute repository.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{db: db, logger: logger.With("system", "attributes")}
}

const applicableClause = `(a.is_global OR a.id IN (
	SELECT ac.attribute_id
	FROM attribute_category ac
	JOIN product_category_product pcp ON pcp.product_category_id = ac.product_category_id
	WHERE pcp.product_id = $%d))`

func (r *repo) Applicable(ctx context.Context, productID string, filters Filters, order []query.SortField, w pagination.Window) (*pagination.PageResult[Attribute], error) {
	qb := query.NewBuilder(projection, defaultSort).
		WhereRaw(applicableClause, productID)
	filters.Apply(qb)

	if len(order) > 0 {
		qb.OrderByFields(order)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count attributes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(w.Offset, w.Limit)
	attrs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAttribute)
	if err != nil {
		return nil, fmt.Errorf("query attributes: %w", err)
	}

	result := pagination.NewPageResult(attrs, total, w)
	return &result, nil
}
