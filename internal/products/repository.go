package products

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a product repository.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "products"),
	}
}

func (r *repo) List(ctx context.Context, req ListRequest) (*pagination.PageResult[Product], error) {
	qb := query.NewBuilder(projection, defaultSort)
	req.Filters.Apply(qb)

	if len(req.Order) > 0 {
		qb.OrderByFields(req.Order)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(req.Window.Offset, req.Window.Limit)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	if err := r.loadRelations(ctx, items, req.Relations); err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(items, total, req.Window)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID, rel Relations) (*Product, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	items := []Product{p}
	if err := r.loadRelations(ctx, items, rel); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// loadRelations fills options and variants for items, querying both
// collections concurrently.
func (r *repo) loadRelations(ctx context.Context, items []Product, rel Relations) error {
	if len(items) == 0 || (!rel.Options && !rel.Variants) {
		return nil
	}

	ids := make([]string, len(items))
	index := make(map[uuid.UUID]int, len(items))
	for i, p := range items {
		ids[i] = p.ID.String()
		index[p.ID] = i
	}

	var options []Option
	var variants []Variant

	g, gctx := errgroup.WithContext(ctx)
	if rel.Options {
		g.Go(func() error {
			var err error
			options, err = repository.QueryMany(gctx, r.db,
				"SELECT "+optionColumns+" FROM product_option WHERE product_id = ANY($1::uuid[]) ORDER BY title",
				[]any{ids}, scanOption)
			if err != nil {
				return fmt.Errorf("query options: %w", err)
			}
			return nil
		})
	}
	if rel.Variants {
		g.Go(func() error {
			var err error
			variants, err = repository.QueryMany(gctx, r.db,
				"SELECT "+variantColumns+" FROM product_variant WHERE product_id = ANY($1::uuid[]) ORDER BY created_at",
				[]any{ids}, scanVariant)
			if err != nil {
				return fmt.Errorf("query variants: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, o := range options {
		i := index[o.ProductID]
		items[i].Options = append(items[i].Options, o)
	}
	for _, v := range variants {
		i := index[v.ProductID]
		items[i].Variants = append(items[i].Variants, v)
	}
	return nil
}

func (r *repo) Create(ctx context.Context, sellerID string, cmd CreateProduct) (*Product, error) {
	id := uuid.New()

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		const q = `INSERT INTO product(id, title, subtitle, description, handle, status, thumbnail)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`

		if _, err := tx.ExecContext(ctx, q,
			id, cmd.Title, cmd.Subtitle, cmd.Description, cmd.Handle, cmd.Status, cmd.Thumbnail,
		); err != nil {
			return struct{}{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO seller_product(seller_id, product_id) VALUES ($1, $2)", sellerID, id,
		); err != nil {
			return struct{}{}, fmt.Errorf("link seller: %w", err)
		}

		for _, sc := range cmd.SalesChannels {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO product_sales_channel(product_id, sales_channel_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
				id, sc.ID,
			); err != nil {
				return struct{}{}, fmt.Errorf("link sales channel: %w", err)
			}
		}

		for _, o := range cmd.Options {
			if _, err := insertOption(ctx, tx, id, o); err != nil {
				return struct{}{}, err
			}
		}
		for _, v := range cmd.Variants {
			if _, err := insertVariant(ctx, tx, id, v); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("product created", "id", id, "seller_id", sellerID, "handle", cmd.Handle, "status", cmd.Status)
	return r.Find(ctx, id, Relations{Options: true, Variants: true})
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateProduct) error {
	const q = `UPDATE product SET
			title = COALESCE($2, title),
			subtitle = COALESCE($3, subtitle),
			description = COALESCE($4, description),
			handle = COALESCE($5, handle),
			status = COALESCE($6, status),
			thumbnail = COALESCE($7, thumbnail),
			updated_at = NOW()
		WHERE id = $1`

	var status *string
	if cmd.Status != nil {
		s := string(*cmd.Status)
		status = &s
	}

	err := repository.ExecExpectOne(ctx, r.db, q,
		id, cmd.Title, cmd.Subtitle, cmd.Description, cmd.Handle, status, cmd.Thumbnail)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product updated", "id", id)
	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, q := range []string{
			"DELETE FROM seller_product WHERE product_id = $1",
			"DELETE FROM product_sales_channel WHERE product_id = $1",
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return struct{}{}, fmt.Errorf("unlink product: %w", err)
			}
		}
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM product WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product deleted", "id", id)
	return nil
}

func (r *repo) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	err := repository.ExecExpectOne(ctx, r.db,
		"UPDATE product SET status = $2, updated_at = NOW() WHERE id = $1", id, status)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("product status changed", "id", id, "status", status)
	return nil
}

func (r *repo) AssignBrand(ctx context.Context, id uuid.UUID, brand string) error {
	err := repository.ExecExpectOne(ctx, r.db,
		"UPDATE product SET brand_name = $2, updated_at = NOW() WHERE id = $1", id, brand)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func (r *repo) CreateVariant(ctx context.Context, productID uuid.UUID, cmd CreateVariant) (*Variant, error) {
	v, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Variant, error) {
		if err := touch(ctx, tx, productID); err != nil {
			return Variant{}, err
		}
		return insertVariant(ctx, tx, productID, cmd)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("variant created", "product_id", productID, "id", v.ID)
	return &v, nil
}

func (r *repo) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, cmd UpdateVariant) error {
	options, err := marshalNullable(cmd.Options, cmd.Options == nil)
	if err != nil {
		return err
	}
	prices, err := marshalNullable(cmd.Prices, cmd.Prices == nil)
	if err != nil {
		return err
	}

	const q = `UPDATE product_variant SET
			title = COALESCE($3, title),
			sku = COALESCE($4, sku),
			options = COALESCE($5::jsonb, options),
			prices = COALESCE($6::jsonb, prices),
			updated_at = NOW()
		WHERE id = $1 AND product_id = $2`

	err = repository.ExecExpectOne(ctx, r.db, q, variantID, productID, cmd.Title, cmd.SKU, options, prices)
	return repository.MapError(err, ErrVariantNotFound, ErrDuplicateSKU)
}

func (r *repo) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db,
		"DELETE FROM product_variant WHERE id = $1 AND product_id = $2", variantID, productID)
	return repository.MapError(err, ErrVariantNotFound, ErrDuplicateSKU)
}

func (r *repo) CreateOption(ctx context.Context, productID uuid.UUID, cmd CreateOption) (*Option, error) {
	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Option, error) {
		if err := touch(ctx, tx, productID); err != nil {
			return Option{}, err
		}
		return insertOption(ctx, tx, productID, cmd)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("option created", "product_id", productID, "id", o.ID)
	return &o, nil
}

func (r *repo) UpdateOption(ctx context.Context, productID, optionID uuid.UUID, cmd UpdateOption) error {
	values, err := marshalNullable(cmd.Values, cmd.Values == nil)
	if err != nil {
		return err
	}

	const q = `UPDATE product_option SET
			title = COALESCE($3, title),
			"values" = COALESCE($4::jsonb, "values")
		WHERE id = $1 AND product_id = $2`

	err = repository.ExecExpectOne(ctx, r.db, q, optionID, productID, cmd.Title, values)
	return repository.MapError(err, ErrOptionNotFound, ErrDuplicateOption)
}

func (r *repo) DeleteOption(ctx context.Context, productID, optionID uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, r.db,
		"DELETE FROM product_option WHERE id = $1 AND product_id = $2", optionID, productID)
	return repository.MapError(err, ErrOptionNotFound, ErrDuplicateOption)
}

func (r *repo) BySeller(ctx context.Context, sellerID string) ([]Product, error) {
	q, args := query.NewBuilder(projection, query.SortField{Field: "created_at"}).
		WhereRaw("p.id IN (SELECT sp.product_id FROM seller_product sp WHERE sp.seller_id = $%d)", sellerID).
		BuildAll()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanProduct)
	if err != nil {
		return nil, fmt.Errorf("query seller products: %w", err)
	}

	if err := r.loadRelations(ctx, items, Relations{Variants: true}); err != nil {
		return nil, err
	}
	return items, nil
}

// touch bumps the product's updated_at, failing with ErrNotFound when it does not exist.
func touch(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	err := repository.ExecExpectOne(ctx, tx, "UPDATE product SET updated_at = NOW() WHERE id = $1", id)
	return repository.MapError(err, ErrNotFound, ErrDuplicate)
}

func insertOption(ctx context.Context, tx *sql.Tx, productID uuid.UUID, cmd CreateOption) (Option, error) {
	values, err := json.Marshal(cmd.Values)
	if err != nil {
		return Option{}, fmt.Errorf("encode values: %w", err)
	}

	q := `INSERT INTO product_option(id, product_id, title, "values") VALUES ($1, $2, $3, $4)
		RETURNING ` + optionColumns

	o, err := repository.QueryOne(ctx, tx, q, []any{uuid.New(), productID, cmd.Title, values}, scanOption)
	if err != nil {
		return Option{}, repository.MapError(err, ErrNotFound, ErrDuplicateOption)
	}
	return o, nil
}

func insertVariant(ctx context.Context, tx *sql.Tx, productID uuid.UUID, cmd CreateVariant) (Variant, error) {
	options, err := json.Marshal(nonNilMap(cmd.Options))
	if err != nil {
		return Variant{}, fmt.Errorf("encode options: %w", err)
	}
	prices, err := json.Marshal(nonNilSlice(cmd.Prices))
	if err != nil {
		return Variant{}, fmt.Errorf("encode prices: %w", err)
	}

	q := `INSERT INTO product_variant(id, product_id, title, sku, options, prices)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + variantColumns

	v, err := repository.QueryOne(ctx, tx, q,
		[]any{uuid.New(), productID, cmd.Title, cmd.SKU, options, prices}, scanVariant)
	if err != nil {
		return Variant{}, repository.MapError(err, ErrNotFound, ErrDuplicateSKU)
	}
	return v, nil
}

// marshalNullable encodes v as JSON. It returns nil when absent is set so the
// column is left unchanged.
func marshalNullable(v any, absent bool) (*string, error) {
	if absent {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	s := string(data)
	return &s, nil
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func nonNilSlice(p []Price) []Price {
	if p == nil {
		return []Price{}
	}
	return p
}

