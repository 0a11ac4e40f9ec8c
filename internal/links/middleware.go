package links

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"

	"github.com/google/uuid"

	"github.com/JaimeStill/vendor-products/internal/auth"
	"github.com/JaimeStill/vendor-products/pkg/handlers"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

// Filter keys narrowed by the link filters.
const (
	FilterID          = "id"
	FilterSellerID    = "seller_id"
	FilterPriceListID = "price_list_id"
)

// LinkFilter turns a filter on FilterableField into an id filter on the
// resource by resolving it through Link.
type LinkFilter struct {
	Link            Link
	ResourceField   string
	FilterableField string
}

// CheckOwnership rejects the request unless the authenticated seller owns the
// resource whose id is the path value param. A resource with no link row is
// answered with 404; a foreign one with 403.
func CheckOwnership(res Resolver, link Link, param string, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "links", "link", link.Name)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFrom(r.Context())
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrNoActor)
				return
			}

			id := canonicalID(r.PathValue(param))
			owners, err := res.Resolve(r.Context(), link, link.OwnerField, link.ResourceField, []string{id})
			if err != nil {
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			if len(owners) == 0 {
				err := fmt.Errorf("%w: %s with %s: %s not found", ErrNotFound, link.Name, link.ResourceField, id)
				handlers.RespondError(w, logger, http.StatusNotFound, err)
				return
			}

			if !slices.Contains(owners, actor.SellerID) {
				handlers.RespondError(w, logger, http.StatusForbidden, ErrNotOwner)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// canonicalID returns the lowercase hyphenated form of a UUID in any of the
// forms uuid.Parse accepts. Other ids are returned unchanged.
func canonicalID(id string) string {
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}

// FilterBySeller scopes the list filters to the authenticated seller.
func FilterBySeller(logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "links")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := auth.ActorFrom(r.Context())
			if !ok {
				handlers.RespondError(w, logger, http.StatusUnauthorized, ErrNoActor)
				return
			}

			lc := listConfig(r)
			lc.Filters[FilterSellerID] = actor.SellerID
			next.ServeHTTP(w, r.WithContext(validate.WithListConfig(r.Context(), lc)))
		})
	}
}

// MaybeApplyLinkFilter replaces Filters[f.FilterableField], when present, with
// an id filter holding the linked resource ids.
func MaybeApplyLinkFilter(res Resolver, f LinkFilter, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "links", "link", f.Link.Name)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lc := listConfig(r)
			values, ok := lc.Strings(f.FilterableField)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ids, err := res.Resolve(r.Context(), f.Link, f.ResourceField, f.FilterableField, values)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			delete(lc.Filters, f.FilterableField)
			narrowIDs(lc, ids)
			next.ServeHTTP(w, r.WithContext(validate.WithListConfig(r.Context(), lc)))
		})
	}
}

// MaybeApplyPriceListsFilter replaces Filters["price_list_id"], when present,
// with an id filter holding the products priced in those lists.
func MaybeApplyPriceListsFilter(res Resolver, logger *slog.Logger) func(http.Handler) http.Handler {
	logger = logger.With("system", "links", "link", "price_list_price")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lc := listConfig(r)
			values, ok := lc.Strings(FilterPriceListID)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ids, err := res.PriceListProducts(r.Context(), values)
			if err != nil {
				handlers.RespondError(w, logger, http.StatusInternalServerError, err)
				return
			}

			delete(lc.Filters, FilterPriceListID)
			narrowIDs(lc, ids)
			next.ServeHTTP(w, r.WithContext(validate.WithListConfig(r.Context(), lc)))
		})
	}
}

// listConfig returns the request's list config, creating an empty one when
// no query validation ran.
func listConfig(r *http.Request) *validate.ListConfig {
	lc, ok := validate.ListConfigFrom(r)
	if !ok {
		lc = &validate.ListConfig{}
	}
	if lc.Filters == nil {
		lc.Filters = make(map[string]any)
	}
	return lc
}

// narrowIDs intersects ids with any existing id filter.
func narrowIDs(lc *validate.ListConfig, ids []string) {
	existing, ok := lc.Strings(FilterID)
	if !ok {
		lc.Filters[FilterID] = ids
		return
	}

	narrowed := make([]string, 0, len(ids))
	for _, id := range ids {
		if slices.Contains(existing, id) && !slices.Contains(narrowed, id) {
			narrowed = append(narrowed, id)
		}
	}
	lc.Filters[FilterID] = narrowed
}
