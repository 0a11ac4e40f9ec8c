package products

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/internal/links"
	"github.com/JaimeStill/vendor-products/internal/rules"
	"github.com/JaimeStill/vendor-products/pkg/middleware"
	"github.com/JaimeStill/vendor-products/pkg/routes"
	"github.com/JaimeStill/vendor-products/pkg/upload"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

// UploadField is the multipart field carrying an import file.
const UploadField = "file"

// reservedProductPaths are literal routes that also match the {id} matchers.
var reservedProductPaths = regexp.MustCompile(`^.*/products/(export|import)$`)

// MiddlewareDeps are the collaborators the route table is built from.
type MiddlewareDeps struct {
	Validator      *validate.Validator
	Rules          rules.Source
	Links          links.Resolver
	Queries        QueryConfigs
	Attributes     validate.QueryConfig
	UploadMaxBytes int64
	Logger         *slog.Logger
}

// Middlewares builds the vendor products route table under basePath.
// Within each descriptor steps run as gates, body parsing, ownership, body
// validation, query validation, then link filters.
func Middlewares(basePath string, d MiddlewareDeps) *routes.Registry {
	logger := d.Logger.With("system", "products-middlewares")
	base := basePath + "/products"

	owned := links.CheckOwnership(d.Links, links.LinkSellerProduct, "id", logger)
	retrieve := validate.Query[Params](d.Validator, d.Queries.Retrieve)

	unless := func(mw middleware.Middleware) middleware.Middleware {
		return middleware.UnlessPath(reservedProductPaths, mw)
	}

	return routes.NewRegistry(
		routes.Descriptor{
			Methods: []string{http.MethodGet},
			Matcher: base,
			Middlewares: []middleware.Middleware{
				validate.Query[Params](d.Validator, d.Queries.List),
				links.FilterBySeller(logger),
				links.MaybeApplyLinkFilter(d.Links, links.LinkFilter{
					Link:            links.LinkSellerProduct,
					ResourceField:   "product_id",
					FilterableField: links.FilterSellerID,
				}, logger),
				links.MaybeApplyLinkFilter(d.Links, links.LinkFilter{
					Link:            links.LinkProductSalesChannel,
					ResourceField:   "product_id",
					FilterableField: "sales_channel_id",
				}, logger),
				links.MaybeApplyPriceListsFilter(d.Links, logger),
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base,
			Middlewares: []middleware.Middleware{
				rules.Check(d.Rules, rules.GlobalProductCatalog, false, logger),
				rules.Check(d.Rules, rules.ProductRequestEnabled, true, logger),
				validate.Body[CreateProduct](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods:     []string{http.MethodPost},
			Matcher:     base + "/export",
			Middlewares: []middleware.Middleware{},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/import",
			Middlewares: []middleware.Middleware{
				rules.Check(d.Rules, rules.ProductImportEnabled, true, logger),
				upload.Single(UploadField, d.UploadMaxBytes, logger),
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodGet},
			Matcher: base + "/{id}",
			Middlewares: []middleware.Middleware{
				unless(owned),
				unless(retrieve),
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}",
			Middlewares: []middleware.Middleware{
				unless(owned),
				unless(validate.Body[UpdateProduct](d.Validator)),
				unless(retrieve),
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}/brand",
			Middlewares: []middleware.Middleware{
				owned,
				validate.Body[AssignBrand](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}/variants",
			Middlewares: []middleware.Middleware{
				owned,
				validate.Body[CreateVariant](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}/variants/{variant_id}",
			Middlewares: []middleware.Middleware{
				owned,
				validate.Body[UpdateVariant](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods:     []string{http.MethodDelete},
			Matcher:     base + "/{id}/variants/{variant_id}",
			Middlewares: []middleware.Middleware{owned},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}/options",
			Middlewares: []middleware.Middleware{
				owned,
				validate.Body[CreateOption](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}/options/{option_id}",
			Middlewares: []middleware.Middleware{
				owned,
				validate.Body[UpdateOption](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods:     []string{http.MethodDelete},
			Matcher:     base + "/{id}/options/{option_id}",
			Middlewares: []middleware.Middleware{owned},
		},
		routes.Descriptor{
			Methods:     []string{http.MethodDelete},
			Matcher:     base + "/{id}",
			Middlewares: []middleware.Middleware{owned},
		},
		routes.Descriptor{
			Methods: []string{http.MethodPost},
			Matcher: base + "/{id}/status",
			Middlewares: []middleware.Middleware{
				owned,
				validate.Body[UpdateStatus](d.Validator),
				retrieve,
			},
		},
		routes.Descriptor{
			Methods: []string{http.MethodGet},
			Matcher: base + "/{id}/applicable-attributes",
			Middlewares: []middleware.Middleware{
				validate.Query[attributes.Params](d.Validator, d.Attributes),
			},
		},
	)
}
