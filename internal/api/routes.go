package api

import (
	"net/http"

	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/internal/config"
	"github.com/JaimeStill/vendor-products/internal/products"
	"github.com/JaimeStill/vendor-products/pkg/openapi"
	pkgroutes "github.com/JaimeStill/vendor-products/pkg/routes"
)

// registerRoutes mounts the handlers on mux and returns the route middleware
// table that guards them.
func registerRoutes(
	mux *http.ServeMux,
	spec *openapi.Spec,
	runtime *Runtime,
	domain *Domain,
	cfg *config.Config,
) *pkgroutes.Registry {
	productsHandler := products.NewHandler(
		domain.Products,
		domain.Attributes,
		runtime.Storage,
		domain.Rules,
		runtime.Validator,
		runtime.Logger,
	)

	pkgroutes.Register(mux, cfg.API.BasePath, spec, productsHandler.Routes())
	spec.Components.AddSchemas(products.Schemas())

	attrQuery := attributes.QueryConfig()
	attrQuery.Pagination = runtime.Pagination

	return products.Middlewares(cfg.API.BasePath, products.MiddlewareDeps{
		Validator:      runtime.Validator,
		Rules:          domain.Rules,
		Links:          domain.Links,
		Queries:        products.NewQueryConfigs(runtime.Pagination),
		Attributes:     attrQuery,
		UploadMaxBytes: runtime.UploadMaxBytes,
		Logger:         runtime.Logger,
	})
}
