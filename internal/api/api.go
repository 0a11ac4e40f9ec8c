// Package api assembles the vendor API module: domain systems, handlers,
// the route middleware table, and the OpenAPI document.
package api

import (
	"net/http"

	"github.com/JaimeStill/vendor-products/internal/auth"
	"github.com/JaimeStill/vendor-products/internal/config"
	"github.com/JaimeStill/vendor-products/internal/infrastructure"
	"github.com/JaimeStill/vendor-products/pkg/middleware"
	"github.com/JaimeStill/vendor-products/pkg/module"
	"github.com/JaimeStill/vendor-products/pkg/openapi"
)

// NewModule builds the vendor API module mounted at cfg.API.BasePath.
// The OpenAPI document is served unauthenticated; every other route requires
// a seller token and runs its route table chain before the handler.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime, cfg)

	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)

	mux := http.NewServeMux()
	registry := registerRoutes(mux, spec, runtime, domain, cfg)

	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, err
	}

	public := http.NewServeMux()
	public.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))
	public.Handle("/", middleware.Chain(
		auth.Authenticate(&cfg.Auth, runtime.Logger),
		registry.Middleware(),
	)(mux))

	m := module.New(cfg.API.BasePath, public)
	m.Use(middleware.TrimSlash())
	m.Use(middleware.RequestID())
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
