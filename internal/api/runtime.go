package api

import (
	"github.com/JaimeStill/vendor-products/internal/config"
	"github.com/JaimeStill/vendor-products/internal/infrastructure"
	"github.com/JaimeStill/vendor-products/internal/products"
	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination     pagination.Config
	Validator      *validate.Validator
	UploadMaxBytes int64
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	logger := infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    logger,
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Validator: validate.New(
			logger,
			validate.WithPattern("handle", products.HandlePattern, "must be lowercase letters and digits separated by single hyphens"),
		),
		UploadMaxBytes: cfg.Upload.MaxSizeBytes(),
	}
}
