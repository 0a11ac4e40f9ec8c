package api

import (
	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/internal/config"
	"github.com/JaimeStill/vendor-products/internal/links"
	"github.com/JaimeStill/vendor-products/internal/products"
	"github.com/JaimeStill/vendor-products/internal/rules"
)

// Domain holds the systems behind the vendor API.
type Domain struct {
	Products   products.System
	Attributes attributes.System
	Rules      rules.Source
	Links      links.Resolver
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	db := runtime.Database.Connection()

	return &Domain{
		Products:   products.New(db, runtime.Logger),
		Attributes: attributes.New(db, runtime.Logger),
		Rules:      rules.NewStore(db, &cfg.Rules, runtime.Logger),
		Links:      links.NewResolver(db, runtime.Logger),
	}
}
