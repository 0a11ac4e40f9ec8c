package products

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/vendor-products/pkg/repository"
)

func scanProduct(s repository.Scanner) (Product, error) {
	var p Product
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Subtitle,
		&p.Description,
		&p.Handle,
		&p.Status,
		&p.Thumbnail,
		&p.BrandName,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Options = []Option{}
	p.Variants = []Variant{}
	return p, err
}

func scanOption(s repository.Scanner) (Option, error) {
	var o Option
	var values []byte
	if err := s.Scan(&o.ID, &o.ProductID, &o.Title, &values); err != nil {
		return o, err
	}
	o.Values = []string{}
	return o, decodeJSON(values, &o.Values, "values")
}

func scanVariant(s repository.Scanner) (Variant, error) {
	var v Variant
	var options, prices []byte
	err := s.Scan(
		&v.ID,
		&v.ProductID,
		&v.Title,
		&v.SKU,
		&options,
		&prices,
		&v.CreatedAt,
		&v.UpdatedAt,
	)
	if err != nil {
		return v, err
	}

	v.Options = map[string]string{}
	v.Prices = []Price{}
	if err := decodeJSON(options, &v.Options, "options"); err != nil {
		return v, err
	}
	return v, decodeJSON(prices, &v.Prices, "prices")
}

func decodeJSON(data []byte, dst any, column string) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", column, err)
	}
	return nil
}
