package attributes

import (
	"encoding/json"
	"fmt"

	"github.com/JaimeStill/vendor-products/pkg/repository"
)

func scanAttribute(s repository.Scanner) (Attribute, error) {
	var a Attribute
	var values []byte
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Handle,
		&a.Description,
		&a.IsGlobal,
		&a.IsFilterable,
		&a.UIComponent,
		&values,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return a, err
	}

	a.PossibleValues = []string{}
	if len(values) > 0 {
		if err := json.Unmarshal(values, &a.PossibleValues); err != nil {
			return a, fmt.Errorf("decode possible_values: %w", err)
		}
	}
	return a, nil
}
