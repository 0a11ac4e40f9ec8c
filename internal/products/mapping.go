package products

import (
	"encoding/json"
	"fmt"
	"strings"
)

// relationsFor reports which child collections the selected fields need.
func relationsFor(fields []string) Relations {
	var rel Relations
	for _, f := range fields {
		root, _, _ := strings.Cut(f, ".")
		switch root {
		case "options":
			rel.Options = true
		case "variants":
			rel.Variants = true
		case "*":
			return Relations{Options: true, Variants: true}
		}
	}
	return rel
}

// Project returns the product as a map holding only the selected fields.
// A nested selection such as "variants.sku" keeps the listed keys of each
// child object, plus its id. An empty selection keeps every field.
func Project(p Product, fields []string) (map[string]any, error) {
	full, err := toMap(p)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return full, nil
	}

	out := make(map[string]any, len(fields))
	nested := make(map[string][]string)

	for _, f := range fields {
		if f == "*" {
			return full, nil
		}
		root, sub, ok := strings.Cut(f, ".")
		v, exists := full[root]
		if !exists {
			continue
		}
		if !ok || sub == "*" {
			out[root] = v
			delete(nested, root)
			continue
		}
		if _, whole := out[root]; whole && nested[root] == nil {
			continue
		}
		nested[root] = append(nested[root], sub)
	}

	for root, subs := range nested {
		out[root] = projectChildren(full[root], subs)
	}
	return out, nil
}

// ProjectAll projects every product with the same selection.
func ProjectAll(items []Product, fields []string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(items))
	for _, p := range items {
		m, err := Project(p, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func projectChildren(v any, keys []string) any {
	children, ok := v.([]any)
	if !ok {
		return v
	}

	out := make([]any, 0, len(children))
	for _, c := range children {
		obj, ok := c.(map[string]any)
		if !ok {
			out = append(out, c)
			continue
		}
		trimmed := map[string]any{"id": obj["id"]}
		for _, k := range keys {
			if val, exists := obj[k]; exists {
				trimmed[k] = val
			}
		}
		out = append(out, trimmed)
	}
	return out
}

func toMap(p Product) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode product: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return m, nil
}
