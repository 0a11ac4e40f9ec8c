package query

import "strings"

// SortField is a single ORDER BY term.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated sort expression.
// A leading "-" marks a descending field: "-created_at,title".
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		desc := false
		if strings.HasPrefix(part, "-") {
			desc = true
			part = part[1:]
		}
		part = strings.TrimPrefix(part, "+")

		if part == "" {
			continue
		}

		fields = append(fields, SortField{Field: part, Descending: desc})
	}

	return fields
}

// String renders the field back into sort-expression form.
func (s SortField) String() string {
	if s.Descending {
		return "-" + s.Field
	}
	return s.Field
}
