package validate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/query"
)

// Reserved query parameters consumed by the list configuration rather than T.
const (
	ParamFields = "fields"
	ParamOffset = "offset"
	ParamLimit  = "limit"
	ParamOrder  = "order"
)

// QueryConfig describes how a route's query string maps onto a ListConfig.
type QueryConfig struct {
	// Defaults are the fields selected when the request names none.
	Defaults []string
	// Allowed restricts selectable fields. Empty allows any field.
	Allowed []string
	// IsList enables offset, limit, and order.
	IsList       bool
	DefaultOrder string
	// Sortable restricts order fields. Empty allows any field.
	Sortable   []string
	Pagination pagination.Config
}

// ListConfig is the request-scoped result of query validation.
// Filters holds every remaining non-empty parameter and may be narrowed by
// later middleware.
type ListConfig struct {
	Fields  []string
	Offset  int
	Limit   int
	Order   []query.SortField
	IsList  bool
	Filters map[string]any
}

// Window returns the offset/limit pair.
func (c *ListConfig) Window() pagination.Window {
	return pagination.Window{Offset: c.Offset, Limit: c.Limit}
}

// Selects reports whether field is part of the selection.
// Nested selections ("variants.sku") select their root ("variants").
func (c *ListConfig) Selects(field string) bool {
	for _, f := range c.Fields {
		if f == field || f == "*" || strings.HasPrefix(f, field+".") {
			return true
		}
	}
	return false
}

// Strings returns the filter value for key as a string slice.
// It reports false when the key is absent.
func (c *ListConfig) Strings(key string) ([]string, bool) {
	v, ok := c.Filters[key]
	if !ok {
		return nil, false
	}
	switch t := v.(type) {
	case string:
		return []string{t}, true
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			out = append(out, fmt.Sprint(item))
		}
		return out, true
	default:
		return []string{fmt.Sprint(t)}, true
	}
}

// String returns the first filter value for key, or "".
func (c *ListConfig) String(key string) string {
	if vals, ok := c.Strings(key); ok && len(vals) > 0 {
		return vals[0]
	}
	return ""
}

type queryKey[T any] struct{}
type listConfigKey struct{}

// Query decodes the URL query into T, validates it, and builds the request's
// ListConfig from cfg. T receives every parameter except the reserved ones;
// unknown parameters are rejected. Comma-separated and repeated keys both
// decode into slice fields.
func Query[T any](v *Validator, cfg QueryConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params, lc, err := parseQuery[T](v, cfg, r.URL.Query())
			if err != nil {
				handlers.RespondError(w, v.logger, queryStatus(err), err)
				return
			}

			ctx := context.WithValue(r.Context(), queryKey[T]{}, params)
			ctx = context.WithValue(ctx, listConfigKey{}, lc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// queryStatus answers 400 for request errors and 500 for failures of the
// decoding machinery itself.
func queryStatus(err error) int {
	var verr *Error
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// QueryFrom returns the parameters stored by Query[T].
func QueryFrom[T any](r *http.Request) (T, bool) {
	params, ok := r.Context().Value(queryKey[T]{}).(T)
	return params, ok
}

// ListConfigFrom returns the list configuration stored by Query.
func ListConfigFrom(r *http.Request) (*ListConfig, bool) {
	lc, ok := r.Context().Value(listConfigKey{}).(*ListConfig)
	return lc, ok
}

// WithListConfig stores lc in ctx. Used by callers that build a ListConfig
// outside of Query.
func WithListConfig(ctx context.Context, lc *ListConfig) context.Context {
	return context.WithValue(ctx, listConfigKey{}, lc)
}

func parseQuery[T any](v *Validator, cfg QueryConfig, values url.Values) (T, *ListConfig, error) {
	var params T

	input := make(map[string]any)
	for key, vals := range values {
		key = strings.TrimSuffix(key, "[]")
		switch key {
		case ParamFields, ParamOffset, ParamLimit, ParamOrder:
			continue
		}
		if len(vals) == 1 {
			input[key] = vals[0]
		} else {
			input[key] = vals
		}
	}

	md := &mapstructure.Metadata{}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "query",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Metadata:         md,
		Result:           &params,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return params, nil, fmt.Errorf("build query decoder: %w", err)
	}

	if err := dec.Decode(input); err != nil {
		return params, nil, invalid("invalid query parameters: %v", err)
	}

	if reflect.ValueOf(params).Kind() == reflect.Struct {
		if err := v.Struct(params); err != nil {
			return params, nil, err
		}
	}

	filters, err := collectFilters(params, input)
	if err != nil {
		return params, nil, err
	}

	lc := &ListConfig{
		IsList:  cfg.IsList,
		Filters: filters,
	}

	fields, err := selectFields(cfg, values.Get(ParamFields))
	if err != nil {
		return params, nil, err
	}
	lc.Fields = fields

	if cfg.IsList {
		w, err := pagination.WindowFromQuery(values, cfg.Pagination)
		if err != nil {
			return params, nil, invalid("%v", err)
		}
		lc.Offset, lc.Limit = w.Offset, w.Limit

		order, err := parseOrder(cfg, values.Get(ParamOrder))
		if err != nil {
			return params, nil, err
		}
		lc.Order = order
	}

	return params, lc, nil
}

// collectFilters re-encodes the decoded parameters and keeps the non-empty
// values of keys present in the request.
func collectFilters(params any, input map[string]any) (map[string]any, error) {
	filters := make(map[string]any)
	if len(input) == 0 {
		return filters, nil
	}

	decoded := make(map[string]any)
	if reflect.ValueOf(params).Kind() == reflect.Struct {
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "query",
			Result:  &decoded,
		})
		if err != nil {
			return nil, fmt.Errorf("build filter decoder: %w", err)
		}
		if err := dec.Decode(params); err != nil {
			return nil, fmt.Errorf("collect filters: %w", err)
		}
	}

	for key := range input {
		val, ok := decoded[key]
		if !ok || isEmpty(val) {
			continue
		}
		filters[key] = val
	}
	return filters, nil
}

func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil() || isEmpty(rv.Elem().Interface())
	}
	return false
}

// selectFields applies the fields parameter to the defaults. Entries prefixed
// with "+" add to the defaults, "-" remove from them; a plain entry replaces
// the defaults entirely.
func selectFields(cfg QueryConfig, raw string) ([]string, error) {
	fields := slices.Clone(cfg.Defaults)
	if strings.TrimSpace(raw) == "" {
		return fields, nil
	}

	var replaced []string
	replacing := false

	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}

		switch {
		case strings.HasPrefix(f, "+"):
			f = f[1:]
			if err := checkAllowed(cfg, f); err != nil {
				return nil, err
			}
			if !slices.Contains(fields, f) {
				fields = append(fields, f)
			}
		case strings.HasPrefix(f, "-"):
			f = f[1:]
			fields = slices.DeleteFunc(fields, func(s string) bool {
				return s == f || strings.HasPrefix(s, f+".")
			})
		default:
			if err := checkAllowed(cfg, f); err != nil {
				return nil, err
			}
			replacing = true
			if !slices.Contains(replaced, f) {
				replaced = append(replaced, f)
			}
		}
	}

	if replacing {
		return replaced, nil
	}
	return fields, nil
}

func checkAllowed(cfg QueryConfig, field string) error {
	if len(cfg.Allowed) == 0 {
		return nil
	}
	root, _, _ := strings.Cut(field, ".")
	if slices.Contains(cfg.Allowed, field) || slices.Contains(cfg.Allowed, root) {
		return nil
	}
	return &Error{
		Message: "invalid query parameters",
		Fields: []handlers.FieldError{{
			Field:   ParamFields,
			Code:    "not_allowed",
			Message: fmt.Sprintf("requested field %q is not allowed", field),
		}},
	}
}

func parseOrder(cfg QueryConfig, raw string) ([]query.SortField, error) {
	if raw == "" {
		raw = cfg.DefaultOrder
	}

	order := query.ParseSortFields(raw)
	if len(cfg.Sortable) == 0 {
		return order, nil
	}

	for _, f := range order {
		if !slices.Contains(cfg.Sortable, f.Field) {
			return nil, &Error{
				Message: "invalid query parameters",
				Fields: []handlers.FieldError{{
					Field:   ParamOrder,
					Code:    "not_allowed",
					Message: fmt.Sprintf("order field %q is not sortable", f.Field),
				}},
			}
		}
	}
	return order, nil
}
