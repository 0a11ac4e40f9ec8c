package validate_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/vendor-products/pkg/handlers"
	"github.com/JaimeStill/vendor-products/pkg/logging"
	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/query"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

type listParams struct {
	ID     []string `query:"id"`
	Q      string   `query:"q"`
	Status []string `query:"status" validate:"dive,oneof=draft proposed published rejected"`
	Handle *string  `query:"handle"`
}

var listConfig = validate.QueryConfig{
	Defaults:     []string{"id", "title", "status"},
	Allowed:      []string{"id", "title", "status", "handle", "variants"},
	IsList:       true,
	DefaultOrder: "-created_at",
	Sortable:     []string{"created_at", "title"},
	Pagination:   pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
}

func serveQuery(t *testing.T, cfg validate.QueryConfig, target string) (*httptest.ResponseRecorder, listParams, *validate.ListConfig) {
	t.Helper()

	var params listParams
	var lc *validate.ListConfig

	v := validate.New(logging.Discard())
	h := validate.Query[listParams](v, cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		params, _ = validate.QueryFrom[listParams](r)
		lc, _ = validate.ListConfigFrom(r)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w, params, lc
}

func TestQuery_Defaults(t *testing.T) {
	w, _, lc := serveQuery(t, listConfig, "/vendor/products")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, lc)
	assert.True(t, lc.IsList)
	assert.Equal(t, []string{"id", "title", "status"}, lc.Fields)
	assert.Equal(t, 0, lc.Offset)
	assert.Equal(t, 20, lc.Limit)
	assert.Equal(t, []query.SortField{{Field: "created_at", Descending: true}}, lc.Order)
	assert.Empty(t, lc.Filters)
}

func TestQuery_FiltersAndWindow(t *testing.T) {
	w, params, lc := serveQuery(t, listConfig,
		"/vendor/products?id=a,b&status[]=draft&status[]=proposed&q=lamp&handle=&offset=40&limit=10&order=title")

	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, []string{"a", "b"}, params.ID)
	assert.Equal(t, []string{"draft", "proposed"}, params.Status)
	assert.Equal(t, "lamp", params.Q)

	assert.Equal(t, 40, lc.Offset)
	assert.Equal(t, 10, lc.Limit)
	assert.Equal(t, []query.SortField{{Field: "title"}}, lc.Order)

	ids, ok := lc.Strings("id")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, "lamp", lc.String("q"))
	assert.NotContains(t, lc.Filters, "handle")
	assert.NotContains(t, lc.Filters, "offset")
}

func TestQuery_Fields(t *testing.T) {
	tests := []struct {
		name   string
		fields string
		want   []string
	}{
		{"add", "%2Bvariants", []string{"id", "title", "status", "variants"}},
		{"remove", "-status", []string{"id", "title"}},
		{"replace", "id,handle", []string{"id", "handle"}},
		{"nested allowed by root", "%2Bvariants.sku", []string{"id", "title", "status", "variants.sku"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, lc := serveQuery(t, listConfig, "/vendor/products?fields="+tt.fields)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, lc.Fields)
		})
	}
}

func TestQuery_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"unknown param", "/vendor/products?colour=red"},
		{"invalid status", "/vendor/products?status=live"},
		{"limit above max", "/vendor/products?limit=500"},
		{"negative offset", "/vendor/products?offset=-1"},
		{"unsortable order", "/vendor/products?order=-price"},
		{"disallowed field", "/vendor/products?fields=secret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, lc := serveQuery(t, listConfig, tt.target)

			assert.Nil(t, lc)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, handlers.TypeInvalidData, decodeError(t, w).Type)
		})
	}
}

func TestQuery_RetrieveIgnoresWindow(t *testing.T) {
	cfg := validate.QueryConfig{Defaults: []string{"id", "title"}}

	w, _, lc := serveQuery(t, cfg, "/vendor/products/1?offset=5&limit=1000&order=-x")

	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, lc.IsList)
	assert.Zero(t, lc.Limit)
	assert.Nil(t, lc.Order)
}

func TestListConfig_Selects(t *testing.T) {
	lc := &validate.ListConfig{Fields: []string{"id", "variants.sku"}}

	assert.True(t, lc.Selects("id"))
	assert.True(t, lc.Selects("variants"))
	assert.False(t, lc.Selects("options"))
	assert.True(t, (&validate.ListConfig{Fields: []string{"*"}}).Selects("options"))
}
