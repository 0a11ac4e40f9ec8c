package products_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/vendor-products/internal/attributes"
	"github.com/JaimeStill/vendor-products/internal/auth"
	"github.com/JaimeStill/vendor-products/internal/links"
	"github.com/JaimeStill/vendor-products/internal/products"
	"github.com/JaimeStill/vendor-products/internal/rules"
	"github.com/JaimeStill/vendor-products/pkg/handlers"
	"github.com/JaimeStill/vendor-products/pkg/logging"
	"github.com/JaimeStill/vendor-products/pkg/pagination"
	"github.com/JaimeStill/vendor-products/pkg/upload"
	"github.com/JaimeStill/vendor-products/pkg/validate"
)

type fakeResolver struct {
	owners     map[string]string
	channels   map[string][]string
	priceLists map[string][]string
	calls      int
}

func (f *fakeResolver) Resolve(_ context.Context, link links.Link, selectField, filterField string, values []string) ([]string, error) {
	f.calls++
	out := []string{}
	switch {
	case link == links.LinkSellerProduct && selectField == "seller_id":
		for _, v := range values {
			if owner, ok := f.owners[v]; ok {
				out = append(out, owner)
			}
		}
	case link == links.LinkSellerProduct:
		for product, owner := range f.owners {
			if slices.Contains(values, owner) {
				out = append(out, product)
			}
		}
	case link == links.LinkProductSalesChannel:
		for _, v := range values {
			out = append(out, f.channels[v]...)
		}
	}
	slices.Sort(out)
	return out, nil
}

func (f *fakeResolver) PriceListProducts(_ context.Context, ids []string) ([]string, error) {
	out := []string{}
	for _, id := range ids {
		out = append(out, f.priceLists[id]...)
	}
	return out, nil
}

func newResolver() *fakeResolver {
	return &fakeResolver{
		owners:     map[string]string{"prod_1": "sel_1", "prod_2": "sel_1", "prod_3": "sel_2"},
		channels:   map[string][]string{"sc_1": {"prod_2", "prod_3"}},
		priceLists: map[string][]string{"pl_1": {"prod_1"}},
	}
}

type fixture struct {
	resolver *fakeResolver
	handler  http.Handler
	reached  *http.Request
}

func newFixture(t *testing.T, snap rules.Static) *fixture {
	t.Helper()

	f := &fixture{resolver: newResolver()}
	v := validate.New(logging.Discard(), validate.WithPattern("handle", products.HandlePattern, "must be lowercase words separated by hyphens"))

	page := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	attrs := attributes.QueryConfig()
	attrs.Pagination = page

	reg := products.Middlewares("/vendor", products.MiddlewareDeps{
		Validator:      v,
		Rules:          snap,
		Links:          f.resolver,
		Queries:        products.NewQueryConfigs(page),
		Attributes:     attrs,
		UploadMaxBytes: 1024,
		Logger:         logging.Discard(),
	})

	f.handler = reg.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.reached = r
		w.WriteHeader(http.StatusOK)
	}))
	return f
}

func (f *fixture) serve(method, target, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req = req.WithContext(auth.WithActor(req.Context(), auth.Actor{ID: "mem_1", Type: auth.ActorTypeSeller, SellerID: "sel_1"}))

	f.reached = nil
	w := httptest.NewRecorder()
	f.handler.ServeHTTP(w, req)
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) handlers.ErrorResponse {
	t.Helper()
	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func multipartFile(t *testing.T, field, name, content string) (string, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return mw.FormDataContentType(), buf.Bytes()
}

func TestMiddlewares_TableShape(t *testing.T) {
	reg := products.Middlewares("/vendor", products.MiddlewareDeps{
		Validator: validate.New(logging.Discard()),
		Rules:     rules.Static{},
		Links:     newResolver(),
		Logger:    logging.Discard(),
	})

	descs := reg.Descriptors()
	require.Len(t, descs, 16)
	assert.Equal(t, "/vendor/products", descs[0].Matcher)
	assert.Equal(t, []string{http.MethodGet}, descs[0].Methods)
	assert.Equal(t, "/vendor/products/export", descs[2].Matcher)
	assert.Empty(t, descs[2].Middlewares)
	assert.Equal(t, "/vendor/products/{id}/applicable-attributes", descs[15].Matcher)
}

func TestMiddlewares_ExportSkipsIDSteps(t *testing.T) {
	f := newFixture(t, rules.Static{})

	w := f.serve(http.MethodPost, "/vendor/products/export", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.reached)
	assert.Zero(t, f.resolver.calls, "ownership must not run for export")
	_, hasBody := validate.BodyFrom[products.UpdateProduct](f.reached)
	assert.False(t, hasBody)
}

func TestMiddlewares_Import(t *testing.T) {
	t.Run("accepts file", func(t *testing.T) {
		f := newFixture(t, rules.Static{})
		ct, body := multipartFile(t, products.UploadField, "products.csv", "title,handle\n")

		w := f.serve(http.MethodPost, "/vendor/products/import", ct, body)

		require.Equal(t, http.StatusOK, w.Code)
		file, ok := upload.FileFrom(f.reached)
		require.True(t, ok)
		assert.Equal(t, "products.csv", file.Name)
		assert.Zero(t, f.resolver.calls)
	})

	t.Run("disabled", func(t *testing.T) {
		f := newFixture(t, rules.Static{rules.ProductImportEnabled: false})
		ct, body := multipartFile(t, products.UploadField, "products.csv", "title,handle\n")

		w := f.serve(http.MethodPost, "/vendor/products/import", ct, body)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, handlers.TypeNotAllowed, errorBody(t, w).Type)
	})

	t.Run("missing file", func(t *testing.T) {
		f := newFixture(t, rules.Static{})

		w := f.serve(http.MethodPost, "/vendor/products/import", "application/json", []byte(`{}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Nil(t, f.reached)
	})

	t.Run("too large", func(t *testing.T) {
		f := newFixture(t, rules.Static{})
		ct, body := multipartFile(t, products.UploadField, "products.csv", strings.Repeat("x", 4096))

		w := f.serve(http.MethodPost, "/vendor/products/import", ct, body)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}

func TestMiddlewares_CreateGates(t *testing.T) {
	tests := []struct {
		name   string
		snap   rules.Static
		body   string
		status int
	}{
		{"allowed", rules.Static{}, `{"title":"Linen Shirt"}`, http.StatusOK},
		{"global catalog before body", rules.Static{rules.GlobalProductCatalog: true}, `{"bogus":1}`, http.StatusForbidden},
		{"requests disabled", rules.Static{rules.ProductRequestEnabled: false}, `{"title":"Linen Shirt"}`, http.StatusForbidden},
		{"invalid body", rules.Static{}, `{"title":""}`, http.StatusBadRequest},
		{"invalid handle", rules.Static{}, `{"title":"Shirt","handle":"Not A Handle"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.snap)

			w := f.serve(http.MethodPost, "/vendor/products", "application/json", []byte(tt.body))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestMiddlewares_CreateNormalizesBody(t *testing.T) {
	f := newFixture(t, rules.Static{})

	w := f.serve(http.MethodPost, "/vendor/products?fields=id,title", "application/json", []byte(`{"title":"Linen Shirt"}`))

	require.Equal(t, http.StatusOK, w.Code)
	body, ok := validate.BodyFrom[products.CreateProduct](f.reached)
	require.True(t, ok)
	assert.Equal(t, "linen-shirt", body.Handle)
	assert.Equal(t, products.StatusDraft, body.Status)

	lc, ok := validate.ListConfigFrom(f.reached)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "title"}, lc.Fields)
}

func TestMiddlewares_UpdateOrder(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"owner valid", "/vendor/products/prod_1", `{"title":"New"}`, http.StatusOK},
		{"owner invalid body", "/vendor/products/prod_1", `{"title":""}`, http.StatusBadRequest},
		{"foreign before body", "/vendor/products/prod_3", `{"title":""}`, http.StatusForbidden},
		{"unknown before body", "/vendor/products/prod_9", `{"bogus":true}`, http.StatusNotFound},
		{"owner invalid query", "/vendor/products/prod_1?fields=secret", `{"title":"New"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rules.Static{})

			w := f.serve(http.MethodPost, tt.target, "application/json", []byte(tt.body))

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "prod_1", f.reached.PathValue("id"))
			}
		})
	}
}

func TestMiddlewares_NestedRoutesCheckOwnership(t *testing.T) {
	tests := []struct {
		method string
		target string
		body   string
	}{
		{http.MethodPost, "/vendor/products/prod_3/variants", `{"title":"S"}`},
		{http.MethodPost, "/vendor/products/prod_3/variants/var_1", `{"title":"S"}`},
		{http.MethodDelete, "/vendor/products/prod_3/variants/var_1", ""},
		{http.MethodPost, "/vendor/products/prod_3/options", `{"title":"Size","values":["S"]}`},
		{http.MethodPost, "/vendor/products/prod_3/options/opt_1", `{"title":"Size"}`},
		{http.MethodDelete, "/vendor/products/prod_3/options/opt_1", ""},
		{http.MethodPost, "/vendor/products/prod_3/brand", `{"brand_name":"Acme"}`},
		{http.MethodPost, "/vendor/products/prod_3/status", `{"status":"published"}`},
		{http.MethodDelete, "/vendor/products/prod_3", ""},
		{http.MethodGet, "/vendor/products/prod_3", ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			f := newFixture(t, rules.Static{})

			w := f.serve(tt.method, tt.target, "application/json", []byte(tt.body))

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Nil(t, f.reached)
		})
	}
}

func TestMiddlewares_ListFilters(t *testing.T) {
	tests := []struct {
		name   string
		target string
		ids    []string
	}{
		{"seller only", "/vendor/products", []string{"prod_1", "prod_2"}},
		{"sales channel", "/vendor/products?sales_channel_id=sc_1", []string{"prod_2"}},
		{"price list", "/vendor/products?price_list_id=pl_1", []string{"prod_1"}},
		{"explicit ids", "/vendor/products?id=prod_2,prod_3", []string{"prod_2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, rules.Static{})

			w := f.serve(http.MethodGet, tt.target, "", nil)

			require.Equal(t, http.StatusOK, w.Code)
			lc, ok := validate.ListConfigFrom(f.reached)
			require.True(t, ok)

			ids, ok := lc.Strings(links.FilterID)
			require.True(t, ok)
			assert.ElementsMatch(t, tt.ids, ids)
			assert.NotContains(t, lc.Filters, links.FilterSellerID)
			assert.NotContains(t, lc.Filters, "sales_channel_id")
			assert.NotContains(t, lc.Filters, links.FilterPriceListID)
			assert.Equal(t, 20, lc.Limit)
		})
	}
}

func TestMiddlewares_ListRejectsBadQuery(t *testing.T) {
	f := newFixture(t, rules.Static{})

	w := f.serve(http.MethodGet, "/vendor/products?limit=500", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, handlers.TypeInvalidData, errorBody(t, w).Type)
}

func TestMiddlewares_ApplicableAttributesSkipOwnership(t *testing.T) {
	f := newFixture(t, rules.Static{})

	w := f.serve(http.MethodGet, "/vendor/products/prod_3/applicable-attributes?ui_component=select", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, f.resolver.calls)

	lc, ok := validate.ListConfigFrom(f.reached)
	require.True(t, ok)
	assert.Equal(t, []string{"select"}, lc.Filters["ui_component"])
}

func TestMiddlewares_HeadFollowsGet(t *testing.T) {
	f := newFixture(t, rules.Static{})

	w := f.serve(http.MethodHead, "/vendor/products/prod_3", "", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
