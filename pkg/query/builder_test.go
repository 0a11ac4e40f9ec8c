package query_test

import (
	"strings"
	"testing"

	"github.com/JaimeStill/vendor-products/pkg/query"
)

func newTestProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "product", "p").
		Project("id", "id").
		Project("title", "title").
		Project("handle", "handle")
}

var defaultSort = query.SortField{Field: "title"}

func TestBuilder_BuildCount_NoConditions(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection(), defaultSort).BuildCount()

	want := "SELECT COUNT(*) FROM public.product p"
	if sql != want {
		t.Errorf("BuildCount() sql = %q, want %q", sql, want)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilder_BuildPage(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		limit  int
		want   string
	}{
		{"first page", 0, 20, "LIMIT 20 OFFSET 0"},
		{"second page", 20, 20, "LIMIT 20 OFFSET 20"},
		{"arbitrary offset", 7, 5, "LIMIT 5 OFFSET 7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _ := query.NewBuilder(newTestProjection(), defaultSort).BuildPage(tt.offset, tt.limit)

			if !strings.Contains(sql, "SELECT p.id, p.title, p.handle FROM public.product p") {
				t.Errorf("BuildPage() missing select clause, got %q", sql)
			}
			if !strings.Contains(sql, "ORDER BY p.title ASC") {
				t.Errorf("BuildPage() missing default order, got %q", sql)
			}
			if !strings.Contains(sql, tt.want) {
				t.Errorf("BuildPage() missing %q, got %q", tt.want, sql)
			}
		})
	}
}

func TestBuilder_BuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).BuildSingle("id", "prod_1")

	want := "SELECT p.id, p.title, p.handle FROM public.product p WHERE p.id = $1"
	if sql != want {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, want)
	}
	if len(args) != 1 || args[0] != "prod_1" {
		t.Errorf("BuildSingle() args = %v, want [prod_1]", args)
	}
}

func TestBuilder_OrderByFields(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection(), defaultSort).
		OrderByFields([]query.SortField{
			{Field: "handle", Descending: true},
			{Field: "bogus"},
			{Field: "id"},
		}).
		BuildAll()

	if !strings.Contains(sql, "ORDER BY p.handle DESC, p.id ASC") {
		t.Errorf("BuildAll() order = %q", sql)
	}
}

func TestBuilder_NoDefaultSort(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).BuildAll()
	if strings.Contains(sql, "ORDER BY") {
		t.Errorf("BuildAll() unexpected order clause: %q", sql)
	}
}

func TestBuilder_WhereEquals(t *testing.T) {
	status := "draft"
	var missing *string

	sql, args := query.NewBuilder(newTestProjection()).
		WhereEquals("title", nil).
		WhereEquals("handle", missing).
		WhereEquals("id", &status).
		BuildCount()

	if !strings.Contains(sql, "WHERE p.id = $1") {
		t.Errorf("BuildCount() = %q", sql)
	}
	if len(args) != 1 || args[0] != "draft" {
		t.Errorf("args = %v, want [draft]", args)
	}
}

func TestBuilder_WhereContains(t *testing.T) {
	title := "shirt"
	empty := ""

	sql, args := query.NewBuilder(newTestProjection()).
		WhereContains("title", &title).
		WhereContains("handle", &empty).
		WhereContains("handle", nil).
		BuildCount()

	if !strings.Contains(sql, "WHERE p.title ILIKE $1") {
		t.Errorf("BuildCount() = %q", sql)
	}
	if len(args) != 1 || args[0] != "%shirt%" {
		t.Errorf("args = %v, want [%%shirt%%]", args)
	}
}

func TestBuilder_WhereIn(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).
		WhereIn("id", []any{"a", "b", "c"}).
		BuildCount()

	if !strings.Contains(sql, "WHERE p.id IN ($1, $2, $3)") {
		t.Errorf("BuildCount() = %q", sql)
	}
	if len(args) != 3 {
		t.Errorf("len(args) = %d, want 3", len(args))
	}
}

func TestBuilder_WhereIn_NilIgnored(t *testing.T) {
	sql, _ := query.NewBuilder(newTestProjection()).WhereIn("id", nil).BuildCount()
	if strings.Contains(sql, "WHERE") {
		t.Errorf("BuildCount() = %q, want no where clause", sql)
	}
}

func TestBuilder_WhereIn_EmptyMatchesNothing(t *testing.T) {
	sql, args := query.NewBuilder(newTestProjection()).WhereIn("id", []any{}).BuildCount()
	if !strings.Contains(sql, "WHERE FALSE") {
		t.Errorf("BuildCount() = %q, want WHERE FALSE", sql)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilder_WhereSearch(t *testing.T) {
	q := "tee"
	sql, args := query.NewBuilder(newTestProjection()).
		WhereSearch(&q, "title", "handle").
		BuildCount()

	if !strings.Contains(sql, "WHERE (p.title ILIKE $1 OR p.handle ILIKE $2)") {
		t.Errorf("BuildCount() = %q", sql)
	}
	if len(args) != 2 {
		t.Errorf("len(args) = %d, want 2", len(args))
	}
}

func TestBuilder_MultipleConditions(t *testing.T) {
	title := "shirt"
	sql, args := query.NewBuilder(newTestProjection()).
		WhereContains("title", &title).
		WhereIn("id", []any{"a", "b"}).
		WhereRaw("EXISTS (SELECT 1 FROM seller_product sp WHERE sp.product_id = p.id AND sp.seller_id = $%d)", "sel_1").
		BuildCount()

	want := "WHERE p.title ILIKE $1 AND p.id IN ($2, $3) AND EXISTS (SELECT 1 FROM seller_product sp WHERE sp.product_id = p.id AND sp.seller_id = $4)"
	if !strings.Contains(sql, want) {
		t.Errorf("BuildCount() = %q, want to contain %q", sql, want)
	}
	if len(args) != 4 {
		t.Errorf("len(args) = %d, want 4", len(args))
	}
}
