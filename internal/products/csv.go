package products

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ImportColumns is the required header of an import file.
var ImportColumns = []string{"title", "handle", "description", "status", "sku"}

// ExportColumns is the header of an export file.
var ExportColumns = []string{"id", "title", "handle", "description", "status", "brand_name", "variant_title", "sku"}

// ImportRow is one product assembled from consecutive rows sharing a handle.
type ImportRow struct {
	// Line is the 1-based line of the product's first row.
	Line    int
	Product CreateProduct
}

// ImportError reports a rejected import line.
type ImportError struct {
	Line    int    `json:"line"`
	Handle  string `json:"handle,omitempty"`
	Message string `json:"message"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	Created []string      `json:"created"`
	Errors  []ImportError `json:"errors"`
}

// ParseImport reads an import CSV. Rows are grouped by handle, first
// occurrence order preserved; the first row of a group supplies the product
// fields and every non-empty sku adds a variant. Malformed rows are reported
// and skipped.
func ParseImport(r io.Reader) ([]ImportRow, []ImportError, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: file is empty", ErrInvalidImport)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, c := range ImportColumns {
		if _, ok := cols[c]; !ok {
			return nil, nil, fmt.Errorf("%w: missing column %q", ErrInvalidImport, c)
		}
	}

	var rows []ImportRow
	var rowErrs []ImportError
	byHandle := make(map[string]int)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				rowErrs = append(rowErrs, ImportError{Line: line, Message: perr.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("%w: %v", ErrInvalidImport, err)
		}

		get := func(name string) string {
			i := cols[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		title, handle := get("title"), get("handle")
		if handle == "" {
			handle = Slugify(title)
		}
		if handle == "" {
			rowErrs = append(rowErrs, ImportError{Line: line, Message: "title or handle is required"})
			continue
		}

		i, seen := byHandle[handle]
		if !seen {
			p := CreateProduct{
				Title:  title,
				Handle: handle,
				Status: Status(get("status")),
			}
			if d := get("description"); d != "" {
				p.Description = &d
			}
			rows = append(rows, ImportRow{Line: line, Product: p})
			i = len(rows) - 1
			byHandle[handle] = i
		}

		if sku := get("sku"); sku != "" {
			rows[i].Product.Variants = append(rows[i].Product.Variants, CreateVariant{Title: sku, SKU: &sku})
		}
	}

	return rows, rowErrs, nil
}

// WriteExport renders products as CSV, one row per variant and a single row
// for products without variants.
func WriteExport(items []Product) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ExportColumns); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, p := range items {
		base := []string{
			p.ID.String(), p.Title, p.Handle, deref(p.Description), string(p.Status), deref(p.BrandName),
		}
		if len(p.Variants) == 0 {
			if err := w.Write(append(slices.Clone(base), "", "")); err != nil {
				return nil, fmt.Errorf("write product %s: %w", p.ID, err)
			}
			continue
		}
		for _, v := range p.Variants {
			if err := w.Write(append(slices.Clone(base), v.Title, deref(v.SKU))); err != nil {
				return nil, fmt.Errorf("write variant %s: %w", v.ID, err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush export: %w", err)
	}
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
