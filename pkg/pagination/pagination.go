package pagination

import (
	"fmt"
	"net/url"
	"strconv"
)

// Window is an offset/limit slice of a result set.
type Window struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// Normalize clamps the window to valid values based on the config.
func (w *Window) Normalize(cfg Config) {
	if w.Offset < 0 {
		w.Offset = 0
	}
	if w.Limit < 1 {
		w.Limit = cfg.DefaultPageSize
	}
	if w.Limit > cfg.MaxPageSize {
		w.Limit = cfg.MaxPageSize
	}
}

// WindowFromQuery parses the offset and limit parameters.
// Non-numeric values and a limit above cfg.MaxPageSize are rejected.
func WindowFromQuery(values url.Values, cfg Config) (Window, error) {
	var w Window

	if v := values.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return w, fmt.Errorf("offset must be a non-negative integer")
		}
		w.Offset = n
	}

	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return w, fmt.Errorf("limit must be a positive integer")
		}
		if n > cfg.MaxPageSize {
			return w, fmt.Errorf("limit cannot exceed %d", cfg.MaxPageSize)
		}
		w.Limit = n
	}

	w.Normalize(cfg)
	return w, nil
}

// PageResult holds a window of data along with the total count.
type PageResult[T any] struct {
	Data   []T `json:"data"`
	Count  int `json:"count"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// NewPageResult creates a PageResult. A nil data slice is replaced with an empty one.
func NewPageResult[T any](data []T, count int, w Window) PageResult[T] {
	if data == nil {
		data = []T{}
	}

	return PageResult[T]{
		Data:   data,
		Count:  count,
		Offset: w.Offset,
		Limit:  w.Limit,
	}
}
