// Package pagination slices ordered result sets into numbered pages.
package pagination

import (
	"math"
	"net/url"
	"strconv"
)

const (
	// DefaultLimit is the page size used when none is configured or requested.
	DefaultLimit = 10

	// MaxLimit caps the page size a caller may request.
	MaxLimit = 100
)

// Page is one page of an ordered result set.
type Page[T any] struct {
	Items       []T
	TotalCount  int
	CurrentPage int
	TotalPages  int
}

// Params is a normalized page request.
type Params struct {
	Page  int
	Limit int
}

// NewParams clamps page to at least 1 and limit to [1, MaxLimit].
func NewParams(page, limit int) Params {
	return Params{Page: max(page, 1), Limit: min(max(limit, 1), MaxLimit)}
}

// ParseParams reads the page and limit query parameters. Missing or
// non-numeric values fall back to page 1 and defaultLimit; values below 1
// are clamped to 1 and limits above MaxLimit to MaxLimit.
func ParseParams(query url.Values, defaultLimit int) Params {
	if defaultLimit < 1 {
		defaultLimit = DefaultLimit
	}
	return NewParams(intParam(query, "page", 1), intParam(query, "limit", defaultLimit))
}

// Offset is the number of items preceding the requested page. It saturates
// at math.MaxInt instead of overflowing, which still lands past the end of
// any result set.
func (p Params) Offset() int {
	p = NewParams(p.Page, p.Limit)
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Paginate returns the requested page of items. Items must already be in
// their final order. A page beyond the last one yields an empty Items slice.
func Paginate[T any](items []T, page, limit int) Page[T] {
	p := NewParams(page, limit)
	total := len(items)

	start := min(p.Offset(), total)
	end := start + min(p.Limit, total-start)

	window := make([]T, end-start)
	copy(window, items[start:end])

	return FromWindow(window, total, p.Page, p.Limit)
}

// FromWindow builds a Page from a window the store already cut with
// LIMIT/OFFSET, together with the total row count.
func FromWindow[T any](window []T, total, page, limit int) Page[T] {
	p := NewParams(page, limit)
	if window == nil {
		window = []T{}
	}
	if total < 0 {
		total = 0
	}
	return Page[T]{
		Items:       window,
		TotalCount:  total,
		CurrentPage: p.Page,
		TotalPages:  TotalPages(total, p.Limit),
	}
}

// TotalPages is ceil(total/limit).
func TotalPages(total, limit int) int {
	if total <= 0 {
		return 0
	}
	limit = max(limit, 1)
	return (total + limit - 1) / limit
}

// Map converts the items of a page while keeping its counters.
func Map[T, U any](p Page[T], fn func(T) U) Page[U] {
	out := make([]U, len(p.Items))
	for i, item := range p.Items {
		out[i] = fn(item)
	}
	return Page[U]{
		Items:       out,
		TotalCount:  p.TotalCount,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
	}
}

func intParam(query url.Values, key string, fallback int) int {
	raw := query.Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
