// Package pagination parses list query parameters and wraps result pages.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps Offset within int32 at the largest page size.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Request is a validated list request. Page and PageSize are always within
// bounds once produced by Parse or FromQuery, so Offset cannot overflow.
type Request struct {
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
	SortBy        string    `json:"sortBy,omitempty"`
	SortDirection Direction `json:"sortDirection"`
	Search        string    `json:"search,omitempty"`
}

// Parse builds a Request from raw, possibly empty, string parameters.
// Unparsable numbers fall back to their defaults; out-of-range numbers are
// clamped. Only the exact value "desc" selects descending order.
func Parse(page, pageSize, sortBy, sortDirection, search string) Request {
	req := Request{
		Page:          parseInt(page, DefaultPage),
		PageSize:      parseInt(pageSize, DefaultPageSize),
		SortBy:        strings.TrimSpace(sortBy),
		SortDirection: Asc,
		Search:        strings.TrimSpace(search),
	}
	if sortDirection == string(Desc) {
		req.SortDirection = Desc
	}
	return req.Normalize()
}

// FromQuery reads page, pageSize, sortBy, sortDirection and search from a
// URL query string.
func FromQuery(q url.Values) Request {
	return Parse(q.Get("page"), q.Get("pageSize"), q.Get("sortBy"), q.Get("sortDirection"), q.Get("search"))
}

// Normalize clamps page and page size and defaults the direction.
func (r Request) Normalize() Request {
	switch {
	case r.Page < 1:
		r.Page = 1
	case r.Page > MaxPage:
		r.Page = MaxPage
	}
	switch {
	case r.PageSize < 1:
		r.PageSize = 1
	case r.PageSize > MaxPageSize:
		r.PageSize = MaxPageSize
	}
	if r.SortDirection != Desc {
		r.SortDirection = Asc
	}
	return r
}

// Offset is the number of rows skipped before this page.
func (r Request) Offset() int {
	return (r.Page - 1) * r.PageSize
}

// Limit is the maximum number of rows on this page.
func (r Request) Limit() int {
	return r.PageSize
}

// Descending reports whether the request sorts in descending order.
func (r Request) Descending() bool {
	return r.SortDirection == Desc
}

// Response is one page of results plus paging metadata.
type Response[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewResponse wraps items for req. TotalPages is derived from total.
func NewResponse[T any](items []T, total int64, req Request) Response[T] {
	if items == nil {
		items = []T{}
	}
	req = req.Normalize()
	return Response[T]{
		Data:       items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: TotalPages(total, req.PageSize),
	}
}

// TotalPages returns ceil(total/pageSize), or 0 for a non-positive page size.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

func parseInt(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
