package pagination

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100

	// MaxPage keeps (page-1)*MaxLimit within int64.
	MaxPage = math.MaxInt64 / MaxLimit
)

// Params is a 1-based page request.
type Params struct {
	Page  int
	Limit int
}

// Meta is the pagination block returned alongside list results.
type Meta struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Parse reads raw page/limit query values, falling back to defaults on junk input.
func Parse(page, limit string) Params {
	p := Params{Page: 1, Limit: DefaultLimit}
	if n, err := strconv.ParseInt(strings.TrimSpace(page), 10, 64); err == nil && n > 0 {
		p.Page = int(min(n, MaxPage, math.MaxInt))
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limit)); err == nil && n > 0 {
		p.Limit = min(n, MaxLimit)
	}
	return p
}

// Skip saturates at math.MaxInt64 instead of overflowing.
func (p Params) Skip() int64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	pages, limit := int64(p.Page-1), int64(p.Limit)
	if pages > math.MaxInt64/limit {
		return math.MaxInt64
	}
	return pages * limit
}

// Window returns the [start, end) bounds of the page within total items.
func (p Params) Window(total int) (int, int) {
	start := total
	if skip := p.Skip(); skip < int64(total) {
		start = int(skip)
	}
	end := total
	if p.Limit > 0 && p.Limit < total-start {
		end = start + p.Limit
	}
	return start, end
}

func (p Params) Meta(total int64) Meta {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Meta{
		CurrentPage:  p.Page,
		TotalPages:   pages,
		TotalItems:   total,
		ItemsPerPage: p.Limit,
	}
}
