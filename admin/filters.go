package admin

import (
	"net/url"
	"strconv"
)

// DefaultPageSize matches the dashboard table page size.
const DefaultPageSize = 10

// Filters captures the list-view filter state. Changing any filter resets
// the page to 1, only an explicit page change keeps the rest intact.
type Filters struct {
	Status   string
	Category string
	Priority string
	Search   string
	Page     int
	Limit    int
}

// NewFilters returns the initial filter state.
func NewFilters() Filters {
	return Filters{Page: 1, Limit: DefaultPageSize}
}

func (f Filters) WithStatus(status string) Filters {
	f.Status = status
	f.Page = 1
	return f
}

func (f Filters) WithCategory(category string) Filters {
	f.Category = category
	f.Page = 1
	return f
}

func (f Filters) WithPriority(priority string) Filters {
	f.Priority = priority
	f.Page = 1
	return f
}

func (f Filters) WithSearch(search string) Filters {
	f.Search = search
	f.Page = 1
	return f
}

// WithPage is the one mutation that leaves the other filters untouched.
func (f Filters) WithPage(page int) Filters {
	if page < 1 {
		page = 1
	}
	f.Page = page
	return f
}

func (f Filters) WithLimit(limit int) Filters {
	if limit > 0 {
		f.Limit = limit
	}
	return f
}

// Query encodes the filter state for the backend list endpoints. Zero
// values are omitted.
func (f Filters) Query() url.Values {
	q := url.Values{}

	if f.Status != "" && f.Status != "all" {
		q.Set("status", f.Status)
	}
	if f.Category != "" && f.Category != "all" {
		q.Set("category", f.Category)
	}
	if f.Priority != "" && f.Priority != "all" {
		q.Set("priority", f.Priority)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}

	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	return q
}

// Pagination mirrors the backend's list metadata. Member endpoints report
// totalRecords where the others report total.
type Pagination struct {
	Current      int `json:"current"`
	Pages        int `json:"pages"`
	Total        int `json:"total"`
	TotalRecords int `json:"totalRecords"`
}

// TotalCount returns the record count regardless of which field the
// backend populated.
func (p Pagination) TotalCount() int {
	if p.TotalRecords > 0 {
		return p.TotalRecords
	}
	return p.Total
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Current > 1
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return p.Current < p.Pages
}

// normalizePagination fills metadata for backends that omit it.
func normalizePagination(p Pagination, f Filters, count int) Pagination {
	if p.Current == 0 {
		p.Current = f.Page
	}
	if p.Pages == 0 {
		p.Pages = 1
	}
	if p.Total == 0 && p.TotalRecords == 0 {
		p.Total = count
	}
	return p
}
