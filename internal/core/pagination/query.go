package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"mesa-console/internal/core/domain"
)

// Defaults bounds the page size accepted from the query string.
type Defaults struct {
	PageSize    int
	MaxPageSize int
}

// DefaultTable is used by the admin tables.
var DefaultTable = Defaults{PageSize: 10, MaxPageSize: 100}

// ParseQuery reads page, pageSize, search and status from the query string.
// Invalid numbers fall back to the defaults rather than failing the page.
func ParseQuery(q url.Values, d Defaults) domain.ListQuery {
	lq := domain.ListQuery{
		Page:     1,
		PageSize: d.PageSize,
		Search:   strings.TrimSpace(q.Get("search")),
		Status:   strings.TrimSpace(q.Get("status")),
	}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("page"))); err == nil && v > 0 {
		lq.Page = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(q.Get("pageSize"))); err == nil && v > 0 {
		lq.PageSize = v
	}
	if d.MaxPageSize > 0 && lq.PageSize > d.MaxPageSize {
		lq.PageSize = d.MaxPageSize
	}
	if lq.PageSize <= 0 {
		lq.PageSize = 1
	}
	return lq
}

// Encode renders q as a query string pointing at page. Empty filters are
// omitted so links stay short.
func Encode(q domain.ListQuery, page int) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("pageSize", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v.Encode()
}
