// Package pagination holds the pure table-state helpers used by every
// paginated screen: the visible item range, the numbered page window and
// the query-string round trip that keeps filters across page changes.
package pagination

// Range describes which slice of a collection the current page shows.
type Range struct {
	CurrentPage int
	PageSize    int
	TotalItems  int
	TotalPages  int
	// StartItem and EndItem are 1-based and inclusive. Both are zero when
	// the collection is empty.
	StartItem   int
	EndItem     int
	Empty       bool
	HasPrevious bool
	HasNext     bool
}

// Compute derives the page range for a 1-based currentPage. A non-positive
// pageSize is treated as 1 and currentPage is clamped into the valid pages.
func Compute(currentPage, totalItems, pageSize int) Range {
	if pageSize <= 0 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}
	totalPages := (totalItems + pageSize - 1) / pageSize

	r := Range{
		CurrentPage: clamp(currentPage, 1, max(totalPages, 1)),
		PageSize:    pageSize,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		Empty:       totalItems == 0,
	}
	if r.Empty {
		return r
	}
	r.StartItem = (r.CurrentPage-1)*pageSize + 1
	r.EndItem = min(r.CurrentPage*pageSize, totalItems)
	r.HasPrevious = r.CurrentPage > 1
	r.HasNext = r.CurrentPage < totalPages
	return r
}

// Item is one entry of the rendered page list: a page number or an
// ellipsis standing for a collapsed run of pages.
type Item struct {
	Number   int
	Current  bool
	Ellipsis bool
}

// Window returns the numbered links for the pager. The first and last pages
// and the pages adjacent to current are always present; every other run of
// pages is replaced by a single ellipsis.
func Window(current, totalPages int) []Item {
	if totalPages <= 0 {
		return nil
	}
	current = clamp(current, 1, totalPages)

	candidates := [...]int{1, current - 1, current, current + 1, totalPages}
	items := make([]Item, 0, len(candidates)+2)
	last := 0
	for _, p := range candidates {
		if p < 1 || p > totalPages || p <= last {
			continue
		}
		if last != 0 && p-last > 1 {
			items = append(items, Item{Ellipsis: true})
		}
		items = append(items, Item{Number: p, Current: p == current})
		last = p
	}
	return items
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
