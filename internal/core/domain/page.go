package domain

// Page is one slice of a server-side paginated collection.
type Page[T any] struct {
	Items       []T
	Page        int
	PageSize    int
	Total       int
	TotalPages  int
	HasPrevious bool
	HasNext     bool
}

// EmptyPage returns a page with no items for the requested position. It is
// what list reads degrade to when the upstream call fails.
func EmptyPage[T any](page, pageSize int) Page[T] {
	return Page[T]{Items: []T{}, Page: page, PageSize: pageSize}
}

// ListQuery carries the table state sent to paginated list endpoints.
type ListQuery struct {
	Page     int
	PageSize int
	Search   string
	Status   string
}
