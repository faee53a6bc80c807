// Package pagination bounds directory queries to a single page of results
// and reports the metadata clients need to walk the full set.
package pagination

// MaxPageSize caps how many records a single page may carry.
const MaxPageSize = 50

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

type PagedResult[T any] struct {
	Items       []T `json:"items"`
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalCount  int `json:"total_count"`
	TotalPages  int `json:"total_pages"`
}

// ClampPage normalizes a requested page number: anything below 1 becomes 1.
func ClampPage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	return page
}

// ClampPageSize normalizes a requested page size into [1, MaxPageSize].
func ClampPageSize(size int) int {
	if size < 1 {
		return DefaultPageSize
	}
	if size > MaxPageSize {
		return MaxPageSize
	}
	return size
}

// Offset returns the number of records to skip for the given page.
// Page and size must already be clamped.
func Offset(page, size int) int {
	return (page - 1) * size
}

// NewPagedResult assembles a page from items already limited by the caller
// and the total count of the filtered set before limiting. TotalPages is
// ceiling division; a page past the end simply carries no items.
func NewPagedResult[T any](items []T, totalCount, page, size int) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := (totalCount + size - 1) / size
	return &PagedResult[T]{
		Items:       items,
		CurrentPage: page,
		PageSize:    size,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
	}
}

// Paginate slices an in-memory, already-ordered set into one page.
func Paginate[T any](source []T, page, size int) *PagedResult[T] {
	page = ClampPage(page)
	size = ClampPageSize(size)

	start := Offset(page, size)
	if start > len(source) {
		start = len(source)
	}
	end := start + size
	if end > len(source) {
		end = len(source)
	}
	return NewPagedResult(source[start:end], len(source), page, size)
}
