package catalog

// DefaultPageSize is the number of products shown per page.
const DefaultPageSize = 21

// Page is one slice of a longer sequence.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalPages int
	TotalItems int
}

// Paginate returns the 1-indexed page of seq. A non-positive pageSize selects
// DefaultPageSize. Pages outside 1..TotalPages come back empty.
func Paginate[T any](seq []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(seq)
	result := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   pageSize,
		TotalPages: total / pageSize,
		TotalItems: total,
	}
	if total%pageSize != 0 {
		result.TotalPages++
	}
	if page < 1 || page > result.TotalPages {
		return result
	}

	// page <= TotalPages keeps (page-1)*pageSize below total.
	start := (page - 1) * pageSize
	end := start + min(pageSize, total-start)
	result.Items = seq[start:end:end]
	return result
}
