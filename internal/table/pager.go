package table

// DefaultPageSize is used when a caller asks for a non-positive page size.
const DefaultPageSize = 10

// Page is one window over a result set. Page is zero-based.
type Page[T any] struct {
	Items      []T `json:"data"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// TotalPages is ceil(total/size) with a floor of one: an empty result is
// still page 1 of 1.
func TotalPages(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 1
	}
	return (total-1)/size + 1
}

// Paginate slices records to [page*size, (page+1)*size), clamped to bounds.
// Out-of-range pages yield an empty window, never an error.
func Paginate[T any](records []T, page, size int) Page[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page[T]{
		Items:      []T{},
		Page:       page,
		PageSize:   size,
		Total:      len(records),
		TotalPages: TotalPages(len(records), size),
	}
	if page < 0 || page >= p.TotalPages {
		return p
	}
	start := page * size
	if start >= len(records) {
		return p
	}
	end := min(start+size, len(records))
	p.Items = append(p.Items, records[start:end]...)
	return p
}
