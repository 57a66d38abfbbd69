package services

import (
	"blackpiston/internal/table"
)

// Paging selects a page. A zero Size means the whole result.
type Paging struct {
	Page int
	Size int
}

// Enabled reports whether the caller asked for a page.
func (p Paging) Enabled() bool { return p.Size > 0 }

// Result is the list envelope: data plus total matches. Paging fields are
// only set for paged queries.
type Result[T any] struct {
	Data       []T  `json:"data"`
	Total      int  `json:"total"`
	Page       *int `json:"page,omitempty"`
	PageSize   int  `json:"pageSize,omitempty"`
	TotalPages int  `json:"totalPages,omitempty"`
}

// run filters, sorts and optionally paginates rows.
func run[T table.Record](rows []T, criteria []table.Criterion, sort table.SortSpec, paging Paging) Result[T] {
	matched := table.Sort(table.Filter(rows, criteria...), sort)
	if !paging.Enabled() {
		return Result[T]{Data: matched, Total: len(matched)}
	}
	p := table.Paginate(matched, paging.Page, paging.Size)
	page := p.Page
	return Result[T]{
		Data:       p.Items,
		Total:      p.Total,
		Page:       &page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}

// ListingFilter holds the admin listings query. Blank values do not
// constrain.
type ListingFilter struct {
	Status string
	Type   string
	Search string
}

func (f ListingFilter) Criteria() []table.Criterion {
	return []table.Criterion{
		table.Eq("status", f.Status),
		table.Eq("type", f.Type),
		table.Search(f.Search, "title", "make", "model"),
	}
}

// UserFilter holds the admin users query.
type UserFilter struct {
	Search string
	Role   string
	Status string
}

func (f UserFilter) Criteria() []table.Criterion {
	return []table.Criterion{
		table.Search(f.Search, "name", "email"),
		table.Eq("role", f.Role),
		table.Eq("status", f.Status),
	}
}
