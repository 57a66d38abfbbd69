package table

import (
	"slices"
	"sync"
)

// State is the full view state of a data table. Transitions return a new
// State and leave the receiver untouched.
type State struct {
	Criteria []Criterion
	Sort     SortSpec
	Page     int
	PageSize int
	Selected *Selection
}

// NewState starts at the first page with nothing selected.
func NewState(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return State{PageSize: pageSize, Selected: NewSelection()}
}

func (s State) clone() State {
	out := s
	out.Criteria = slices.Clone(s.Criteria)
	out.Selected = s.Selected.Clone()
	return out
}

// ApplyFilter replaces the criteria and goes back to the first page.
// The selection is kept; it is keyed by id, not position.
func (s State) ApplyFilter(criteria ...Criterion) State {
	out := s.clone()
	out.Criteria = slices.Clone(criteria)
	out.Page = 0
	return out
}

// ApplySort toggles direction when field is already the sort key and
// otherwise sorts ascending by field.
func (s State) ApplySort(field string) State {
	out := s.clone()
	if out.Sort.Field == field {
		if out.Sort.Direction == Desc {
			out.Sort.Direction = Asc
		} else {
			out.Sort.Direction = Desc
		}
		return out
	}
	out.Sort = By(field, Asc)
	return out
}

// ApplyPage moves to page p.
func (s State) ApplyPage(p int) State {
	out := s.clone()
	out.Page = max(p, 0)
	return out
}

// Toggle flips one row.
func (s State) Toggle(id string) State {
	out := s.clone()
	out.Selected.Toggle(id)
	return out
}

// ToggleAllOnPage flips the rows of the visible page.
func (s State) ToggleAllOnPage(pageIDs []string) State {
	out := s.clone()
	out.Selected.ToggleAllOnPage(pageIDs)
	return out
}

// ClearSelection empties the selection.
func (s State) ClearSelection() State {
	out := s.clone()
	out.Selected.Clear()
	return out
}

// View runs filter, sort and paginate. It returns the visible page and the
// full filtered, sorted set that exports and select-all operate on.
func View[T Record](s State, records []T) (Page[T], []T) {
	rows := Sort(Filter(records, s.Criteria...), s.Sort)
	return Paginate(rows, s.Page, s.PageSize), rows
}

// Ticket identifies one issued request.
type Ticket uint64

// Sequencer orders overlapping requests so a superseded response can be
// recognised and dropped instead of overwriting fresher state.
type Sequencer struct {
	mu     sync.Mutex
	issued Ticket
}

// Next issues a ticket newer than every ticket issued before it.
func (q *Sequencer) Next() Ticket {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.issued++
	return q.issued
}

// Current reports whether t is still the newest ticket.
func (q *Sequencer) Current(t Ticket) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return t == q.issued
}
