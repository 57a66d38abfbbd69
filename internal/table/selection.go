package table

import "slices"

// Selection is a set of record ids kept across filter, sort and page
// changes. IDs are reported in the order they were first selected.
type Selection struct {
	order []string
	set   map[string]struct{}
}

func NewSelection(ids ...string) *Selection {
	s := &Selection{set: map[string]struct{}{}}
	for _, id := range ids {
		s.add(id)
	}
	return s
}

func (s *Selection) init() {
	if s.set == nil {
		s.set = map[string]struct{}{}
	}
}

func (s *Selection) add(id string) {
	s.init()
	if _, ok := s.set[id]; ok {
		return
	}
	s.set[id] = struct{}{}
	s.order = append(s.order, id)
}

func (s *Selection) remove(id string) {
	if _, ok := s.set[id]; !ok {
		return
	}
	delete(s.set, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
}

// Has reports membership.
func (s *Selection) Has(id string) bool {
	_, ok := s.set[id]
	return ok
}

// Len is the number of selected ids.
func (s *Selection) Len() int { return len(s.order) }

// IDs returns a copy of the selected ids.
func (s *Selection) IDs() []string { return slices.Clone(s.order) }

// Toggle flips membership of id.
func (s *Selection) Toggle(id string) {
	if s.Has(id) {
		s.remove(id)
		return
	}
	s.add(id)
}

// AllSelected reports whether pageIDs is non-empty and fully selected.
func (s *Selection) AllSelected(pageIDs []string) bool {
	if len(pageIDs) == 0 {
		return false
	}
	for _, id := range pageIDs {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// ToggleAllOnPage removes every page id when all are already selected and
// otherwise adds them all. Ids on other pages are left alone.
func (s *Selection) ToggleAllOnPage(pageIDs []string) {
	if s.AllSelected(pageIDs) {
		for _, id := range pageIDs {
			s.remove(id)
		}
		return
	}
	for _, id := range pageIDs {
		s.add(id)
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.order = nil
	s.set = map[string]struct{}{}
}

// Prune drops ids for which exists returns false and reports how many went.
func (s *Selection) Prune(exists func(id string) bool) int {
	dropped := 0
	for _, id := range s.IDs() {
		if !exists(id) {
			s.remove(id)
			dropped++
		}
	}
	return dropped
}

// Clone returns an independent copy.
func (s *Selection) Clone() *Selection {
	if s == nil {
		return NewSelection()
	}
	return NewSelection(s.order...)
}
