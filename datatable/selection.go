package datatable

import "slices"

// Selection is the set of record ids marked for bulk actions.
// Subscribers receive the sorted ids after each change.
type Selection struct {
	Observable[[]int]
	ids map[int]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int]struct{})}
}

// Toggle adds id if absent and removes it if present. It returns whether id
// is selected afterwards.
func (s *Selection) Toggle(id int) bool {
	_, ok := s.ids[id]
	if ok {
		delete(s.ids, id)
	} else {
		s.ids[id] = struct{}{}
	}
	s.changed()
	return !ok
}

// Add selects id.
func (s *Selection) Add(id int) {
	if _, ok := s.ids[id]; ok {
		return
	}
	s.ids[id] = struct{}{}
	s.changed()
}

// Remove deselects id.
func (s *Selection) Remove(id int) {
	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	s.changed()
}

// SelectAll replaces the selection with exactly ids. An empty list, such as
// the one available before any data has loaded, leaves the selection alone.
func (s *Selection) SelectAll(ids []int) {
	if len(ids) == 0 {
		return
	}
	s.ids = make(map[int]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	s.changed()
}

// Clear empties the selection.
func (s *Selection) Clear() {
	if len(s.ids) == 0 {
		return
	}
	s.ids = make(map[int]struct{})
	s.changed()
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	out := make([]int, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// IsAllSelected reports whether the selection is non-empty and equals the
// distinct set of ids.
func (s *Selection) IsAllSelected(ids []int) bool {
	if len(s.ids) == 0 {
		return false
	}
	distinct := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := s.ids[id]; !ok {
			return false
		}
		distinct[id] = struct{}{}
	}
	return len(distinct) == len(s.ids)
}

// Prune drops every selected id that is not in present and returns how many
// were dropped.
func (s *Selection) Prune(present []int) int {
	keep := make(map[int]struct{}, len(present))
	for _, id := range present {
		keep[id] = struct{}{}
	}
	removed := 0
	for id := range s.ids {
		if _, ok := keep[id]; !ok {
			delete(s.ids, id)
			removed++
		}
	}
	if removed > 0 {
		s.changed()
	}
	return removed
}

// RemoveIDs deselects every id in ids.
func (s *Selection) RemoveIDs(ids []int) {
	removed := false
	for _, id := range ids {
		if _, ok := s.ids[id]; ok {
			delete(s.ids, id)
			removed = true
		}
	}
	if removed {
		s.changed()
	}
}

func (s *Selection) changed() {
	if s.Subscribers() > 0 {
		s.notify(s.IDs())
	}
}
