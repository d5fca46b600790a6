package framelai

import "sort"

// SelectionSet tracks which frame IDs are selected. It does not know about the
// collection; membership is validated by the Session that owns both.
// A SelectionSet is not safe for concurrent use.
type SelectionSet struct {
	ids map[string]struct{}
}

// NewSelectionSet creates a selection containing the given IDs.
func NewSelectionSet(ids ...string) *SelectionSet {
	s := &SelectionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds or removes an ID. Adding a present ID or removing an absent one
// is a no-op. It reports whether the set changed.
func (s *SelectionSet) Toggle(id string, selected bool) bool {
	_, present := s.ids[id]
	switch {
	case selected && !present:
		s.ids[id] = struct{}{}
		return true
	case !selected && present:
		delete(s.ids, id)
		return true
	}
	return false
}

// Has reports whether the ID is selected.
func (s *SelectionSet) Has(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected IDs.
func (s *SelectionSet) Len() int {
	return len(s.ids)
}

// IDs returns the selected IDs in lexical order.
func (s *SelectionSet) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
