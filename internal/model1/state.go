package model1

// TableState holds the client-side table state: sorting, column filters,
// column visibility and row selection. It is only changed through its
// action methods and is never reset by a data refetch.
//
// A TableState is owned by the UI loop and is not safe for concurrent use.
type TableState struct {
	sortCol    string
	sortDir    SortDir
	filters    map[string]string
	visibility map[string]bool
	selection  map[int]struct{}
}

// NewTableState returns a state with initial visibility taken from cols.
func NewTableState(cols Columns) *TableState {
	s := &TableState{
		filters:    make(map[string]string),
		visibility: make(map[string]bool, len(cols)),
		selection:  make(map[int]struct{}),
	}
	for _, c := range cols {
		if c.Hidden {
			s.visibility[c.ID] = false
		}
	}
	return s
}

// Sorting returns the sorted column and its direction.
func (s *TableState) Sorting() (string, SortDir) {
	return s.sortCol, s.sortDir
}

// SortFor returns the sort direction of the given column.
func (s *TableState) SortFor(id string) SortDir {
	if s.sortCol != id {
		return SortNone
	}
	return s.sortDir
}

// ToggleSort cycles the column through none, ascending and descending.
// Sorting a different column starts it at ascending.
func (s *TableState) ToggleSort(c Column) bool {
	if !c.Sortable {
		return false
	}

	if s.sortCol != c.ID {
		s.sortCol, s.sortDir = c.ID, SortAsc
		return true
	}

	switch s.sortDir {
	case SortAsc:
		s.sortDir = SortDesc
	default:
		s.sortCol, s.sortDir = "", SortNone
	}
	return true
}

// ClearSort removes any sorting.
func (s *TableState) ClearSort() {
	s.sortCol, s.sortDir = "", SortNone
}

// SetFilter sets a column filter. An empty text removes it.
func (s *TableState) SetFilter(c Column, text string) bool {
	if !c.Filterable {
		return false
	}
	if text == "" {
		delete(s.filters, c.ID)
		return true
	}
	s.filters[c.ID] = text
	return true
}

// Filter returns the active filter of a column.
func (s *TableState) Filter(id string) string {
	return s.filters[id]
}

// Filters returns a copy of the active column filters.
func (s *TableState) Filters() map[string]string {
	out := make(map[string]string, len(s.filters))
	for k, v := range s.filters {
		out[k] = v
	}
	return out
}

// ClearFilters removes every column filter.
func (s *TableState) ClearFilters() {
	s.filters = make(map[string]string)
}

// IsVisible returns true unless the column was hidden.
func (s *TableState) IsVisible(id string) bool {
	v, ok := s.visibility[id]
	return !ok || v
}

// ToggleVisibility shows or hides a hideable column.
func (s *TableState) ToggleVisibility(c Column) bool {
	if !c.Hideable {
		return false
	}
	s.visibility[c.ID] = !s.IsVisible(c.ID)
	return true
}

// IsSelected returns true if the row at index is selected.
func (s *TableState) IsSelected(index int) bool {
	_, ok := s.selection[index]
	return ok
}

// ToggleRow flips the selection of the row at index.
func (s *TableState) ToggleRow(index int) {
	if _, ok := s.selection[index]; ok {
		delete(s.selection, index)
		return
	}
	s.selection[index] = struct{}{}
}

// ToggleAll selects every given row, or deselects them all if they are
// already all selected.
func (s *TableState) ToggleAll(indices []int) {
	all := len(indices) > 0
	for _, i := range indices {
		if !s.IsSelected(i) {
			all = false
			break
		}
	}

	for _, i := range indices {
		if all {
			delete(s.selection, i)
		} else {
			s.selection[i] = struct{}{}
		}
	}
}

// ClearSelection deselects every row.
func (s *TableState) ClearSelection() {
	s.selection = make(map[int]struct{})
}

// Selection returns the selected row indices.
func (s *TableState) Selection() []int {
	out := make([]int, 0, len(s.selection))
	for i := range s.selection {
		out = append(out, i)
	}
	return out
}
