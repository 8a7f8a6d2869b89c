package model1

import (
	"fmt"
	"sort"
	"strings"
)

// ViewRow is a row as it is displayed, with cells for the visible columns only.
type ViewRow struct {
	Row
	Cells    []string
	Selected bool
}

// View is a render-ready projection of rows through a TableState.
type View struct {
	Columns  Columns
	Rows     []ViewRow
	SortCol  string
	SortDir  SortDir
	Total    int // loaded rows
	Filtered int // rows matching the column filters
	Selected int // selected rows among Filtered
}

// Empty returns true if no row survived filtering.
func (v View) Empty() bool {
	return len(v.Rows) == 0
}

// Footer returns the selected-row counter.
func (v View) Footer() string {
	return fmt.Sprintf("%d of %d row(s) selected", v.Selected, v.Filtered)
}

// Indices returns the positional indices of the displayed rows.
func (v View) Indices() []int {
	out := make([]int, len(v.Rows))
	for i, r := range v.Rows {
		out[i] = r.Index
	}
	return out
}

// Project filters, sorts and trims rows according to state.
func Project(cols Columns, rows Rows, st *TableState) View {
	if st == nil {
		st = NewTableState(cols)
	}

	v := View{Total: len(rows)}
	v.SortCol, v.SortDir = st.Sorting()

	visible := make([]int, 0, len(cols))
	for i, c := range cols {
		if st.IsVisible(c.ID) {
			visible = append(visible, i)
			v.Columns = append(v.Columns, c)
		}
	}

	filters := activeFilters(cols, st)
	kept := make(Rows, 0, len(rows))
	for _, r := range rows {
		if matches(r, filters) {
			kept = append(kept, r)
		}
	}

	if idx, ok := cols.IndexOf(v.SortCol); ok && v.SortDir != SortNone {
		sortRows(kept, idx, cols[idx].Kind, v.SortDir == SortDesc)
	}

	v.Filtered = len(kept)
	v.Rows = make([]ViewRow, 0, len(kept))
	for _, r := range kept {
		cells := make([]string, len(visible))
		for j, ci := range visible {
			if ci < len(r.Fields) {
				cells[j] = r.Fields[ci]
			}
		}
		sel := st.IsSelected(r.Index)
		if sel {
			v.Selected++
		}
		v.Rows = append(v.Rows, ViewRow{Row: r, Cells: cells, Selected: sel})
	}

	return v
}

type columnFilter struct {
	col    int
	needle string
}

func activeFilters(cols Columns, st *TableState) []columnFilter {
	var out []columnFilter
	for i, c := range cols {
		if !c.Filterable {
			continue
		}
		if f := st.Filter(c.ID); f != "" {
			out = append(out, columnFilter{col: i, needle: strings.ToLower(f)})
		}
	}
	return out
}

func matches(r Row, filters []columnFilter) bool {
	for _, f := range filters {
		if f.col >= len(r.Fields) {
			return false
		}
		if !strings.Contains(strings.ToLower(r.Fields[f.col]), f.needle) {
			return false
		}
	}
	return true
}

func sortRows(rows Rows, col int, kind Kind, desc bool) {
	field := func(r Row) string {
		if col < len(r.Fields) {
			return r.Fields[col]
		}
		return ""
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if desc {
			if field(a) == field(b) {
				return a.Index < b.Index
			}
			return Less(kind, b.Index, a.Index, field(b), field(a))
		}
		return Less(kind, a.Index, b.Index, field(a), field(b))
	})
}
