package model1

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func userColumns() Columns {
	return Columns{
		{ID: "id", Kind: KindNumber, Sortable: true},
		{ID: "name", Header: "Name", Sortable: true, Filterable: true, Hideable: true},
		{ID: "email", Hideable: true, Filterable: true},
		{ID: "city", Accessor: "address.city", Hideable: true, Hidden: true},
	}
}

func userRows(t *testing.T, names ...string) Rows {
	t.Helper()
	raws := make([]json.RawMessage, 0, len(names))
	for i, n := range names {
		raw, err := json.Marshal(map[string]any{
			"id":      i + 1,
			"name":    n,
			"email":   strings.ToLower(n) + "@example.com",
			"address": map[string]any{"city": fmt.Sprintf("city-%d", i)},
		})
		require.NoError(t, err)
		raws = append(raws, raw)
	}
	return NewRows(raws, userColumns(), nil)
}

func TestProjectScenarioTwentyRows(t *testing.T) {
	names := make([]string, 20)
	for i := range names {
		names[i] = fmt.Sprintf("user%02d", i)
	}
	rows := userRows(t, names...)
	cols := userColumns()
	st := NewTableState(cols)

	v := Project(cols, rows, st)
	assert.Len(t, v.Rows, 20)
	assert.Equal(t, 20, v.Total)
	assert.Equal(t, "0 of 20 row(s) selected", v.Footer())
	assert.Equal(t, []string{"id", "name", "email"}, v.Columns.IDs(), "hidden column must not be projected")
}

func TestProjectEmpty(t *testing.T) {
	cols := userColumns()
	v := Project(cols, nil, NewTableState(cols))
	assert.True(t, v.Empty())
	assert.Equal(t, "0 of 0 row(s) selected", v.Footer())
}

func TestProjectFilter(t *testing.T) {
	cols := userColumns()
	rows := userRows(t, "Ada", "Alan", "Grace", "Barbara")
	st := NewTableState(cols)

	require.True(t, st.SetFilter(cols[1], "A"))
	v := Project(cols, rows, st)
	assert.Equal(t, 4, v.Filtered, "case-insensitive contains")

	require.True(t, st.SetFilter(cols[1], "al"))
	v = Project(cols, rows, st)
	require.Len(t, v.Rows, 1)
	assert.Equal(t, "Alan", v.Rows[0].Cells[1])
	assert.Equal(t, 4, v.Total)

	assert.False(t, st.SetFilter(cols[0], "1"), "id is not filterable")

	st.ClearFilters()
	assert.Len(t, Project(cols, rows, st).Rows, 4)
}

func TestProjectSort(t *testing.T) {
	cols := userColumns()
	rows := userRows(t, "Grace", "ada", "Barbara", "Alan")
	st := NewTableState(cols)

	names := func(v View) []string {
		out := make([]string, 0, len(v.Rows))
		for _, r := range v.Rows {
			out = append(out, r.Cells[1])
		}
		return out
	}

	require.True(t, st.ToggleSort(cols[1]))
	assert.Equal(t, []string{"Alan", "Barbara", "Grace", "ada"}, names(Project(cols, rows, st)))

	require.True(t, st.ToggleSort(cols[1]))
	assert.Equal(t, []string{"ada", "Grace", "Barbara", "Alan"}, names(Project(cols, rows, st)))

	require.True(t, st.ToggleSort(cols[1]))
	assert.Equal(t, []string{"Grace", "ada", "Barbara", "Alan"}, names(Project(cols, rows, st)), "third toggle restores load order")

	require.True(t, st.ToggleSort(cols[0]))
	_, dir := st.Sorting()
	assert.Equal(t, SortAsc, dir)
	require.True(t, st.ToggleSort(cols[0]))
	v := Project(cols, rows, st)
	assert.Equal(t, "4", v.Rows[0].Cells[0])
	assert.Equal(t, SortDesc, v.SortDir)

	assert.False(t, st.ToggleSort(cols[2]), "email is not sortable")
}

func TestProjectSelectionIsPositional(t *testing.T) {
	cols := userColumns()
	rows := userRows(t, "Ada", "Alan", "Grace")
	st := NewTableState(cols)

	st.ToggleRow(2)
	v := Project(cols, rows, st)
	assert.Equal(t, "1 of 3 row(s) selected", v.Footer())
	assert.True(t, v.Rows[2].Selected)

	// Same position, different record: selection follows the index.
	swapped := userRows(t, "Ada", "Alan", "Linus")
	v = Project(cols, swapped, st)
	assert.True(t, v.Rows[2].Selected)
	assert.Equal(t, "Linus", v.Rows[2].Cells[1])

	st.ToggleAll(v.Indices())
	assert.Equal(t, "3 of 3 row(s) selected", Project(cols, swapped, st).Footer())
	st.ToggleAll(v.Indices())
	assert.Equal(t, "0 of 3 row(s) selected", Project(cols, swapped, st).Footer())

	st.ToggleRow(0)
	st.ClearSelection()
	assert.Empty(t, st.Selection())
}

func TestProjectSelectedCountsFilteredRows(t *testing.T) {
	cols := userColumns()
	rows := userRows(t, "Ada", "Alan", "Grace")
	st := NewTableState(cols)

	st.ToggleRow(0)
	st.ToggleRow(2)
	st.SetFilter(cols[1], "a")
	assert.Equal(t, "2 of 3 row(s) selected", Project(cols, rows, st).Footer())

	st.SetFilter(cols[1], "gr")
	assert.Equal(t, "1 of 1 row(s) selected", Project(cols, rows, st).Footer())
}

func TestProjectVisibility(t *testing.T) {
	cols := userColumns()
	rows := userRows(t, "Ada")
	st := NewTableState(cols)

	assert.False(t, st.IsVisible("city"))
	require.True(t, st.ToggleVisibility(cols[3]))
	require.True(t, st.ToggleVisibility(cols[2]))

	v := Project(cols, rows, st)
	assert.Equal(t, []string{"id", "name", "city"}, v.Columns.IDs())
	assert.Equal(t, []string{"1", "Ada", "city-0"}, v.Rows[0].Cells)

	assert.False(t, st.ToggleVisibility(cols[0]), "id is not hideable")
}

func TestColumnValue(t *testing.T) {
	raw := json.RawMessage(`{"id": 7, "name": null, "tags": ["a","b"], "profile": {"age": 41}}`)

	tests := []struct {
		name string
		col  Column
		want string
	}{
		{name: "number", col: Column{ID: "id"}, want: "7"},
		{name: "null", col: Column{ID: "name"}, want: ""},
		{name: "missing", col: Column{ID: "nope"}, want: ""},
		{name: "nested accessor", col: Column{ID: "age", Accessor: "profile.age"}, want: "41"},
		{name: "cell renderer", col: Column{ID: "tags", Cell: func(v gjson.Result) string {
			return fmt.Sprintf("%d tags", len(v.Array()))
		}}, want: "2 tags"},
		{name: "decorator", col: Column{ID: "id", Decorator: func(s string) string { return "#" + s }}, want: "#7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.col.Value(raw))
		})
	}
}

func TestColumnTitle(t *testing.T) {
	assert.Equal(t, "EMAIL", Column{ID: "email"}.Title())
	assert.Equal(t, "E-mail", Column{ID: "email", Header: "E-mail"}.Title())
}

func TestLess(t *testing.T) {
	tests := []struct {
		name   string
		kind   Kind
		v1, v2 string
		want   bool
	}{
		{name: "natural", kind: KindText, v1: "item2", v2: "item10", want: true},
		{name: "number", kind: KindNumber, v1: "9", v2: "10", want: true},
		{name: "number commas", kind: KindNumber, v1: "1,000", v2: "999", want: false},
		{name: "number before text", kind: KindNumber, v1: "3", v2: "n/a", want: true},
		{name: "duration", kind: KindDuration, v1: "2h", v2: "1d", want: true},
		{name: "duration equal seconds", kind: KindDuration, v1: "60s", v2: "1m", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Less(tt.kind, 0, 1, tt.v1, tt.v2))
		})
	}

	assert.True(t, Less(KindText, 0, 1, "same", "same"))
	assert.False(t, Less(KindText, 1, 0, "same", "same"))
}

func TestTableData(t *testing.T) {
	cols := userColumns()
	td := NewTableData(cols)
	assert.True(t, td.Empty())

	td.SetRows(userRows(t, "Ada", "Alan"))
	td.SetFlags(LoadFlags{HasNext: true})
	td.SetKey("users:")
	td.SetError("boom")

	assert.Equal(t, 2, td.RowCount())
	assert.True(t, td.Flags().HasNext)
	assert.Equal(t, "users:", td.Key())
	assert.True(t, td.HasError())
	assert.Len(t, td.Project(nil).Rows, 2)
}

func TestDefaultColorer(t *testing.T) {
	assert.Equal(t, AddColor, DefaultColorer(nil, &Row{Kind: EventAdd}))
	assert.Equal(t, ModColor, DefaultColorer(nil, &Row{Kind: EventUpdate}))
	assert.Equal(t, StdColor, DefaultColorer(nil, &Row{Kind: EventUnchanged}))
}
