package model1

import (
	"encoding/json"
	"strconv"
)

// Fields represents the rendered values of a row, one per column
type Fields []string

func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	copy(out, f)
	return out
}

// Row represents one record of the flattened row list.
// Rows are identified by their position in the list.
type Row struct {
	Index  int
	Raw    json.RawMessage
	Fields Fields
	Kind   ResEvent
}

// NewRow renders raw against every column.
func NewRow(index int, raw json.RawMessage, cols Columns) Row {
	r := Row{
		Index:  index,
		Raw:    raw,
		Fields: make(Fields, len(cols)),
		Kind:   EventUnchanged,
	}
	for i, c := range cols {
		r.Fields[i] = c.Value(raw)
	}
	return r
}

// ID returns the positional row identifier.
func (r Row) ID() string {
	return strconv.Itoa(r.Index)
}

func (r Row) Clone() Row {
	return Row{
		Index:  r.Index,
		Raw:    r.Raw,
		Fields: r.Fields.Clone(),
		Kind:   r.Kind,
	}
}

func (r Row) Len() int {
	return len(r.Fields)
}

// Rows represents a collection of rows
type Rows []Row

func (r Rows) Clone() Rows {
	out := make(Rows, len(r))
	for i, row := range r {
		out[i] = row.Clone()
	}
	return out
}

// NewRows renders a flattened list of raw records.
func NewRows(raws []json.RawMessage, cols Columns, kinds map[int]ResEvent) Rows {
	rows := make(Rows, 0, len(raws))
	for i, raw := range raws {
		row := NewRow(i, raw, cols)
		if k, ok := kinds[i]; ok {
			row.Kind = k
		}
		rows = append(rows, row)
	}
	return rows
}
