package model1

import (
	"github.com/gdamore/tcell/v2"
	"github.com/tidwall/gjson"
)

const NAValue = "n/a"

// ResEvent represents a row event type
type ResEvent int

const (
	EventUnchanged ResEvent = 1 << iota
	EventAdd
	EventUpdate
)

// DecoratorFunc decorates a string
type DecoratorFunc func(string) string

// CellFunc renders a cell from the value found at a column accessor
type CellFunc func(v gjson.Result) string

// ColorerFunc represents a row colorer
type ColorerFunc func(cols Columns, r *Row) tcell.Color

// Kind describes how a column's values compare.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDuration
)

// SortDir is the sort direction of a column.
type SortDir int

const (
	SortNone SortDir = iota
	SortAsc
	SortDesc
)

// String returns the header marker for the direction.
func (d SortDir) String() string {
	switch d {
	case SortAsc:
		return "▲"
	case SortDesc:
		return "▼"
	default:
		return ""
	}
}
