package model1

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Column describes how one field of a row is accessed, rendered and manipulated.
type Column struct {
	ID         string
	Header     string
	Accessor   string // gjson path, defaults to ID
	Align      int    // tview alignment
	Kind       Kind
	Sortable   bool
	Hideable   bool
	Filterable bool
	Hidden     bool // Hidden until toggled on
	Cell       CellFunc
	Decorator  DecoratorFunc
}

func (c Column) String() string {
	return fmt.Sprintf("%s [%d::%t::%t]", c.ID, c.Align, c.Sortable, c.Hideable)
}

// Title returns the header text.
func (c Column) Title() string {
	if c.Header != "" {
		return c.Header
	}
	return strings.ToUpper(c.ID)
}

// Path returns the accessor path.
func (c Column) Path() string {
	if c.Accessor != "" {
		return c.Accessor
	}
	return c.ID
}

// Value renders the column's field of raw.
func (c Column) Value(raw json.RawMessage) string {
	res := gjson.GetBytes(raw, c.Path())

	var s string
	switch {
	case c.Cell != nil:
		s = c.Cell(res)
	case !res.Exists() || res.Type == gjson.Null:
		s = ""
	default:
		s = res.String()
	}

	if c.Decorator != nil {
		s = c.Decorator(s)
	}
	return s
}

// Columns represents an ordered set of column descriptors
type Columns []Column

func (cc Columns) Clone() Columns {
	out := make(Columns, len(cc))
	copy(out, cc)
	return out
}

func (cc Columns) IndexOf(id string) (int, bool) {
	for i, c := range cc {
		if c.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Get returns the column with the given id.
func (cc Columns) Get(id string) (Column, bool) {
	if i, ok := cc.IndexOf(id); ok {
		return cc[i], true
	}
	return Column{}, false
}

// Hideable returns the columns whose visibility can be toggled.
func (cc Columns) Hideable() Columns {
	out := make(Columns, 0, len(cc))
	for _, c := range cc {
		if c.Hideable {
			out = append(out, c)
		}
	}
	return out
}

func (cc Columns) IDs() []string {
	if len(cc) == 0 {
		return nil
	}
	ids := make([]string, 0, len(cc))
	for _, c := range cc {
		ids = append(ids, c.ID)
	}
	return ids
}
