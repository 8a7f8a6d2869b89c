package config

import (
	"fmt"
	"strings"

	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/config/data"
	"github.com/pagetable/pagetable/internal/model1"
)

// ColumnsFromIDs returns sortable, filterable and hideable text columns.
func ColumnsFromIDs(ids []string) []data.Column {
	cc := make([]data.Column, 0, len(ids))
	for _, id := range ids {
		cc = append(cc, data.Column{
			ID:         id,
			Sortable:   true,
			Filterable: true,
			Hideable:   true,
		})
	}
	return cc
}

// ToColumns converts configured columns into table columns.
func ToColumns(cc []data.Column) (model1.Columns, error) {
	out := make(model1.Columns, 0, len(cc))
	for _, c := range cc {
		if c.ID == "" {
			return nil, fmt.Errorf("column %d has no id", len(out))
		}
		align, err := toAlign(c.Align)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.ID, err)
		}
		kind, err := toKind(c.Kind)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.ID, err)
		}
		out = append(out, model1.Column{
			ID:         c.ID,
			Header:     c.Header,
			Accessor:   c.Accessor,
			Align:      align,
			Kind:       kind,
			Sortable:   c.Sortable,
			Hideable:   c.Hideable,
			Filterable: c.Filterable,
			Hidden:     c.Hidden,
		})
	}

	return out, nil
}

// DemoTable returns the table settings for the demo user listing at url.
func DemoTable(url string) data.Table {
	t := data.Table{
		URL:          url,
		Key:          "users",
		SearchColumn: "name",
		Placeholder:  "Search users...",
		Columns: []data.Column{
			{ID: "id", Header: "ID", Kind: "number", Align: "right", Sortable: true},
			{ID: "name", Header: "Name", Sortable: true, Filterable: true},
			{ID: "email", Header: "Email", Sortable: true, Filterable: true, Hideable: true},
			{ID: "role", Header: "Role", Sortable: true, Filterable: true, Hideable: true},
			{ID: "age", Header: "Age", Kind: "number", Align: "right", Sortable: true, Hideable: true},
			{ID: "created", Header: "Created", Sortable: true, Hideable: true, Hidden: true},
		},
	}
	t.Validate()

	return t
}

func toAlign(s string) (int, error) {
	switch strings.ToLower(s) {
	case "", "left":
		return tview.AlignLeft, nil
	case "center":
		return tview.AlignCenter, nil
	case "right":
		return tview.AlignRight, nil
	default:
		return 0, fmt.Errorf("invalid align %q", s)
	}
}

func toKind(s string) (model1.Kind, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return model1.KindText, nil
	case "number":
		return model1.KindNumber, nil
	case "duration":
		return model1.KindDuration, nil
	default:
		return 0, fmt.Errorf("invalid kind %q", s)
	}
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
