// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package ui

import (
	"fmt"
	"sort"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const (
	menuFmt     = " [yellow::b]<%s>[white::-] %s "
	menuMaxRows = 2
)

// Menu presents the key hints of the focused component.
type Menu struct {
	*tview.Table
}

// NewMenu returns a new menu.
func NewMenu() *Menu {
	m := &Menu{
		Table: tview.NewTable(),
	}
	m.SetBackgroundColor(tcell.ColorDefault)
	m.SetBorderPadding(0, 0, 1, 1)

	return m
}

// HydrateMenu populates the menu from hints, column by column.
func (m *Menu) HydrateMenu(hh MenuHints) {
	m.Clear()
	sort.Sort(hh)

	var row, col int
	for _, h := range hh {
		if !h.Visible || h.IsBlank() {
			continue
		}
		c := tview.NewTableCell(formatHint(h))
		c.SetBackgroundColor(tcell.ColorDefault)
		m.SetCell(row, col, c)
		row++
		if row >= menuMaxRows {
			row, col = 0, col+1
		}
	}
}

func formatHint(h MenuHint) string {
	if h.Mnemonic == "" || h.Description == "" {
		return ""
	}
	return fmt.Sprintf(menuFmt, h.Mnemonic, h.Description)
}
