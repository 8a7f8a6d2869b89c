// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package view

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/pagetable/pagetable/internal/ui"
)

const helpPage = "help"

// HelpBind represents a single keybinding.
type HelpBind struct {
	Key  string
	Desc string
}

// Help displays the table and global key bindings.
type Help struct {
	*tview.Table
	closeFn func()
}

// NewHelp creates a help view listing the given table hints.
func NewHelp(hints ui.MenuHints) *Help {
	h := &Help{
		Table: tview.NewTable(),
	}
	h.build(hints)
	return h
}

// SetCloseFn sets the callback when help is closed.
func (h *Help) SetCloseFn(fn func()) {
	h.closeFn = fn
}

func (h *Help) build(hints ui.MenuHints) {
	h.SetBorder(true)
	h.SetTitle(" Help ")
	h.SetTitleAlign(tview.AlignCenter)
	h.SetBorderColor(tcell.ColorYellow)
	h.SetBackgroundColor(tcell.ColorDefault)
	h.SetSelectable(false, false)

	h.populate(hints)

	h.SetInputCapture(func(evt *tcell.EventKey) *tcell.EventKey {
		switch {
		case evt.Key() == tcell.KeyEsc, evt.Key() == tcell.KeyEnter:
		case evt.Key() == tcell.KeyRune && (evt.Rune() == '?' || evt.Rune() == 'q'):
		default:
			return evt
		}
		if h.closeFn != nil {
			h.closeFn()
		}
		return nil
	})
}

func (h *Help) populate(hints ui.MenuHints) {
	table := make([]HelpBind, 0, len(hints))
	for _, hint := range hints {
		table = append(table, HelpBind{Key: "<" + hint.Mnemonic + ">", Desc: hint.Description})
	}

	nav := []HelpBind{
		{"<j>", "Down"},
		{"<k>", "Up"},
		{"<h>", "Column Left"},
		{"<l>", "Column Right"},
		{"<g>", "Top"},
		{"<G>", "Bottom"},
	}

	general := []HelpBind{
		{"<?>", "Help"},
		{"<esc>", "Back"},
		{"<q>", "Quit"},
		{"<ctrl-c>", "Quit"},
	}

	columns := [][]HelpBind{table, nav, general}
	headers := []string{"TABLE", "NAVIGATION", "GENERAL"}

	var maxRows int
	for _, col := range columns {
		maxRows = max(maxRows, len(col))
	}

	// Each logical column spans key, description and spacer cells.
	const colWidth = 3
	for colIdx, col := range columns {
		baseCol := colIdx * colWidth

		h.SetCell(0, baseCol, tview.NewTableCell(headers[colIdx]).
			SetTextColor(tcell.ColorAqua).
			SetAttributes(tcell.AttrBold).
			SetSelectable(false))

		for rowIdx, bind := range col {
			h.SetCell(rowIdx+1, baseCol, tview.NewTableCell(bind.Key).
				SetTextColor(tcell.ColorYellow).
				SetSelectable(false))
			h.SetCell(rowIdx+1, baseCol+1, tview.NewTableCell(bind.Desc).
				SetTextColor(tcell.ColorWhite).
				SetSelectable(false).
				SetExpansion(1))
		}

		if colIdx < len(columns)-1 {
			for row := 0; row <= maxRows; row++ {
				h.SetCell(row, baseCol+2, tview.NewTableCell("").
					SetSelectable(false).
					SetExpansion(1))
			}
		}
	}

	h.SetCell(maxRows+2, 0, tview.NewTableCell("<esc> to close").
		SetTextColor(tcell.ColorGray).
		SetSelectable(false))
}
