// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of pagetable

package ui

import (
	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
)

const detailsPage = "details"

// Dialog represents a dismissable modal.
type Dialog struct {
	*tview.Modal

	pages  *Pages
	pageID string
	onDone func()
}

// NewDialog creates a new dialog.
func NewDialog(pages *Pages, pageID, msg string) *Dialog {
	d := Dialog{
		Modal:  tview.NewModal(),
		pages:  pages,
		pageID: pageID,
	}
	d.SetBackgroundColor(tcell.ColorDefault)
	d.SetTextColor(tcell.ColorWhite)
	d.SetText(msg)
	d.AddButtons([]string{"OK"})
	d.SetDoneFunc(func(int, string) {
		d.Dismiss()
	})

	return &d
}

// SetDoneFn sets the callback invoked once the dialog is dismissed.
func (d *Dialog) SetDoneFn(fn func()) *Dialog {
	d.onDone = fn
	return d
}

// Show displays the dialog as a modal overlay.
func (d *Dialog) Show() {
	if d.pages != nil {
		d.pages.Push(d.pageID, d, true)
	}
}

// Dismiss removes the dialog.
func (d *Dialog) Dismiss() {
	if d.pages != nil {
		d.pages.Dismiss(d.pageID)
	}
	if d.onDone != nil {
		d.onDone()
	}
}

// DetailsDialog shows a row document.
func DetailsDialog(pages *Pages, doc string) *Dialog {
	return NewDialog(pages, detailsPage, doc)
}
